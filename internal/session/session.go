// Package session persists the login session between runs: the bearer token
// and the signed-in user's profile, stored under fixed keys in a small local
// SQLite database. Written on login, cleared on logout.
package session

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/costamaya/backoffice/internal/models"
)

// Fixed storage keys.
const (
	keyToken = "access_token"
	keyUser  = "user_profile"
)

// Store reads and writes the session database at a fixed path.
type Store struct {
	path string
}

// NewStore creates a store backed by the database file at path. The file and
// its directory are created lazily on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the session database location under dataDir.
func DefaultPath(dataDir string) string {
	return filepath.Join(dataDir, "session.db")
}

func (s *Store) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("creating session directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS session_values (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating session schema: %w", err)
	}
	return db, nil
}

func (s *Store) set(db *sql.DB, key, value string) error {
	_, err := db.Exec(`
		INSERT INTO session_values (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	return err
}

// SaveLogin stores the token and user profile from a successful login.
func (s *Store) SaveLogin(token string, user models.User) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	profile, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user profile: %w", err)
	}
	if err := s.set(db, keyToken, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}
	if err := s.set(db, keyUser, string(profile)); err != nil {
		return fmt.Errorf("saving user profile: %w", err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Store) Token() (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer db.Close()

	var token string
	err = db.QueryRow("SELECT value FROM session_values WHERE key = ?", keyToken).Scan(&token)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token: %w", err)
	}
	return token, nil
}

// User returns the stored user profile, or nil when signed out.
func (s *Store) User() (*models.User, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var raw string
	err = db.QueryRow("SELECT value FROM session_values WHERE key = ?", keyUser).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading user profile: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, fmt.Errorf("decoding user profile: %w", err)
	}
	return &user, nil
}

// Clear removes the stored session, as logout does.
func (s *Store) Clear() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec("DELETE FROM session_values WHERE key IN (?, ?)", keyToken, keyUser); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
