// Package stub is an in-memory rendition of the rental backend used for
// local development and integration tests. It serves the same routes and
// {data, message} envelope as the production API, enforces the reservation
// status rules, and fakes image storage by minting CDN-looking URLs for
// uploaded data URIs.
package stub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/costamaya/backoffice/internal/models"
)

// Catalog is the geographic hierarchy the sandbox serves.
type Catalog struct {
	States         []models.State        `json:"states"`
	Municipalities []models.Municipality `json:"municipalities"`
	Localities     []models.Locality     `json:"localities"`
}

// Server holds all sandbox state behind one mutex. Everything lives in
// memory; restarting the process resets the data.
type Server struct {
	log *slog.Logger

	mu           sync.Mutex
	nextID       int64
	geography    Catalog
	catalogs     map[string][]models.CatalogEntry
	yachts       map[int64]*models.Yacht
	tours        map[int64]*models.Tour
	clubs        map[int64]*models.Club
	users        map[int64]*models.User
	passwords    map[string]string
	reservations map[int64]*models.Reservation
	tokens       map[string]int64
}

// New creates a sandbox seeded with demo data. A zero-value catalog falls
// back to the built-in Quintana Roo sample.
func New(geography Catalog, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if len(geography.States) == 0 {
		geography = demoGeography()
	}
	s := &Server{
		log:          log,
		nextID:       1000,
		geography:    geography,
		catalogs:     map[string][]models.CatalogEntry{},
		yachts:       map[int64]*models.Yacht{},
		tours:        map[int64]*models.Tour{},
		clubs:        map[int64]*models.Club{},
		users:        map[int64]*models.User{},
		passwords:    map[string]string{},
		reservations: map[int64]*models.Reservation{},
		tokens:       map[string]int64{},
	}
	s.seed()
	return s
}

func (s *Server) id() int64 {
	s.nextID++
	return s.nextID
}

// Handler builds the chi router for the sandbox.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		r.Get("/states", s.handleStates)
		r.Get("/municipalities", s.handleMunicipalities)
		r.Get("/localities", s.handleLocalities)

		for _, resource := range []string{"yacht-categories", "yacht-types", "tour-types", "club-types", "roles"} {
			resource := resource
			r.Route("/"+resource, func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, req *http.Request) { s.listCatalog(w, req, resource) })
				r.Post("/", func(w http.ResponseWriter, req *http.Request) { s.createCatalog(w, req, resource) })
				r.Patch("/{id}", func(w http.ResponseWriter, req *http.Request) { s.updateCatalog(w, req, resource) })
				r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) { s.deleteCatalog(w, req, resource) })
			})
		}

		r.Route("/yachts", func(r chi.Router) {
			r.Get("/", s.listYachts)
			r.Post("/", s.createYacht)
			r.Patch("/{id}", s.updateYacht)
			r.Delete("/{id}", s.deleteYacht)
		})
		r.Route("/tours", func(r chi.Router) {
			r.Get("/", s.listTours)
			r.Post("/", s.createTour)
			r.Patch("/{id}", s.updateTour)
			r.Delete("/{id}", s.deleteTour)
		})
		r.Route("/clubs", func(r chi.Router) {
			r.Get("/", s.listClubs)
			r.Post("/", s.createClub)
			r.Patch("/{id}", s.updateClub)
			r.Delete("/{id}", s.deleteClub)
		})
		r.Route("/users", func(r chi.Router) {
			r.Get("/", s.listUsers)
			r.Post("/", s.createUser)
			r.Patch("/{id}", s.updateUser)
			r.Delete("/{id}", s.deleteUser)
		})
		r.Route("/reservations", func(r chi.Router) {
			r.Get("/", s.listReservations)
			r.Post("/", s.createReservation)
			r.Patch("/{id}", s.updateReservation)
			r.Delete("/{id}", s.deleteReservation)
		})
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
		)
	})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		s.mu.Lock()
		_, ok := s.tokens[token]
		s.mu.Unlock()
		if token == "" || !ok {
			respondError(w, http.StatusUnauthorized, "Sesión no válida")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Cuerpo de la petición inválido")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.passwords[creds.Email] != creds.Password || creds.Password == "" {
		respondError(w, http.StatusUnauthorized, "Credenciales incorrectas")
		return
	}
	var user *models.User
	for _, u := range s.users {
		if u.Email == creds.Email {
			user = u
			break
		}
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Credenciales incorrectas")
		return
	}

	token := uuid.NewString()
	s.tokens[token] = user.ID

	// Login is the one response without the envelope.
	writeJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"user":         user,
		"message":      "Inicio de sesión exitoso",
	})
}

// Response helpers. Everything but login wraps in {data, message}.

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondData(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, map[string]any{"data": data, "message": message})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

func queryID(r *http.Request, key string) int64 {
	id, _ := strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
	return id
}

// storeImages turns uploaded data URIs into stored images with fresh ids and
// CDN-style URLs, appending to existing after dropping removals.
func (s *Server) storeImages(existing models.ImageList, dataURIs []string, removeIDs []int64) models.ImageList {
	removed := map[int64]bool{}
	for _, id := range removeIDs {
		removed[id] = true
	}
	var out models.ImageList
	for _, img := range existing {
		if img.ID != 0 && removed[img.ID] {
			continue
		}
		out = append(out, img)
	}
	for _, uri := range dataURIs {
		if !strings.HasPrefix(uri, "data:") {
			continue
		}
		out = append(out, models.Image{
			ID:  s.id(),
			URL: "https://cdn.sandbox.costamaya.mx/img/" + uuid.NewString(),
		})
	}
	return out
}
