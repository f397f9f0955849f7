package ui

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/models"
	"github.com/costamaya/backoffice/internal/session"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client := api.New("http://127.0.0.1:1", time.Second)
	sess := session.NewStore(filepath.Join(t.TempDir(), "session.db"))
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewModel(client, sess, log)
}

func TestNewModel(t *testing.T) {
	m := newTestModel(t)

	if m.state != StateStartup {
		t.Errorf("NewModel() state = %v, want StateStartup", m.state)
	}
	if len(m.panes) != 9 {
		t.Errorf("NewModel() panes = %d, want 9", len(m.panes))
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if m.width != 120 {
		t.Errorf("After WindowSizeMsg, width = %d, want 120", m.width)
	}
	if m.height != 40 {
		t.Errorf("After WindowSizeMsg, height = %d, want 40", m.height)
	}
}

func TestModel_CtrlC_Quits(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Error("Expected Ctrl+C to return quit command")
	}
}

func TestSessionRestore_EmptyGoesToLogin(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(sessionRestoredMsg{})
	m = updated.(Model)

	if m.state != StateLogin {
		t.Errorf("After empty session restore, state = %v, want StateLogin", m.state)
	}
}

func TestSessionRestore_TokenGoesToMain(t *testing.T) {
	m := newTestModel(t)

	user := &models.User{ID: 1, Name: "Admin"}
	updated, cmd := m.Update(sessionRestoredMsg{token: "tok", user: user})
	m = updated.(Model)

	if m.state != StateMain {
		t.Errorf("After session restore, state = %v, want StateMain", m.state)
	}
	if m.user == nil || m.user.Name != "Admin" {
		t.Error("Expected restored user profile on the model")
	}
	if cmd == nil {
		t.Error("Expected pane init commands after restore")
	}
}

func TestLoginFailure_StaysOnLogin(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(sessionRestoredMsg{})
	m = updated.(Model)

	updated, _ = m.Update(loginResultMsg{err: &api.Error{Status: 401, Message: "Credenciales incorrectas"}})
	m = updated.(Model)

	if m.state != StateLogin {
		t.Errorf("After failed login, state = %v, want StateLogin", m.state)
	}
	if m.login.errText != "Credenciales incorrectas" {
		t.Errorf("Expected the server's message, got %q", m.login.errText)
	}
}

func TestLoginSuccess_EntersMain(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(sessionRestoredMsg{})
	m = updated.(Model)

	result := &api.LoginResult{AccessToken: "tok", User: models.User{ID: 2, Name: "Mariana"}}
	updated, cmd := m.Update(loginResultMsg{result: result})
	m = updated.(Model)

	if m.state != StateMain {
		t.Errorf("After login, state = %v, want StateMain", m.state)
	}
	if cmd == nil {
		t.Error("Expected pane init commands after login")
	}
}

func TestLogout_ReturnsToLogin(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(sessionRestoredMsg{token: "tok", user: &models.User{ID: 1}})
	m = updated.(Model)

	updated, _ = m.Update(loggedOutMsg{})
	m = updated.(Model)

	if m.state != StateLogin {
		t.Errorf("After logout, state = %v, want StateLogin", m.state)
	}
	if m.user != nil {
		t.Error("Expected user to be cleared on logout")
	}
}

func TestLoginForm_FocusCycling(t *testing.T) {
	f := newLoginForm()
	client := api.New("http://127.0.0.1:1", time.Second)
	sess := session.NewStore(filepath.Join(t.TempDir(), "session.db"))

	f.update(tea.KeyMsg{Type: tea.KeyTab}, client, sess)
	if f.focus != 1 {
		t.Errorf("After tab, focus = %d, want 1", f.focus)
	}

	f.update(tea.KeyMsg{Type: tea.KeyShiftTab}, client, sess)
	if f.focus != 0 {
		t.Errorf("After shift+tab, focus = %d, want 0", f.focus)
	}

	// Wraps backwards from the first field.
	f.update(tea.KeyMsg{Type: tea.KeyShiftTab}, client, sess)
	if f.focus != loginFieldCount-1 {
		t.Errorf("After shift+tab from the first field, focus = %d, want %d", f.focus, loginFieldCount-1)
	}
}

func TestStatesLoaded_FillsSharedOptions(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(statesLoadedMsg{states: []models.State{{ID: 23, Name: "Quintana Roo"}}})
	m = updated.(Model)

	opts := m.states.get()
	if len(opts) != 1 || opts[0].Label != "Quintana Roo" {
		t.Errorf("Expected shared state options to be filled, got %v", opts)
	}
}

func TestTabSwitching(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(sessionRestoredMsg{token: "tok"})
	m = updated.(Model)

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.active != 1 {
		t.Errorf("After tab, active = %d, want 1", m.active)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	if m.active != 0 {
		t.Errorf("After shift+tab, active = %d, want 0", m.active)
	}
}

func TestModel_View_InitialLoading(t *testing.T) {
	m := newTestModel(t)

	if view := m.View(); view != "Cargando..." {
		t.Errorf("View() before window size = %q, want 'Cargando...'", view)
	}
}

func TestModel_View_States(t *testing.T) {
	tests := []struct {
		name  string
		state AppState
	}{
		{"startup", StateStartup},
		{"login", StateLogin},
		{"main", StateMain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t)
			m.state = tt.state
			m.width = 120
			m.height = 40

			if view := m.View(); view == "" {
				t.Errorf("View() returned empty string for state %v", tt.state)
			}
		})
	}
}
