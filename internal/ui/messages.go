package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/filter"
	"github.com/costamaya/backoffice/internal/models"
)

// Message types for async operations

// errMsg carries a fatal error into the error state.
type errMsg struct {
	err error
}

// sessionRestoredMsg is sent at startup when a stored session was found.
type sessionRestoredMsg struct {
	token string
	user  *models.User
}

// loginResultMsg is sent when the login exchange finishes.
type loginResultMsg struct {
	result *api.LoginResult
	err    error
}

// loggedOutMsg is sent after the stored session was cleared.
type loggedOutMsg struct{}

// statesLoadedMsg carries the state catalog shared by every location picker.
type statesLoadedMsg struct {
	states []models.State
	err    error
}

// listLoadedMsg is sent when a screen's store finished reloading from the
// backend.
type listLoadedMsg struct {
	screen string
	err    error
}

// optionsLoadedMsg is sent when a screen's reference catalogs (types,
// categories, roles) finished loading.
type optionsLoadedMsg struct {
	screen string
	err    error
}

// mutationDoneMsg is sent when a create, update, delete, or status change
// finished, after the reload it triggers.
type mutationDoneMsg struct {
	screen  string
	success string
	err     error
}

// cascadeResultMsg carries a finished location-filter fetch back to the
// screen that requested it.
type cascadeResultMsg struct {
	screen string
	form   bool // destined for the form picker, not the list filter
	result filter.Result
}

// tickMsg drives notification expiry redraws.
type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// runCascade executes a location fetch off the event loop.
func runCascade(screen string, form bool, c *filter.Cascade, req *filter.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	r := *req
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return cascadeResultMsg{screen: screen, form: form, result: c.Run(ctx, r)}
	}
}
