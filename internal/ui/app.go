// Package ui is the terminal front end of the back office: a tab per managed
// entity, each tab a filtered table with a create/edit form, on top of the
// stores and filters that do the actual work.
package ui

import (
	"context"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/models"
	"github.com/costamaya/backoffice/internal/notify"
	"github.com/costamaya/backoffice/internal/session"
)

// AppState represents the current top-level screen.
type AppState int

const (
	StateStartup AppState = iota // restoring a persisted session
	StateLogin
	StateMain
)

// Model is the application root.
type Model struct {
	state  AppState
	width  int
	height int

	client  *api.Client
	session *session.Store
	center  *notify.Center
	log     *slog.Logger

	login  loginForm
	user   *models.User
	states *stateOptions

	panes  []pane
	active int
}

// NewModel wires the full application. log may be nil.
func NewModel(client *api.Client, sess *session.Store, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	states := &stateOptions{}

	yachts := newYachtScreen(client, log, states)
	tours := newTourScreen(client, log, states)
	clubs := newClubScreen(client, log, states)
	reservations := newReservationScreen(client, log, yachts.cfg.store, tours.cfg.store, clubs.cfg.store)
	users := newUserScreen(client, log)

	panes := []pane{
		yachts,
		tours,
		clubs,
		reservations,
		users,
		newCatalogScreen(client, log, states, api.YachtCategories, "yacht-categories", "Cat. yates"),
		newCatalogScreen(client, log, states, api.YachtTypes, "yacht-types", "Tipos yate"),
		newCatalogScreen(client, log, states, api.TourTypes, "tour-types", "Tipos tour"),
		newCatalogScreen(client, log, states, api.ClubTypes, "club-types", "Tipos club"),
	}

	return Model{
		state:   StateStartup,
		client:  client,
		session: sess,
		center:  notify.NewCenter(),
		log:     log,
		login:   newLoginForm(),
		states:  states,
		panes:   panes,
	}
}

// Init restores the persisted session, if any.
func (m Model) Init() tea.Cmd {
	return tea.Batch(restoreSessionCmd(m.session), tick())
}

// enterMain starts every pane plus the shared state catalog fetch.
func (m *Model) enterMain() tea.Cmd {
	m.state = StateMain
	cmds := []tea.Cmd{m.loadStates()}
	for _, p := range m.panes {
		cmds = append(cmds, p.init()...)
	}
	return tea.Batch(cmds...)
}

func (m Model) loadStates() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		states, err := m.client.States(ctx)
		return statesLoadedMsg{states: states, err: err}
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		// Re-render so expired banners disappear.
		return m, tick()

	case sessionRestoredMsg:
		if msg.token == "" {
			m.state = StateLogin
			return m, nil
		}
		m.client.SetToken(msg.token)
		m.user = msg.user
		return m, m.enterMain()

	case loginResultMsg:
		m.login.submitting = false
		if msg.err != nil {
			m.login.errText = friendlyError(msg.err)
			return m, nil
		}
		m.user = &msg.result.User
		m.login.password.SetValue("")
		m.center.Notify("Sesión iniciada", notify.Success)
		return m, m.enterMain()

	case loggedOutMsg:
		m.state = StateLogin
		m.user = nil
		m.client.SetToken("")
		m.login = newLoginForm()
		return m, nil

	case statesLoadedMsg:
		if msg.err != nil {
			m.log.Warn("state catalog load failed", "error", msg.err)
			m.center.Notify("No se pudo cargar el catálogo de estados", notify.Warning)
			return m, nil
		}
		choices := make([]choice, len(msg.states))
		for i, s := range msg.states {
			choices[i] = choice{ID: s.ID, Label: s.Name}
		}
		m.states.choices = choices
		return m, nil

	case listLoadedMsg:
		if msg.err != nil {
			m.center.Notify("No se pudo actualizar la lista", notify.Warning)
		}
		return m, m.route(msg.screen, msg)

	case optionsLoadedMsg:
		if msg.err != nil {
			m.center.Notify("No se pudieron cargar los catálogos", notify.Warning)
		}
		return m, m.route(msg.screen, msg)

	case mutationDoneMsg:
		if msg.err != nil {
			m.center.Notify(friendlyError(msg.err), notify.Error)
		} else {
			m.center.Notify(msg.success, notify.Success)
		}
		return m, m.route(msg.screen, msg)

	case cascadeResultMsg:
		return m, m.route(msg.screen, msg)

	case errMsg:
		m.center.Notify(friendlyError(msg.err), notify.Error)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.state == StateMain && len(m.panes) > 0 {
		return m, m.panes[m.active].update(msg)
	}
	return m, nil
}

// route forwards a message to the pane that owns it, active or not.
func (m Model) route(screen string, msg tea.Msg) tea.Cmd {
	for _, p := range m.panes {
		if p.key() == screen {
			return p.update(msg)
		}
	}
	return nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case StateStartup:
		return m, nil
	case StateLogin:
		return m, m.login.update(msg, m.client, m.session)
	}

	active := m.panes[m.active]
	if active.modalOpen() {
		return m, active.update(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "ctrl+l":
		return m, logoutCmd(m.session)
	case "tab":
		m.active = (m.active + 1) % len(m.panes)
		return m, nil
	case "shift+tab":
		m.active = (m.active - 1 + len(m.panes)) % len(m.panes)
		return m, nil
	}

	return m, active.update(msg)
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 {
		return "Cargando..."
	}

	switch m.state {
	case StateStartup:
		return mutedStyle.Render("Restaurando sesión...")
	case StateLogin:
		return m.login.view()
	}

	var sections []string

	header := titleStyle.Render("⛵ Costa Maya · Back Office")
	if m.user != nil {
		header += mutedStyle.Render("  ·  " + m.user.Name)
	}
	sections = append(sections, header)

	var tabs []string
	for i, p := range m.panes {
		style := tabStyle
		if i == m.active {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(p.title()))
	}
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tabs...))

	if banner := m.banner(); banner != "" {
		sections = append(sections, banner)
	}

	sections = append(sections, m.panes[m.active].view(m.width, m.height))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) banner() string {
	active := m.center.Active()
	if len(active) == 0 {
		return ""
	}
	lines := make([]string, len(active))
	for i, n := range active {
		lines[i] = bannerStyles[n.Severity].Render(n.Message)
	}
	return strings.Join(lines, "\n")
}
