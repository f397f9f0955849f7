package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/session"
)

const loginFieldCount = 2

// loginForm is the credential screen shown until a session exists.
type loginForm struct {
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	errText    string
}

func newLoginForm() loginForm {
	email := textinput.New()
	email.Placeholder = "correo@ejemplo.mx"
	email.CharLimit = 100
	email.Width = 40
	email.Focus()

	password := textinput.New()
	password.Placeholder = "contraseña"
	password.CharLimit = 100
	password.Width = 40
	password.EchoMode = textinput.EchoPassword

	return loginForm{email: email, password: password}
}

func (f *loginForm) setFocus(i int) {
	f.focus = i
	if i == 0 {
		f.email.Focus()
		f.password.Blur()
	} else {
		f.password.Focus()
		f.email.Blur()
	}
}

func (f *loginForm) update(msg tea.KeyMsg, client *api.Client, store *session.Store) tea.Cmd {
	if f.submitting {
		return nil
	}
	switch msg.Type {
	case tea.KeyTab, tea.KeyDown:
		f.setFocus((f.focus + 1) % loginFieldCount)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus((f.focus + loginFieldCount - 1) % loginFieldCount)
		return nil
	case tea.KeyEnter:
		if f.email.Value() == "" || f.password.Value() == "" {
			f.errText = "Correo y contraseña son obligatorios"
			return nil
		}
		f.submitting = true
		f.errText = ""
		return loginCmd(client, store, f.email.Value(), f.password.Value())
	}

	f.errText = ""
	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

func (f loginForm) view() string {
	lines := []string{
		titleStyle.Render("⛵ Costa Maya · Back Office"),
		mutedStyle.Render("Inicie sesión para continuar"),
		"",
		labelStyle.Render("Correo:") + "    " + f.email.View(),
		labelStyle.Render("Contraseña:") + " " + f.password.View(),
	}
	if f.submitting {
		lines = append(lines, "", mutedStyle.Render("Verificando credenciales..."))
	}
	if f.errText != "" {
		lines = append(lines, "", errorTextStyle.Render(f.errText))
	}
	lines = append(lines, "", helpStyle.Render("Tab: cambiar campo · Enter: entrar · Ctrl+C: salir"))
	return paneStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// loginCmd exchanges credentials and persists the session on success.
func loginCmd(client *api.Client, store *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		result, err := client.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		if err := store.SaveLogin(result.AccessToken, result.User); err != nil {
			// The session just won't survive a restart.
			return loginResultMsg{result: result}
		}
		return loginResultMsg{result: result}
	}
}

// restoreSessionCmd loads a persisted session at startup. An empty token in
// the message means the user has to log in.
func restoreSessionCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		token, err := store.Token()
		if err != nil || token == "" {
			return sessionRestoredMsg{}
		}
		user, err := store.User()
		if err != nil {
			return sessionRestoredMsg{token: token}
		}
		return sessionRestoredMsg{token: token, user: user}
	}
}

// logoutCmd clears the stored session.
func logoutCmd(store *session.Store) tea.Cmd {
	return func() tea.Msg {
		_ = store.Clear()
		return loggedOutMsg{}
	}
}
