package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/costamaya/backoffice/internal/filter"
	"github.com/costamaya/backoffice/internal/form"
)

func (s *entityScreen[T, D]) openCreate() tea.Cmd {
	spec := s.cfg.form
	spec.ctrl.OpenCreate()
	if spec.cascade != nil {
		spec.cascade.Clear()
	}
	s.enterForm()
	return nil
}

func (s *entityScreen[T, D]) openEdit(item T) tea.Cmd {
	spec := s.cfg.form
	spec.ctrl.OpenEdit(spec.fromEntity(item))
	s.cfg.store.SetEditing(&item)
	s.enterForm()

	if spec.cascade == nil || spec.entityRef == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, req := range spec.cascade.Initialize(spec.entityRef(item)) {
		req := req
		cmds = append(cmds, runCascade(s.cfg.name, true, spec.cascade, &req))
	}
	return tea.Batch(cmds...)
}

func (s *entityScreen[T, D]) enterForm() {
	s.mode = modeForm
	s.focus = 0
	s.submitErr = ""
	s.loadFocusedField()
}

func (s *entityScreen[T, D]) closeForm() {
	s.cfg.form.ctrl.Close()
	s.cfg.store.SetEditing(nil)
	s.submitErr = ""
	s.textEdit.Blur()
	s.mode = modeBrowse
}

// loadFocusedField syncs the shared text input with the focused field.
func (s *entityScreen[T, D]) loadFocusedField() {
	fields := s.cfg.form.fields()
	if s.focus < 0 || s.focus >= len(fields) {
		return
	}
	f := fields[s.focus]
	if f.isSelect() {
		s.textEdit.Blur()
		return
	}
	s.textEdit.SetValue(f.get())
	s.textEdit.Placeholder = f.placeholder
	if f.secret {
		s.textEdit.EchoMode = textinput.EchoPassword
	} else {
		s.textEdit.EchoMode = textinput.EchoNormal
	}
	s.textEdit.CursorEnd()
	s.textEdit.Focus()
}

func (s *entityScreen[T, D]) moveFocus(delta int) {
	fields := s.cfg.form.fields()
	if len(fields) == 0 {
		return
	}
	s.focus = (s.focus + delta + len(fields)) % len(fields)
	s.loadFocusedField()
}

func (s *entityScreen[T, D]) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	spec := s.cfg.form
	if spec.ctrl.State() == form.StateSubmitting {
		// The draft is frozen until the submit resolves.
		return nil
	}

	fields := spec.fields()
	var focused fieldSpec
	if s.focus >= 0 && s.focus < len(fields) {
		focused = fields[s.focus]
	}

	switch msg.Type {
	case tea.KeyEsc:
		s.closeForm()
		return nil
	case tea.KeyTab, tea.KeyDown:
		s.moveFocus(1)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		s.moveFocus(-1)
		return nil
	case tea.KeyEnter:
		return s.submit()
	case tea.KeyLeft, tea.KeyRight:
		if focused.isSelect() {
			dir := 1
			if msg.Type == tea.KeyLeft {
				dir = -1
			}
			next := cycleChoice(focused.options(), focused.selectedID(), dir)
			cmd := focused.setID(next)
			return cmd
		}
	}

	if focused.set != nil {
		var cmd tea.Cmd
		s.textEdit, cmd = s.textEdit.Update(msg)
		focused.set(s.textEdit.Value())
		return cmd
	}
	return nil
}

func (s *entityScreen[T, D]) submit() tea.Cmd {
	spec := s.cfg.form
	if spec.cascade != nil && spec.setLocation != nil {
		sel := spec.cascade.Selection()
		spec.ctrl.Update(func(d *D) { spec.setLocation(d, sel) })
	}

	op, err := spec.ctrl.Submit()
	if err != nil {
		if errors.Is(err, form.ErrSubmitInFlight) {
			return nil
		}
		s.submitErr = err.Error()
		return nil
	}

	success := "Registro creado"
	if spec.ctrl.Mode() == form.ModeEdit {
		success = "Registro actualizado"
	}
	s.submitErr = ""
	return s.mutate(success, func(ctx context.Context) error { return op(ctx) })
}

// cycleChoice steps through None plus the options in either direction.
func cycleChoice(opts []choice, current int64, dir int) int64 {
	if len(opts) == 0 {
		return filter.None
	}
	idx := -1 // None
	for i, o := range opts {
		if o.ID == current {
			idx = i
			break
		}
	}
	idx += dir
	switch {
	case idx < -1:
		idx = len(opts) - 1
	case idx >= len(opts):
		idx = -1
	}
	if idx == -1 {
		return filter.None
	}
	return opts[idx].ID
}

// Rendering

func (s *entityScreen[T, D]) view(width, height int) string {
	switch s.mode {
	case modeForm:
		return s.viewForm()
	case modeConfirmDelete:
		return s.viewConfirmDelete()
	}
	return s.viewBrowse()
}

func (s *entityScreen[T, D]) viewBrowse() string {
	var sections []string

	var bar string
	if s.mode == modeSearch {
		bar = s.search.View()
	} else if term := s.cfg.store.Search(); term != "" {
		bar = mutedStyle.Render("Búsqueda: ") + term
	}
	if bar != "" {
		sections = append(sections, bar)
	}

	var chips []string
	for _, f := range s.cfg.filters {
		chips = append(chips, filterChipStyle.Render(f.chip()))
	}
	if s.cfg.listRegion != nil {
		chips = append(chips, filterChipStyle.Render(s.regionChip()))
	}
	if len(chips) > 0 {
		sections = append(sections, strings.Join(chips, mutedStyle.Render("  ·  ")))
	}

	if !s.cfg.store.Loaded() {
		sections = append(sections, mutedStyle.Render("Cargando..."))
	} else {
		sections = append(sections, s.table.View())
		sections = append(sections, mutedStyle.Render(fmt.Sprintf("%d de %d registros", len(s.visible), len(s.cfg.store.Items()))))
	}

	sections = append(sections, helpStyle.Render(s.browseHelp()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (s *entityScreen[T, D]) regionChip() string {
	c := s.cfg.listRegion
	name := func(opts []choice, id int64) string {
		for _, o := range opts {
			if o.ID == id {
				return o.Label
			}
		}
		return "todas"
	}
	parts := []string{
		"Estado: " + name(s.cfg.states(), c.StateID()),
		"Municipio: " + name(municipalityChoices(c.Municipalities()), c.MunicipalityID()),
		"Localidad: " + name(localityChoices(c.Localities()), c.LocalityID()),
	}
	return strings.Join(parts, " · ")
}

func (s *entityScreen[T, D]) browseHelp() string {
	parts := []string{"/: buscar", "r: recargar"}
	if s.cfg.form != nil {
		parts = append(parts, "n: nuevo", "e: editar")
	}
	if s.cfg.deleteOp != nil {
		parts = append(parts, "d: eliminar")
	}
	if len(s.cfg.filters) > 0 {
		parts = append(parts, "1-4: filtros")
	}
	if s.cfg.listRegion != nil {
		parts = append(parts, "s/m/l: región")
	}
	parts = append(parts, "x: limpiar", "q: salir")
	return strings.Join(parts, " · ")
}

func (s *entityScreen[T, D]) viewForm() string {
	spec := s.cfg.form
	title := "Nuevo registro"
	if spec.ctrl.Mode() == form.ModeEdit {
		title = "Editar registro"
	}

	var lines []string
	lines = append(lines, titleStyle.Render(title), "")

	for i, f := range spec.fields() {
		marker := "  "
		if i == s.focus {
			marker = filterChipStyle.Render("> ")
		}
		var value string
		switch {
		case f.isSelect():
			value = "< " + choiceLabel(f.options(), f.selectedID()) + " >"
		case i == s.focus:
			value = s.textEdit.View()
		case f.secret:
			value = strings.Repeat("•", len(f.get()))
		default:
			value = f.get()
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", marker, labelStyle.Render(f.label+":"), value))
	}

	if spec.ctrl.State() == form.StateSubmitting {
		lines = append(lines, "", mutedStyle.Render("Guardando..."))
	}
	if s.submitErr != "" {
		lines = append(lines, "", errorTextStyle.Render(s.submitErr))
	}
	lines = append(lines, "", helpStyle.Render("Tab/↑↓: campo · ←→: opciones · Enter: guardar · Esc: cancelar"))

	return modalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func choiceLabel(opts []choice, id int64) string {
	if id == filter.None {
		return "sin selección"
	}
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return "sin selección"
}

func (s *entityScreen[T, D]) viewConfirmDelete() string {
	label := ""
	if s.pendingDelete != nil {
		label = s.cfg.itemLabel(*s.pendingDelete)
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		errorTextStyle.Render("Eliminar "+label+"?"),
		"",
		helpStyle.Render("y/Enter: confirmar · n/Esc: cancelar"),
	)
	return modalStyle.Render(body)
}
