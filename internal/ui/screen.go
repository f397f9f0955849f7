package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/filter"
	"github.com/costamaya/backoffice/internal/form"
	"github.com/costamaya/backoffice/internal/models"
	"github.com/costamaya/backoffice/internal/store"
)

const opTimeout = 15 * time.Second

// pane is one management tab. The root model routes messages here.
type pane interface {
	key() string
	title() string
	init() []tea.Cmd
	update(msg tea.Msg) tea.Cmd
	view(width, height int) string
	modalOpen() bool
}

// choice is one option of a discrete filter or select field. ID carries
// id-keyed options; Str carries string-keyed ones (statuses).
type choice struct {
	ID    int64
	Str   string
	Label string
}

// choiceFilter is a cyclable discrete filter over the visible list. Exactly
// one of keyID and keyStr is set. When param is set the selection is also
// mirrored into the shared query parameters so the server narrows the list.
type choiceFilter[T any] struct {
	label    string
	options  func() []choice
	keyID    func(T) int64
	keyStr   func(T) string
	param    func(p *api.ListParams, sel choice)
	selected int // -1 = all
}

func (f *choiceFilter[T]) cycle() {
	n := len(f.options())
	if n == 0 {
		f.selected = -1
		return
	}
	f.selected++
	if f.selected >= n {
		f.selected = -1
	}
}

func (f *choiceFilter[T]) predicate() func(T) bool {
	opts := f.options()
	if f.selected < 0 || f.selected >= len(opts) {
		return func(T) bool { return true }
	}
	sel := opts[f.selected]
	if f.keyStr != nil {
		return filter.ByKey(sel.Str, f.keyStr)
	}
	return filter.ByKey(sel.ID, f.keyID)
}

// syncParam writes the selection into p. The zero choice clears the
// parameter, which the backend reads as "no filter".
func (f *choiceFilter[T]) syncParam(p *api.ListParams) {
	if f.param == nil {
		return
	}
	opts := f.options()
	if f.selected >= 0 && f.selected < len(opts) {
		f.param(p, opts[f.selected])
	} else {
		f.param(p, choice{})
	}
}

func (f *choiceFilter[T]) chip() string {
	opts := f.options()
	if f.selected < 0 || f.selected >= len(opts) {
		return f.label + ": todas"
	}
	return f.label + ": " + opts[f.selected].Label
}

// fieldSpec is one form field. Text fields use get/set; select fields use
// options/selectedID/setID (setID may return a fetch command, as the location
// picker does).
type fieldSpec struct {
	label       string
	placeholder string
	secret      bool

	get func() string
	set func(string)

	options    func() []choice
	selectedID func() int64
	setID      func(int64) tea.Cmd
}

func (f fieldSpec) isSelect() bool { return f.options != nil }

// formSpec wires an entity's form controller into the screen.
type formSpec[T any, D any] struct {
	ctrl       *form.Controller[D]
	fields     func() []fieldSpec
	fromEntity func(T) D

	// Optional location picker for the draft. initCascade seeds it on edit.
	cascade     *filter.Cascade
	entityRef   func(T) models.LocationRef
	setLocation func(d *D, ref models.LocationRef)
}

// screenConfig is the full per-entity wiring.
type screenConfig[T any, D any] struct {
	name       string // message routing key
	label      string // tab title
	store      *store.Store[T]
	columns    []table.Column
	toRow      func(T) table.Row
	searchFld  func(T) []string
	filters    []*choiceFilter[T]
	listRegion *filter.Cascade // cascading location filter over the list
	states     func() []choice // state options for both pickers

	// params, when set, is shared with the store's fetcher: discrete filter
	// and region changes are pushed into it and trigger a re-fetch, so the
	// server narrows the list. Free-text search stays client-side.
	params *api.ListParams

	form      *formSpec[T, D]
	deleteOp  func(ctx context.Context, item T) error
	itemLabel func(T) string

	// rowAction handles entity-specific keys on the selected row, such as
	// the reservation status moves. Returns nil when the key is not handled.
	rowAction func(item T, key string) tea.Cmd

	// loadOptions fetches reference catalogs before first use.
	loadOptions func(ctx context.Context) error
}

type screenMode int

const (
	modeBrowse screenMode = iota
	modeSearch
	modeForm
	modeConfirmDelete
)

// entityScreen is one management tab: a filtered table over the entity store
// plus the create/edit form and the delete confirmation.
type entityScreen[T any, D any] struct {
	cfg     screenConfig[T, D]
	table   table.Model
	search  textinput.Model
	mode    screenMode
	visible []T

	// form editing state
	focus     int
	textEdit  textinput.Model
	submitErr string

	pendingDelete *T
}

func newEntityScreen[T any, D any](cfg screenConfig[T, D]) *entityScreen[T, D] {
	tbl := table.New(
		table.WithColumns(cfg.columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)
	search := textinput.New()
	search.Placeholder = "Buscar..."
	search.CharLimit = 80
	search.Width = 40

	edit := textinput.New()
	edit.CharLimit = 200
	edit.Width = 48

	return &entityScreen[T, D]{cfg: cfg, table: tbl, search: search, textEdit: edit}
}

func (s *entityScreen[T, D]) key() string   { return s.cfg.name }
func (s *entityScreen[T, D]) title() string { return s.cfg.label }

// modalOpen reports whether the screen is capturing all input: a form or
// confirmation dialog is open, or the search box has focus.
func (s *entityScreen[T, D]) modalOpen() bool {
	return s.mode != modeBrowse
}

func (s *entityScreen[T, D]) init() []tea.Cmd {
	s.cfg.store.Reset()
	cmds := []tea.Cmd{s.reload()}
	if s.cfg.loadOptions != nil {
		cmds = append(cmds, s.loadOptionsCmd())
	}
	return cmds
}

func (s *entityScreen[T, D]) reload() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return listLoadedMsg{screen: s.cfg.name, err: s.cfg.store.Load(ctx)}
	}
}

func (s *entityScreen[T, D]) loadOptionsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		return optionsLoadedMsg{screen: s.cfg.name, err: s.cfg.loadOptions(ctx)}
	}
}

// mutate runs op through the store off the event loop.
func (s *entityScreen[T, D]) mutate(success string, op func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()
		err := s.cfg.store.Mutate(ctx, op)
		return mutationDoneMsg{screen: s.cfg.name, success: success, err: err}
	}
}

// syncServerFilters pushes the current discrete and region selections into
// the shared query parameters and re-fetches the list. Screens without
// cfg.params filter entirely client-side and skip the round trip.
func (s *entityScreen[T, D]) syncServerFilters() tea.Cmd {
	if s.cfg.params == nil {
		return nil
	}
	for _, f := range s.cfg.filters {
		f.syncParam(s.cfg.params)
	}
	if s.cfg.listRegion != nil {
		sel := s.cfg.listRegion.Selection()
		s.cfg.params.StateID = sel.StateID
		s.cfg.params.MunicipalityID = sel.MunicipalityID
		s.cfg.params.LocalityID = sel.LocalityID
	}
	return s.reload()
}

// refresh recomputes the visible subset and table rows.
func (s *entityScreen[T, D]) refresh() {
	lf := filter.ListFilter[T]{
		Term:   s.cfg.store.Search(),
		Fields: s.cfg.searchFld,
	}
	for _, f := range s.cfg.filters {
		lf.Discrete = append(lf.Discrete, f.predicate())
	}
	if s.cfg.listRegion != nil {
		sel := s.cfg.listRegion.Selection()
		ref := s.cfg.form // entityRef lives on the form spec
		if ref != nil && ref.entityRef != nil {
			lf.Discrete = append(lf.Discrete,
				func(e T) bool { return matchesRegion(ref.entityRef(e), sel) })
		}
	}

	s.visible = lf.Apply(s.cfg.store.Items())
	rows := make([]table.Row, len(s.visible))
	for i, item := range s.visible {
		rows[i] = s.cfg.toRow(item)
	}
	s.table.SetRows(rows)
	if s.table.Cursor() >= len(rows) {
		s.table.SetCursor(0)
	}
}

// matchesRegion applies the hierarchical location filter at the deepest
// selected level.
func matchesRegion(loc, sel models.LocationRef) bool {
	if sel.LocalityID != filter.None {
		return loc.LocalityID == sel.LocalityID
	}
	if sel.MunicipalityID != filter.None {
		return loc.MunicipalityID == sel.MunicipalityID
	}
	if sel.StateID != filter.None {
		return loc.StateID == sel.StateID
	}
	return true
}

func (s *entityScreen[T, D]) selectedItem() (T, bool) {
	var zero T
	i := s.table.Cursor()
	if i < 0 || i >= len(s.visible) {
		return zero, false
	}
	return s.visible[i], true
}

func (s *entityScreen[T, D]) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listLoadedMsg:
		s.refresh()
		return nil
	case optionsLoadedMsg:
		s.refresh()
		return nil
	case mutationDoneMsg:
		if s.mode == modeForm && s.cfg.form != nil {
			s.cfg.form.ctrl.Resolve(msg.err)
			if msg.err != nil {
				s.submitErr = friendlyError(msg.err)
			} else {
				s.closeForm()
			}
		}
		s.refresh()
		return nil
	case cascadeResultMsg:
		target := s.cfg.listRegion
		if msg.form && s.cfg.form != nil {
			target = s.cfg.form.cascade
		}
		if target != nil && target.Apply(msg.result) {
			s.refresh()
		}
		return nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.mode == modeBrowse {
		var cmd tea.Cmd
		s.table, cmd = s.table.Update(msg)
		return cmd
	}
	return nil
}

func (s *entityScreen[T, D]) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch s.mode {
	case modeSearch:
		return s.handleSearchKey(msg)
	case modeForm:
		return s.handleFormKey(msg)
	case modeConfirmDelete:
		return s.handleConfirmKey(msg)
	}
	return s.handleBrowseKey(msg)
}

func (s *entityScreen[T, D]) handleBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		s.mode = modeSearch
		s.search.SetValue(s.cfg.store.Search())
		s.search.Focus()
		return textinput.Blink
	case "r":
		return s.reload()
	case "n":
		if s.cfg.form != nil {
			return s.openCreate()
		}
	case "e":
		if s.cfg.form != nil {
			if item, ok := s.selectedItem(); ok {
				return s.openEdit(item)
			}
		}
	case "d":
		if s.cfg.deleteOp != nil {
			if item, ok := s.selectedItem(); ok {
				s.pendingDelete = &item
				s.mode = modeConfirmDelete
			}
		}
		return nil
	case "x":
		for _, f := range s.cfg.filters {
			f.selected = -1
		}
		if s.cfg.listRegion != nil {
			s.cfg.listRegion.Clear()
		}
		s.cfg.store.SetSearch("")
		s.refresh()
		return s.syncServerFilters()
	case "1", "2", "3", "4":
		i := int(msg.String()[0] - '1')
		if i < len(s.cfg.filters) {
			s.cfg.filters[i].cycle()
			s.refresh()
			return s.syncServerFilters()
		}
		return nil
	case "s":
		if s.cfg.listRegion != nil {
			next := cycleID(s.cfg.states(), s.cfg.listRegion.StateID())
			req := s.cfg.listRegion.SetState(next)
			s.refresh()
			return tea.Batch(
				runCascade(s.cfg.name, false, s.cfg.listRegion, req),
				s.syncServerFilters())
		}
	case "m":
		if s.cfg.listRegion != nil {
			next := cycleID(municipalityChoices(s.cfg.listRegion.Municipalities()), s.cfg.listRegion.MunicipalityID())
			req := s.cfg.listRegion.SetMunicipality(next)
			s.refresh()
			return tea.Batch(
				runCascade(s.cfg.name, false, s.cfg.listRegion, req),
				s.syncServerFilters())
		}
	case "l":
		if s.cfg.listRegion != nil {
			s.cfg.listRegion.SetLocality(cycleID(localityChoices(s.cfg.listRegion.Localities()), s.cfg.listRegion.LocalityID()))
			s.refresh()
			return s.syncServerFilters()
		}
		return nil
	default:
		if s.cfg.rowAction != nil {
			if item, ok := s.selectedItem(); ok {
				if cmd := s.cfg.rowAction(item, msg.String()); cmd != nil {
					return cmd
				}
			}
		}
	}

	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return cmd
}

func (s *entityScreen[T, D]) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		s.mode = modeBrowse
		s.search.Blur()
		return nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.cfg.store.SetSearch(s.search.Value())
	s.refresh()
	return cmd
}

func (s *entityScreen[T, D]) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		item := s.pendingDelete
		s.pendingDelete = nil
		s.mode = modeBrowse
		if item == nil {
			return nil
		}
		label := s.cfg.itemLabel(*item)
		return s.mutate("Se eliminó "+label, func(ctx context.Context) error {
			return s.cfg.deleteOp(ctx, *item)
		})
	case "n", "esc":
		s.pendingDelete = nil
		s.mode = modeBrowse
	}
	return nil
}

// cycleID advances through None plus the option ids.
func cycleID(opts []choice, current int64) int64 {
	if len(opts) == 0 {
		return filter.None
	}
	if current == filter.None {
		return opts[0].ID
	}
	for i, o := range opts {
		if o.ID == current {
			if i+1 < len(opts) {
				return opts[i+1].ID
			}
			return filter.None
		}
	}
	return filter.None
}

func municipalityChoices(ms []models.Municipality) []choice {
	out := make([]choice, len(ms))
	for i, m := range ms {
		out[i] = choice{ID: m.ID, Label: m.Name}
	}
	return out
}

func localityChoices(ls []models.Locality) []choice {
	out := make([]choice, len(ls))
	for i, l := range ls {
		out[i] = choice{ID: l.ID, Label: l.Name}
	}
	return out
}

// friendlyError prefers the backend's own message.
func friendlyError(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
