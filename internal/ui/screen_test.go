package ui

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/form"
	"github.com/costamaya/backoffice/internal/models"
	"github.com/costamaya/backoffice/internal/store"
)

func newTestYachtScreen() *entityScreen[models.Yacht, yachtDraft] {
	client := api.New("http://127.0.0.1:1", time.Second)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	states := &stateOptions{choices: []choice{{ID: 23, Label: "Quintana Roo"}}}
	return newYachtScreen(client, log, states)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestScreen_OpenAndCancelForm(t *testing.T) {
	s := newTestYachtScreen()

	s.update(keyRunes("n"))
	if s.mode != modeForm {
		t.Fatalf("After 'n', mode = %v, want modeForm", s.mode)
	}
	if !s.modalOpen() {
		t.Error("Expected modalOpen while form is open")
	}
	if s.cfg.form.ctrl.State() != form.StateOpen {
		t.Errorf("Controller state = %v, want StateOpen", s.cfg.form.ctrl.State())
	}

	s.update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.mode != modeBrowse {
		t.Errorf("After esc, mode = %v, want modeBrowse", s.mode)
	}
	if s.cfg.form.ctrl.State() != form.StateClosed {
		t.Errorf("Controller state = %v, want StateClosed", s.cfg.form.ctrl.State())
	}
}

func TestScreen_FormTypingEditsDraft(t *testing.T) {
	s := newTestYachtScreen()
	s.update(keyRunes("n"))

	for _, r := range "Brisa" {
		s.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	if got := s.cfg.form.ctrl.Draft().Name; got != "Brisa" {
		t.Errorf("Draft name = %q, want 'Brisa'", got)
	}
}

func TestScreen_SubmitValidationKeepsFormOpen(t *testing.T) {
	s := newTestYachtScreen()
	s.update(keyRunes("n"))

	cmd := s.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("Expected no API command for an invalid draft")
	}
	if s.mode != modeForm {
		t.Errorf("After invalid submit, mode = %v, want modeForm", s.mode)
	}
	if s.submitErr == "" {
		t.Error("Expected a validation message")
	}
	if s.cfg.form.ctrl.State() != form.StateOpen {
		t.Errorf("Controller state = %v, want StateOpen", s.cfg.form.ctrl.State())
	}
}

func TestScreen_RetryAfterFailedSubmitStagesImageOnce(t *testing.T) {
	s := newTestYachtScreen()
	path := filepath.Join(t.TempDir(), "proa.png")
	if err := os.WriteFile(path, []byte("png-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	s.update(keyRunes("n"))
	d := s.cfg.form.ctrl.Draft()
	d.Name = "Perla"
	d.CategoryID = 1
	d.Capacity = "8"
	d.Price = "4500"
	d.ImagePath = path

	cmd := s.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a submit command for a valid draft")
	}
	done, ok := cmd().(mutationDoneMsg)
	if !ok || done.err == nil {
		t.Fatalf("Expected a failed mutation against the unreachable backend, got %#v", done)
	}
	s.update(done)
	if s.mode != modeForm {
		t.Fatal("Form must stay open after a failed submit")
	}

	cmd = s.update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("Expected a retry command")
	}
	cmd()

	if got := len(d.Images.Added()); got != 1 {
		t.Errorf("Staged attachments after retry = %d, want 1", got)
	}
}

func TestScreen_SearchModeCapturesInput(t *testing.T) {
	s := newTestYachtScreen()

	s.update(keyRunes("/"))
	if s.mode != modeSearch {
		t.Fatalf("After '/', mode = %v, want modeSearch", s.mode)
	}
	if !s.modalOpen() {
		t.Error("Expected search mode to capture input")
	}

	s.update(keyRunes("perla"))
	if got := s.cfg.store.Search(); got != "perla" {
		t.Errorf("Search term = %q, want 'perla'", got)
	}

	s.update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.mode != modeBrowse {
		t.Errorf("After enter, mode = %v, want modeBrowse", s.mode)
	}
	if got := s.cfg.store.Search(); got != "perla" {
		t.Errorf("Search term after closing box = %q, want 'perla'", got)
	}
}

func TestScreen_ClearFiltersAndSearch(t *testing.T) {
	s := newTestYachtScreen()
	s.cfg.store.SetSearch("algo")
	s.cfg.filters[0].selected = 0

	s.update(keyRunes("x"))

	if got := s.cfg.store.Search(); got != "" {
		t.Errorf("Search after clear = %q, want empty", got)
	}
	if s.cfg.filters[0].selected != -1 {
		t.Errorf("Filter after clear = %d, want -1", s.cfg.filters[0].selected)
	}
}

func TestScreen_DeleteNeedsConfirmation(t *testing.T) {
	s := newTestYachtScreen()
	seedYachts(s, models.Yacht{ID: 7, Name: "Perla"})

	s.update(keyRunes("d"))
	if s.mode != modeConfirmDelete {
		t.Fatalf("After 'd', mode = %v, want modeConfirmDelete", s.mode)
	}

	s.update(keyRunes("n"))
	if s.mode != modeBrowse {
		t.Errorf("After declining, mode = %v, want modeBrowse", s.mode)
	}
	if s.pendingDelete != nil {
		t.Error("Expected pending delete to be cleared")
	}
}

func TestScreen_ConfirmDeleteIssuesCommand(t *testing.T) {
	s := newTestYachtScreen()
	seedYachts(s, models.Yacht{ID: 7, Name: "Perla"})

	s.update(keyRunes("d"))
	cmd := s.update(keyRunes("y"))
	if cmd == nil {
		t.Error("Expected a delete command after confirmation")
	}
	if s.mode != modeBrowse {
		t.Errorf("After confirming, mode = %v, want modeBrowse", s.mode)
	}
}

func TestCycleID(t *testing.T) {
	opts := []choice{{ID: 1, Label: "a"}, {ID: 2, Label: "b"}}

	if got := cycleID(opts, 0); got != 1 {
		t.Errorf("cycleID from none = %d, want 1", got)
	}
	if got := cycleID(opts, 1); got != 2 {
		t.Errorf("cycleID from 1 = %d, want 2", got)
	}
	if got := cycleID(opts, 2); got != 0 {
		t.Errorf("cycleID wraps to none, got %d", got)
	}
	if got := cycleID(nil, 5); got != 0 {
		t.Errorf("cycleID with no options = %d, want 0", got)
	}
}

func TestCycleChoice_Backwards(t *testing.T) {
	opts := []choice{{ID: 1}, {ID: 2}}

	if got := cycleChoice(opts, 0, -1); got != 2 {
		t.Errorf("cycleChoice back from none = %d, want 2", got)
	}
	if got := cycleChoice(opts, 1, -1); got != 0 {
		t.Errorf("cycleChoice back from first = %d, want none", got)
	}
}

func TestMatchesRegion(t *testing.T) {
	loc := models.LocationRef{StateID: 23, MunicipalityID: 2301, LocalityID: 230101}

	if !matchesRegion(loc, models.LocationRef{}) {
		t.Error("Empty selection must match everything")
	}
	if !matchesRegion(loc, models.LocationRef{StateID: 23}) {
		t.Error("State-level selection should match")
	}
	if matchesRegion(loc, models.LocationRef{StateID: 23, MunicipalityID: 9999}) {
		t.Error("Deeper selection wins over matching parent")
	}
	if !matchesRegion(loc, models.LocationRef{StateID: 23, MunicipalityID: 2301, LocalityID: 230101}) {
		t.Error("Full triple should match")
	}
}

func TestScreen_ServerFilteredMode(t *testing.T) {
	params := &api.ListParams{}
	s := newEntityScreen(screenConfig[models.Yacht, yachtDraft]{
		name:  "yachts",
		store: store.New("yachts", func(context.Context) ([]models.Yacht, error) {
			return nil, nil
		}, slog.New(slog.NewTextHandler(io.Discard, nil))),
		toRow:     func(y models.Yacht) table.Row { return table.Row{y.Name} },
		searchFld: func(y models.Yacht) []string { return []string{y.Name} },
		filters: []*choiceFilter[models.Yacht]{
			{
				label:    "Categoría",
				options:  func() []choice { return []choice{{ID: 3, Label: "Lujo"}} },
				keyID:    func(y models.Yacht) int64 { return y.CategoryID },
				param:    func(p *api.ListParams, sel choice) { p.CategoryID = sel.ID },
				selected: -1,
			},
		},
		params: params,
	})

	cmd := s.update(keyRunes("1"))
	if cmd == nil {
		t.Error("Expected a re-fetch command after selecting a filter")
	}
	if params.CategoryID != 3 {
		t.Errorf("CategoryID = %d, want 3", params.CategoryID)
	}

	cmd = s.update(keyRunes("1"))
	if cmd == nil {
		t.Error("Expected a re-fetch command after clearing the filter")
	}
	if params.CategoryID != 0 {
		t.Errorf("CategoryID after wrap-around = %d, want 0", params.CategoryID)
	}
}

// seedYachts swaps in a store pre-filled with items, the same wholesale
// replacement a successful fetch performs.
func seedYachts(s *entityScreen[models.Yacht, yachtDraft], items ...models.Yacht) {
	s.cfg.store = store.New("yachts", func(context.Context) ([]models.Yacht, error) {
		return items, nil
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := s.cfg.store.Load(context.Background()); err != nil {
		panic(err)
	}
	s.refresh()
}
