// Package filter holds the list-synchronization logic shared by every
// management screen: the cascading location selector and the visible-subset
// derivation for search and discrete filters.
package filter

import (
	"context"
	"log/slog"

	"github.com/costamaya/backoffice/internal/models"
)

// None is the "no selection" sentinel for every selector level.
const None int64 = 0

// LocationFetcher loads dependent option lists. *api.Client satisfies it.
type LocationFetcher interface {
	Municipalities(ctx context.Context, stateID int64) ([]models.Municipality, error)
	Localities(ctx context.Context, municipalityID int64) ([]models.Locality, error)
}

// Cascade keeps the three dependent location selections and their option
// lists consistent: child options always belong to the selected parent.
//
// The type itself is synchronous and owned by the UI event loop. Selection
// changes return a *Request describing the fetch the caller should run off
// the loop (a tea.Cmd in practice); the loop applies the result afterwards.
// Each request carries the generation of the selection that initiated it, so
// a result that resolves after a newer selection is discarded instead of
// overwriting current data with stale options.
type Cascade struct {
	fetcher LocationFetcher
	log     *slog.Logger

	stateID        int64
	municipalityID int64
	localityID     int64

	municipalities []models.Municipality
	localities     []models.Locality

	munGen uint64
	locGen uint64
}

// Level names a dependent option list.
type Level int

const (
	LevelMunicipalities Level = iota
	LevelLocalities
)

// Request is a pending option-list fetch.
type Request struct {
	Level    Level
	ParentID int64
	gen      uint64
}

// Result is the outcome of running a Request.
type Result struct {
	Level          Level
	Municipalities []models.Municipality
	Localities     []models.Locality
	Err            error
	gen            uint64
}

// NewCascade creates an empty cascade. log may be nil.
func NewCascade(fetcher LocationFetcher, log *slog.Logger) *Cascade {
	if log == nil {
		log = slog.Default()
	}
	return &Cascade{fetcher: fetcher, log: log}
}

// SetState selects a state. Municipality and locality selections reset to
// None and both dependent option lists are cleared before any fetch runs.
// Returns the municipality fetch for the new state, or nil when stateID is
// None.
func (c *Cascade) SetState(stateID int64) *Request {
	c.stateID = stateID
	c.municipalityID = None
	c.localityID = None
	c.municipalities = nil
	c.localities = nil
	c.munGen++
	c.locGen++

	if stateID == None {
		return nil
	}
	return &Request{Level: LevelMunicipalities, ParentID: stateID, gen: c.munGen}
}

// SetMunicipality selects a municipality. The locality selection resets to
// None and the locality option list is cleared. Returns the locality fetch,
// or nil when municipalityID is None.
func (c *Cascade) SetMunicipality(municipalityID int64) *Request {
	c.municipalityID = municipalityID
	c.localityID = None
	c.localities = nil
	c.locGen++

	if municipalityID == None {
		return nil
	}
	return &Request{Level: LevelLocalities, ParentID: municipalityID, gen: c.locGen}
}

// SetLocality selects a locality. No cascading effect.
func (c *Cascade) SetLocality(localityID int64) {
	c.localityID = localityID
}

// Clear resets all three selections to None and drops both option lists.
func (c *Cascade) Clear() {
	c.stateID = None
	c.municipalityID = None
	c.localityID = None
	c.municipalities = nil
	c.localities = nil
	c.munGen++
	c.locGen++
}

// Initialize seeds the cascade from an entity's saved location triple, as an
// edit form does on open. Unlike SetState/SetMunicipality it keeps the known
// child selections; only the option lists need loading. Returns the fetches
// required, in order.
func (c *Cascade) Initialize(ref models.LocationRef) []Request {
	c.stateID = ref.StateID
	c.municipalityID = ref.MunicipalityID
	c.localityID = ref.LocalityID
	c.municipalities = nil
	c.localities = nil
	c.munGen++
	c.locGen++

	var reqs []Request
	if ref.StateID != None {
		reqs = append(reqs, Request{Level: LevelMunicipalities, ParentID: ref.StateID, gen: c.munGen})
	}
	if ref.MunicipalityID != None {
		reqs = append(reqs, Request{Level: LevelLocalities, ParentID: ref.MunicipalityID, gen: c.locGen})
	}
	return reqs
}

// Run executes a fetch request. Safe to call off the event loop; it touches
// no Cascade state.
func (c *Cascade) Run(ctx context.Context, req Request) Result {
	res := Result{Level: req.Level, gen: req.gen}
	switch req.Level {
	case LevelMunicipalities:
		res.Municipalities, res.Err = c.fetcher.Municipalities(ctx, req.ParentID)
	case LevelLocalities:
		res.Localities, res.Err = c.fetcher.Localities(ctx, req.ParentID)
	}
	return res
}

// Apply folds a fetch result back into the cascade on the event loop. Stale
// results (superseded by a newer selection) are dropped. A failed fetch
// leaves the affected option list empty and the selections untouched; the
// error is logged and swallowed. Reports whether the result changed state.
func (c *Cascade) Apply(res Result) bool {
	switch res.Level {
	case LevelMunicipalities:
		if res.gen != c.munGen {
			return false
		}
		if res.Err != nil {
			c.log.Warn("municipality fetch failed", "error", res.Err)
			c.municipalities = nil
			return false
		}
		c.municipalities = res.Municipalities
	case LevelLocalities:
		if res.gen != c.locGen {
			return false
		}
		if res.Err != nil {
			c.log.Warn("locality fetch failed", "error", res.Err)
			c.localities = nil
			return false
		}
		c.localities = res.Localities
	}
	return true
}

// StateID returns the selected state, or None.
func (c *Cascade) StateID() int64 { return c.stateID }

// MunicipalityID returns the selected municipality, or None.
func (c *Cascade) MunicipalityID() int64 { return c.municipalityID }

// LocalityID returns the selected locality, or None.
func (c *Cascade) LocalityID() int64 { return c.localityID }

// Municipalities returns the current municipality options.
func (c *Cascade) Municipalities() []models.Municipality { return c.municipalities }

// Localities returns the current locality options.
func (c *Cascade) Localities() []models.Locality { return c.localities }

// Selection returns the current triple.
func (c *Cascade) Selection() models.LocationRef {
	return models.LocationRef{
		StateID:        c.stateID,
		MunicipalityID: c.municipalityID,
		LocalityID:     c.localityID,
	}
}
