// Package form implements the create/edit form lifecycle shared by every
// management screen: Closed, Open (create or edit), Submitting, back to
// Closed. The controller owns the draft; the canonical list is never touched
// from here.
package form

import (
	"context"
	"errors"
)

// State of the form lifecycle.
type State int

const (
	StateClosed State = iota
	StateOpen
	StateSubmitting
)

// Mode distinguishes create from edit while open.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

// ErrSubmitInFlight is returned by Submit while a previous submit has not
// resolved yet. The duplicate attempt has no side effect.
var ErrSubmitInFlight = errors.New("form: submit already in flight")

// ErrNotOpen is returned by Submit when the form is closed.
var ErrNotOpen = errors.New("form: not open")

// Config wires a controller to one entity's operations. D is the draft type,
// a plain struct mirroring the entity's editable fields.
type Config[D any] struct {
	// Defaults returns the draft for a fresh create form, pre-filled with
	// the entity's explicit default field values.
	Defaults func() D

	// Validate checks required fields and numeric ranges before any request
	// is issued. A non-nil error keeps the form open and skips the API call.
	Validate func(d D) error

	// Create and Update perform the API write for the respective mode.
	Create func(ctx context.Context, d D) error
	Update func(ctx context.Context, d D) error
}

// Controller runs the form state machine for one entity type.
type Controller[D any] struct {
	cfg   Config[D]
	state State
	mode  Mode
	draft D
}

// NewController creates a closed controller.
func NewController[D any](cfg Config[D]) *Controller[D] {
	return &Controller[D]{cfg: cfg}
}

// OpenCreate opens the form with a fresh default draft.
func (c *Controller[D]) OpenCreate() {
	c.state = StateOpen
	c.mode = ModeCreate
	c.draft = c.cfg.Defaults()
}

// OpenEdit opens the form with draft pre-populated from an existing entity.
// The caller builds the draft as a copy; the entity itself is never mutated
// through the form.
func (c *Controller[D]) OpenEdit(draft D) {
	c.state = StateOpen
	c.mode = ModeEdit
	c.draft = draft
}

// Draft returns the mutable draft. Only meaningful while open.
func (c *Controller[D]) Draft() *D {
	return &c.draft
}

// Update applies a field mutation to the draft. Ignored unless the form is
// open (a submit in flight freezes the draft).
func (c *Controller[D]) Update(mutate func(d *D)) {
	if c.state != StateOpen {
		return
	}
	mutate(&c.draft)
}

// Submit validates the draft and, when valid, moves to Submitting and
// returns the API operation to run. Exactly one operation is outstanding at
// a time: while Submitting, further calls return ErrSubmitInFlight and issue
// nothing. A validation error keeps the form open and issues nothing.
//
// The caller runs op off the event loop and feeds the outcome to Resolve.
func (c *Controller[D]) Submit() (op func(ctx context.Context) error, err error) {
	switch c.state {
	case StateSubmitting:
		return nil, ErrSubmitInFlight
	case StateClosed:
		return nil, ErrNotOpen
	}

	if c.cfg.Validate != nil {
		if err := c.cfg.Validate(c.draft); err != nil {
			return nil, err
		}
	}

	c.state = StateSubmitting
	draft := c.draft
	if c.mode == ModeEdit {
		return func(ctx context.Context) error { return c.cfg.Update(ctx, draft) }, nil
	}
	return func(ctx context.Context) error { return c.cfg.Create(ctx, draft) }, nil
}

// Resolve folds the submit outcome back in. Success closes the form and
// discards the draft; failure returns to Open with the draft intact so the
// user can retry.
func (c *Controller[D]) Resolve(err error) {
	if c.state != StateSubmitting {
		return
	}
	if err != nil {
		c.state = StateOpen
		return
	}
	c.Close()
}

// Close discards the draft unconditionally and returns to Closed.
func (c *Controller[D]) Close() {
	var zero D
	c.state = StateClosed
	c.draft = zero
}

// State returns the current lifecycle state.
func (c *Controller[D]) State() State { return c.state }

// Mode returns the open mode. Only meaningful while open or submitting.
func (c *Controller[D]) Mode() Mode { return c.mode }
