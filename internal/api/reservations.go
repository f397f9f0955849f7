package api

import (
	"context"
	"fmt"

	"github.com/costamaya/backoffice/internal/models"
)

// ReservationInput is the writable subset of a reservation.
type ReservationInput struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	YachtID       int64   `json:"yachtId,omitempty"`
	TourID        int64   `json:"tourId,omitempty"`
	ClubID        int64   `json:"clubId,omitempty"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate,omitempty"`
	Guests        int     `json:"guests"`
	Total         float64 `json:"total,omitempty"`
}

// ListReservations retrieves reservations, optionally server-filtered by
// status or resource.
func (c *Client) ListReservations(ctx context.Context, params ListParams) ([]models.Reservation, error) {
	var reservations []models.Reservation
	if err := c.get(ctx, "/reservations", params.values(), &reservations); err != nil {
		return nil, fmt.Errorf("fetching reservations: %w", err)
	}
	return reservations, nil
}

// CreateReservation creates a reservation. New reservations start pending on
// the server side.
func (c *Client) CreateReservation(ctx context.Context, input ReservationInput) (*models.Reservation, error) {
	var r models.Reservation
	if err := c.post(ctx, "/reservations", input, &r); err != nil {
		return nil, fmt.Errorf("creating reservation: %w", err)
	}
	return &r, nil
}

// UpdateReservation patches an existing reservation's editable fields.
func (c *Client) UpdateReservation(ctx context.Context, id int64, input ReservationInput) (*models.Reservation, error) {
	var r models.Reservation
	if err := c.patch(ctx, fmt.Sprintf("/reservations/%d", id), input, &r); err != nil {
		return nil, fmt.Errorf("updating reservation %d: %w", id, err)
	}
	return &r, nil
}

// UpdateReservationStatus moves a reservation to a new status. The legality
// of the transition is checked locally before any request is issued; the
// server enforces it again.
func (c *Client) UpdateReservationStatus(ctx context.Context, r models.Reservation, target models.ReservationStatus) (*models.Reservation, error) {
	if !r.Status.CanTransition(target) {
		return nil, fmt.Errorf("reservation %d: cannot move from %s to %s", r.ID, r.Status, target)
	}
	var updated models.Reservation
	body := map[string]models.ReservationStatus{"status": target}
	if err := c.patch(ctx, fmt.Sprintf("/reservations/%d", r.ID), body, &updated); err != nil {
		return nil, fmt.Errorf("updating reservation %d status: %w", r.ID, err)
	}
	return &updated, nil
}

// DeleteReservation removes a reservation.
func (c *Client) DeleteReservation(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/reservations/%d", id)); err != nil {
		return fmt.Errorf("deleting reservation %d: %w", id, err)
	}
	return nil
}
