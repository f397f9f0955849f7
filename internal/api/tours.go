package api

import (
	"context"
	"fmt"

	"github.com/costamaya/backoffice/internal/models"
)

// TourInput is the writable subset of a tour.
type TourInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	TypeID         int64    `json:"typeId"`
	Capacity       int      `json:"capacity"`
	Price          float64  `json:"price"`
	Status         string   `json:"status"`
	StateID        int64    `json:"stateId,omitempty"`
	MunicipalityID int64    `json:"municipalityId,omitempty"`
	LocalityID     int64    `json:"localityId,omitempty"`
	Images         []string `json:"images,omitempty"`
	RemoveImageIDs []int64  `json:"removeImageIds,omitempty"`
}

// ListTours retrieves tours, optionally server-filtered.
func (c *Client) ListTours(ctx context.Context, params ListParams) ([]models.Tour, error) {
	var tours []models.Tour
	if err := c.get(ctx, "/tours", params.values(), &tours); err != nil {
		return nil, fmt.Errorf("fetching tours: %w", err)
	}
	return tours, nil
}

// CreateTour creates a tour.
func (c *Client) CreateTour(ctx context.Context, input TourInput) (*models.Tour, error) {
	var tour models.Tour
	if err := c.post(ctx, "/tours", input, &tour); err != nil {
		return nil, fmt.Errorf("creating tour: %w", err)
	}
	return &tour, nil
}

// UpdateTour patches an existing tour.
func (c *Client) UpdateTour(ctx context.Context, id int64, input TourInput) (*models.Tour, error) {
	var tour models.Tour
	if err := c.patch(ctx, fmt.Sprintf("/tours/%d", id), input, &tour); err != nil {
		return nil, fmt.Errorf("updating tour %d: %w", id, err)
	}
	return &tour, nil
}

// DeleteTour removes a tour.
func (c *Client) DeleteTour(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/tours/%d", id)); err != nil {
		return fmt.Errorf("deleting tour %d: %w", id, err)
	}
	return nil
}
