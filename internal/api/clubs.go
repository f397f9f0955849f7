package api

import (
	"context"
	"fmt"

	"github.com/costamaya/backoffice/internal/models"
)

// ClubInput is the writable subset of a club.
type ClubInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	Address        string   `json:"address,omitempty"`
	TypeID         int64    `json:"typeId"`
	Capacity       int      `json:"capacity,omitempty"`
	StateID        int64    `json:"stateId,omitempty"`
	MunicipalityID int64    `json:"municipalityId,omitempty"`
	LocalityID     int64    `json:"localityId,omitempty"`
	Images         []string `json:"images,omitempty"`
	RemoveImageIDs []int64  `json:"removeImageIds,omitempty"`
}

// ListClubs retrieves clubs, optionally server-filtered.
func (c *Client) ListClubs(ctx context.Context, params ListParams) ([]models.Club, error) {
	var clubs []models.Club
	if err := c.get(ctx, "/clubs", params.values(), &clubs); err != nil {
		return nil, fmt.Errorf("fetching clubs: %w", err)
	}
	return clubs, nil
}

// CreateClub creates a club.
func (c *Client) CreateClub(ctx context.Context, input ClubInput) (*models.Club, error) {
	var club models.Club
	if err := c.post(ctx, "/clubs", input, &club); err != nil {
		return nil, fmt.Errorf("creating club: %w", err)
	}
	return &club, nil
}

// UpdateClub patches an existing club.
func (c *Client) UpdateClub(ctx context.Context, id int64, input ClubInput) (*models.Club, error) {
	var club models.Club
	if err := c.patch(ctx, fmt.Sprintf("/clubs/%d", id), input, &club); err != nil {
		return nil, fmt.Errorf("updating club %d: %w", id, err)
	}
	return &club, nil
}

// DeleteClub removes a club.
func (c *Client) DeleteClub(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/clubs/%d", id)); err != nil {
		return fmt.Errorf("deleting club %d: %w", id, err)
	}
	return nil
}
