package api

import (
	"context"
	"fmt"

	"github.com/costamaya/backoffice/internal/models"
)

// YachtInput is the writable subset of a yacht sent on create and update.
// Images are data URIs for new uploads; RemoveImageIDs names server-side
// images to drop during an update.
type YachtInput struct {
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	CategoryID     int64    `json:"categoryId"`
	TypeID         int64    `json:"typeId,omitempty"`
	Capacity       int      `json:"capacity"`
	PricePerDay    float64  `json:"pricePerDay"`
	Address        string   `json:"address,omitempty"`
	StateID        int64    `json:"stateId,omitempty"`
	MunicipalityID int64    `json:"municipalityId,omitempty"`
	LocalityID     int64    `json:"localityId,omitempty"`
	Images         []string `json:"images,omitempty"`
	RemoveImageIDs []int64  `json:"removeImageIds,omitempty"`
}

// ListYachts retrieves yachts, optionally server-filtered.
func (c *Client) ListYachts(ctx context.Context, params ListParams) ([]models.Yacht, error) {
	var yachts []models.Yacht
	if err := c.get(ctx, "/yachts", params.values(), &yachts); err != nil {
		return nil, fmt.Errorf("fetching yachts: %w", err)
	}
	return yachts, nil
}

// CreateYacht creates a yacht and returns the server's copy.
func (c *Client) CreateYacht(ctx context.Context, input YachtInput) (*models.Yacht, error) {
	var yacht models.Yacht
	if err := c.post(ctx, "/yachts", input, &yacht); err != nil {
		return nil, fmt.Errorf("creating yacht: %w", err)
	}
	return &yacht, nil
}

// UpdateYacht patches an existing yacht.
func (c *Client) UpdateYacht(ctx context.Context, id int64, input YachtInput) (*models.Yacht, error) {
	var yacht models.Yacht
	if err := c.patch(ctx, fmt.Sprintf("/yachts/%d", id), input, &yacht); err != nil {
		return nil, fmt.Errorf("updating yacht %d: %w", id, err)
	}
	return &yacht, nil
}

// DeleteYacht removes a yacht.
func (c *Client) DeleteYacht(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/yachts/%d", id)); err != nil {
		return fmt.Errorf("deleting yacht %d: %w", id, err)
	}
	return nil
}
