package api

import (
	"context"
	"fmt"

	"github.com/costamaya/backoffice/internal/models"
)

// CatalogResource names one of the lookup-table endpoints. All four share
// the CatalogEntry shape and the same CRUD surface.
type CatalogResource string

const (
	YachtCategories CatalogResource = "yacht-categories"
	YachtTypes      CatalogResource = "yacht-types"
	TourTypes       CatalogResource = "tour-types"
	ClubTypes       CatalogResource = "club-types"
)

// CatalogInput is the writable subset of a catalog entry.
type CatalogInput struct {
	Name           string `json:"name"`
	StateID        int64  `json:"stateId,omitempty"`
	MunicipalityID int64  `json:"municipalityId,omitempty"`
	LocalityID     int64  `json:"localityId,omitempty"`
}

// ListCatalog retrieves all entries of a catalog resource.
func (c *Client) ListCatalog(ctx context.Context, resource CatalogResource, params ListParams) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	if err := c.get(ctx, "/"+string(resource), params.values(), &entries); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", resource, err)
	}
	return entries, nil
}

// CreateCatalogEntry creates an entry in a catalog resource.
func (c *Client) CreateCatalogEntry(ctx context.Context, resource CatalogResource, input CatalogInput) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	if err := c.post(ctx, "/"+string(resource), input, &entry); err != nil {
		return nil, fmt.Errorf("creating %s entry: %w", resource, err)
	}
	return &entry, nil
}

// UpdateCatalogEntry patches an entry in a catalog resource.
func (c *Client) UpdateCatalogEntry(ctx context.Context, resource CatalogResource, id int64, input CatalogInput) (*models.CatalogEntry, error) {
	var entry models.CatalogEntry
	if err := c.patch(ctx, fmt.Sprintf("/%s/%d", resource, id), input, &entry); err != nil {
		return nil, fmt.Errorf("updating %s entry %d: %w", resource, id, err)
	}
	return &entry, nil
}

// DeleteCatalogEntry removes an entry from a catalog resource.
func (c *Client) DeleteCatalogEntry(ctx context.Context, resource CatalogResource, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/%s/%d", resource, id)); err != nil {
		return fmt.Errorf("deleting %s entry %d: %w", resource, id, err)
	}
	return nil
}
