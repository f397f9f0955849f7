package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/costamaya/backoffice/internal/models"
)

// States retrieves all states.
func (c *Client) States(ctx context.Context) ([]models.State, error) {
	var states []models.State
	if err := c.get(ctx, "/states", nil, &states); err != nil {
		return nil, fmt.Errorf("fetching states: %w", err)
	}
	return states, nil
}

// Municipalities retrieves the municipalities of a state.
func (c *Client) Municipalities(ctx context.Context, stateID int64) ([]models.Municipality, error) {
	q := url.Values{"stateId": {strconv.FormatInt(stateID, 10)}}
	var municipalities []models.Municipality
	if err := c.get(ctx, "/municipalities", q, &municipalities); err != nil {
		return nil, fmt.Errorf("fetching municipalities for state %d: %w", stateID, err)
	}
	return municipalities, nil
}

// Localities retrieves the localities of a municipality.
func (c *Client) Localities(ctx context.Context, municipalityID int64) ([]models.Locality, error) {
	q := url.Values{"municipalityId": {strconv.FormatInt(municipalityID, 10)}}
	var localities []models.Locality
	if err := c.get(ctx, "/localities", q, &localities); err != nil {
		return nil, fmt.Errorf("fetching localities for municipality %d: %w", municipalityID, err)
	}
	return localities, nil
}
