package api

import (
	"context"
	"fmt"

	"github.com/costamaya/backoffice/internal/models"
)

// UserInput is the writable subset of a user account. Password is only sent
// when set (create, or an explicit reset during edit).
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
	RoleID   int64  `json:"roleId"`
	Password string `json:"password,omitempty"`
}

// ListUsers retrieves users, optionally server-filtered by role.
func (c *Client) ListUsers(ctx context.Context, params ListParams) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/users", params.values(), &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, input UserInput) (*models.User, error) {
	var user models.User
	if err := c.post(ctx, "/users", input, &user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	return &user, nil
}

// UpdateUser patches an existing user account.
func (c *Client) UpdateUser(ctx context.Context, id int64, input UserInput) (*models.User, error) {
	var user models.User
	if err := c.patch(ctx, fmt.Sprintf("/users/%d", id), input, &user); err != nil {
		return nil, fmt.Errorf("updating user %d: %w", id, err)
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	if err := c.delete(ctx, fmt.Sprintf("/users/%d", id)); err != nil {
		return fmt.Errorf("deleting user %d: %w", id, err)
	}
	return nil
}

// ListRoles retrieves the role catalog.
func (c *Client) ListRoles(ctx context.Context) ([]models.CatalogEntry, error) {
	var roles []models.CatalogEntry
	if err := c.get(ctx, "/roles", nil, &roles); err != nil {
		return nil, fmt.Errorf("fetching roles: %w", err)
	}
	return roles, nil
}
