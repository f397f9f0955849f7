// Package api is the typed HTTP client for the rental backend. Every
// operation returns the decoded payload from the backend's {data, message}
// envelope or an *Error carrying the server-provided message when there is
// one.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/costamaya/backoffice/internal/models"
)

// GeographyClient fetches the state/municipality/locality hierarchy.
type GeographyClient interface {
	States(ctx context.Context) ([]models.State, error)
	Municipalities(ctx context.Context, stateID int64) ([]models.Municipality, error)
	Localities(ctx context.Context, municipalityID int64) ([]models.Locality, error)
}

// AuthClient performs the login exchange.
type AuthClient interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// Client talks to the rental backend REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	token      string
}

// New creates a client for the backend at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		userAgent: "costamaya-backoffice/1.0 (github.com/costamaya/backoffice)",
	}
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Error is a non-2xx response from the backend. Message is the
// server-provided message when the body carried one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.Status)
}

// ServerMessage returns the backend's message from err when an *Error in its
// chain carries one, else the empty string. Callers use it to surface the
// server's wording before falling back to a generic message.
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// envelope is the uniform response body shape.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do issues the request and decodes the envelope's data field into out.
// out may be nil when the caller only cares about success (deletes).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var env envelope
		if json.Unmarshal(raw, &env) == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListParams are the server-side discrete filters a list endpoint accepts.
// Zero values are omitted, which the backend reads as "no filter".
type ListParams struct {
	CategoryID     int64
	TypeID         int64
	RoleID         int64
	StateID        int64
	MunicipalityID int64
	LocalityID     int64
	Status         string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	setID := func(key string, id int64) {
		if id != 0 {
			q.Set(key, strconv.FormatInt(id, 10))
		}
	}
	setID("categoryId", p.CategoryID)
	setID("typeId", p.TypeID)
	setID("roleId", p.RoleID)
	setID("stateId", p.StateID)
	setID("municipalityId", p.MunicipalityID)
	setID("localityId", p.LocalityID)
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}
