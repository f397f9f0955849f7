package stub

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/models"
)

func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	srv := New(Catalog{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return api.New(ts.URL, 5*time.Second)
}

func login(t *testing.T, c *api.Client) *api.LoginResult {
	t.Helper()
	result, err := c.Login(context.Background(), "admin@costamaya.mx", "sandbox")
	require.NoError(t, err)
	return result
}

func TestLogin(t *testing.T) {
	c := newTestClient(t)

	result := login(t, c)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, "admin@costamaya.mx", result.User.Email)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	c := newTestClient(t)

	_, err := c.Login(context.Background(), "admin@costamaya.mx", "wrong")
	require.Error(t, err)
	assert.Equal(t, "Credenciales incorrectas", api.ServerMessage(err))
}

func TestRequestsWithoutTokenAreRejected(t *testing.T) {
	c := newTestClient(t)

	_, err := c.ListYachts(context.Background(), api.ListParams{})
	require.Error(t, err)
	assert.Equal(t, "Sesión no válida", api.ServerMessage(err))
}

func TestGeographyScoping(t *testing.T) {
	c := newTestClient(t)
	login(t, c)
	ctx := context.Background()

	states, err := c.States(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, states)

	municipalities, err := c.Municipalities(ctx, 23)
	require.NoError(t, err)
	for _, m := range municipalities {
		assert.Equal(t, int64(23), m.StateID)
	}

	localities, err := c.Localities(ctx, 2301)
	require.NoError(t, err)
	require.NotEmpty(t, localities)
	for _, l := range localities {
		assert.Equal(t, int64(2301), l.MunicipalityID)
	}
}

func TestYachtLifecycle(t *testing.T) {
	c := newTestClient(t)
	login(t, c)
	ctx := context.Background()

	categories, err := c.ListCatalog(ctx, api.YachtCategories, api.ListParams{})
	require.NoError(t, err)
	require.NotEmpty(t, categories)

	created, err := c.CreateYacht(ctx, api.YachtInput{
		Name:        "Brisa Azul",
		CategoryID:  categories[0].ID,
		Capacity:    8,
		PricePerDay: 18000,
		Images:      []string{"data:image/png;base64,AA=="},
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, categories[0].Name, created.CategoryName)
	require.Len(t, created.Images, 1)
	assert.NotZero(t, created.Images[0].ID)

	updated, err := c.UpdateYacht(ctx, created.ID, api.YachtInput{
		Name:           "Brisa Azul II",
		CategoryID:     categories[0].ID,
		Capacity:       8,
		PricePerDay:    18000,
		RemoveImageIDs: []int64{created.Images[0].ID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Brisa Azul II", updated.Name)
	assert.Empty(t, updated.Images)

	require.NoError(t, c.DeleteYacht(ctx, created.ID))

	yachts, err := c.ListYachts(ctx, api.ListParams{})
	require.NoError(t, err)
	for _, y := range yachts {
		assert.NotEqual(t, created.ID, y.ID)
	}
}

func TestListFiltersByLocation(t *testing.T) {
	c := newTestClient(t)
	login(t, c)
	ctx := context.Background()

	yachts, err := c.ListYachts(ctx, api.ListParams{MunicipalityID: 2301})
	require.NoError(t, err)
	require.NotEmpty(t, yachts)
	for _, y := range yachts {
		assert.Equal(t, int64(2301), y.MunicipalityID)
	}

	none, err := c.ListYachts(ctx, api.ListParams{MunicipalityID: 3101})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReservationStatusRules(t *testing.T) {
	c := newTestClient(t)
	login(t, c)
	ctx := context.Background()

	reservations, err := c.ListReservations(ctx, api.ListParams{Status: string(models.ReservationPending)})
	require.NoError(t, err)
	require.NotEmpty(t, reservations)
	pending := reservations[0]

	confirmed, err := c.UpdateReservationStatus(ctx, pending, models.ReservationConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, confirmed.Status)

	// Confirmed is terminal; the client refuses before the wire.
	_, err = c.UpdateReservationStatus(ctx, *confirmed, models.ReservationCompleted)
	assert.Error(t, err)
}

func TestServerRejectsIllegalTransition(t *testing.T) {
	srv := New(Catalog{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	c := api.New(ts.URL, 5*time.Second)
	login(t, c)
	ctx := context.Background()

	reservations, err := c.ListReservations(ctx, api.ListParams{})
	require.NoError(t, err)
	require.NotEmpty(t, reservations)
	pending := reservations[0]

	_, err = c.UpdateReservationStatus(ctx, pending, models.ReservationConfirmed)
	require.NoError(t, err)

	// Bypass the client-side guard by lying about the current status.
	stale := pending
	stale.Status = models.ReservationPending
	_, err = c.UpdateReservationStatus(ctx, stale, models.ReservationCancelled)
	require.Error(t, err)
	assert.Equal(t, "Transición de estado no permitida", api.ServerMessage(err))
}

func TestCatalogCRUD(t *testing.T) {
	c := newTestClient(t)
	login(t, c)
	ctx := context.Background()

	created, err := c.CreateCatalogEntry(ctx, api.TourTypes, api.CatalogInput{Name: "Buceo", StateID: 23})
	require.NoError(t, err)
	assert.Equal(t, int64(23), created.StateID)

	updated, err := c.UpdateCatalogEntry(ctx, api.TourTypes, created.ID, api.CatalogInput{Name: "Buceo certificado"})
	require.NoError(t, err)
	assert.Equal(t, "Buceo certificado", updated.Name)

	require.NoError(t, c.DeleteCatalogEntry(ctx, api.TourTypes, created.ID))
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	c := newTestClient(t)
	login(t, c)
	ctx := context.Background()

	_, err := c.CreateUser(ctx, api.UserInput{
		Name:     "Duplicado",
		Email:    "admin@costamaya.mx",
		RoleID:   1,
		Password: "x",
	})
	require.Error(t, err)
	assert.Equal(t, "El correo ya está registrado", api.ServerMessage(err))
}
