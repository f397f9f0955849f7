package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/costamaya/backoffice/internal/api"
	"github.com/costamaya/backoffice/internal/filter"
	"github.com/costamaya/backoffice/internal/form"
	"github.com/costamaya/backoffice/internal/models"
	"github.com/costamaya/backoffice/internal/store"
)

// stateOptions is the shared state catalog, loaded once after login and read
// by every location picker.
type stateOptions struct {
	choices []choice
}

func (o *stateOptions) get() []choice { return o.choices }

// Field constructors.

func textField(label string, get func() string, set func(string)) fieldSpec {
	return fieldSpec{label: label, get: get, set: set}
}

func secretField(label string, get func() string, set func(string)) fieldSpec {
	return fieldSpec{label: label, secret: true, get: get, set: set}
}

func selectField(label string, options func() []choice, get func() int64, set func(int64)) fieldSpec {
	return fieldSpec{
		label:      label,
		options:    options,
		selectedID: get,
		setID: func(id int64) tea.Cmd {
			set(id)
			return nil
		},
	}
}

// locationFields builds the three cascading picker fields over a form's
// cascade. Changing a parent resets and refetches the children.
func locationFields(screen string, c *filter.Cascade, states func() []choice) []fieldSpec {
	return []fieldSpec{
		{
			label:      "Estado",
			options:    states,
			selectedID: c.StateID,
			setID: func(id int64) tea.Cmd {
				return runCascade(screen, true, c, c.SetState(id))
			},
		},
		{
			label:      "Municipio",
			options:    func() []choice { return municipalityChoices(c.Municipalities()) },
			selectedID: c.MunicipalityID,
			setID: func(id int64) tea.Cmd {
				return runCascade(screen, true, c, c.SetMunicipality(id))
			},
		},
		{
			label:      "Localidad",
			options:    func() []choice { return localityChoices(c.Localities()) },
			selectedID: c.LocalityID,
			setID: func(id int64) tea.Cmd {
				c.SetLocality(id)
				return nil
			},
		},
	}
}

func catalogChoices(s *store.Store[models.CatalogEntry]) func() []choice {
	return func() []choice {
		entries := s.Items()
		out := make([]choice, len(entries))
		for i, e := range entries {
			out[i] = choice{ID: e.ID, Label: e.Name}
		}
		return out
	}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

// stageImages folds a path typed into the image field plus the staged draft
// into the request payload. Staging is per-path idempotent, so a retried
// submit after an API failure does not upload the file twice.
func stageImages(d *form.ImageDraft, path string) (uris []string, removeIDs []int64, err error) {
	if err := d.StageFile(path); err != nil {
		return nil, nil, err
	}
	uris, removeIDs = d.Payload()
	return uris, removeIDs, nil
}

// Yachts

type yachtDraft struct {
	ID          int64
	Name        string
	Description string
	Address     string
	Capacity    string
	Price       string
	CategoryID  int64
	TypeID      int64
	Location    models.LocationRef
	Images      *form.ImageDraft
	ImagePath   string
}

func newYachtScreen(client *api.Client, log *slog.Logger, states *stateOptions) *entityScreen[models.Yacht, yachtDraft] {
	params := &api.ListParams{}
	yachts := store.New("yachts", func(ctx context.Context) ([]models.Yacht, error) {
		return client.ListYachts(ctx, *params)
	}, log)
	categories := store.New("yacht-categories", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return client.ListCatalog(ctx, api.YachtCategories, api.ListParams{})
	}, log)
	types := store.New("yacht-types", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return client.ListCatalog(ctx, api.YachtTypes, api.ListParams{})
	}, log)

	formCascade := filter.NewCascade(client, log)
	listCascade := filter.NewCascade(client, log)

	toInput := func(d yachtDraft) (api.YachtInput, error) {
		uris, removeIDs, err := stageImages(d.Images, d.ImagePath)
		if err != nil {
			return api.YachtInput{}, err
		}
		return api.YachtInput{
			Name:           d.Name,
			Description:    d.Description,
			CategoryID:     d.CategoryID,
			TypeID:         d.TypeID,
			Capacity:       form.ParseInt(d.Capacity),
			PricePerDay:    form.ParseFloat(d.Price),
			Address:        d.Address,
			StateID:        d.Location.StateID,
			MunicipalityID: d.Location.MunicipalityID,
			LocalityID:     d.Location.LocalityID,
			Images:         uris,
			RemoveImageIDs: removeIDs,
		}, nil
	}

	ctrl := form.NewController(form.Config[yachtDraft]{
		Defaults: func() yachtDraft {
			return yachtDraft{Images: form.NewImageDraft(nil)}
		},
		Validate: func(d yachtDraft) error {
			var v form.Errors
			v.Required("nombre", d.Name)
			v.Selected("categoría", d.CategoryID)
			v.PositiveInt("capacidad", form.ParseInt(d.Capacity))
			v.PositiveFloat("precio por día", form.ParseFloat(d.Price))
			return v.Err()
		},
		Create: func(ctx context.Context, d yachtDraft) error {
			input, err := toInput(d)
			if err != nil {
				return err
			}
			_, err = client.CreateYacht(ctx, input)
			return err
		},
		Update: func(ctx context.Context, d yachtDraft) error {
			input, err := toInput(d)
			if err != nil {
				return err
			}
			_, err = client.UpdateYacht(ctx, d.ID, input)
			return err
		},
	})

	spec := &formSpec[models.Yacht, yachtDraft]{
		ctrl: ctrl,
		fromEntity: func(y models.Yacht) yachtDraft {
			return yachtDraft{
				ID:          y.ID,
				Name:        y.Name,
				Description: y.Description,
				Address:     y.Address,
				Capacity:    strconv.Itoa(y.Capacity),
				Price:       strconv.FormatFloat(y.PricePerDay, 'f', 2, 64),
				CategoryID:  y.CategoryID,
				TypeID:      y.TypeID,
				Location:    y.Ref(),
				Images:      form.NewImageDraft(y.Images),
			}
		},
		cascade:     formCascade,
		entityRef:   func(y models.Yacht) models.LocationRef { return y.Ref() },
		setLocation: func(d *yachtDraft, ref models.LocationRef) { d.Location = ref },
	}
	draft := func() *yachtDraft { return ctrl.Draft() }
	spec.fields = func() []fieldSpec {
		fields := []fieldSpec{
			textField("Nombre", func() string { return draft().Name }, func(v string) { draft().Name = v }),
			textField("Descripción", func() string { return draft().Description }, func(v string) { draft().Description = v }),
			selectField("Categoría", catalogChoices(categories),
				func() int64 { return draft().CategoryID }, func(id int64) { draft().CategoryID = id }),
			selectField("Tipo", catalogChoices(types),
				func() int64 { return draft().TypeID }, func(id int64) { draft().TypeID = id }),
			textField("Capacidad", func() string { return draft().Capacity }, func(v string) { draft().Capacity = v }),
			textField("Precio por día", func() string { return draft().Price }, func(v string) { draft().Price = v }),
			textField("Dirección", func() string { return draft().Address }, func(v string) { draft().Address = v }),
			textField("Agregar imagen (ruta)", func() string { return draft().ImagePath }, func(v string) { draft().ImagePath = v }),
		}
		return append(fields, locationFields("yachts", formCascade, states.get)...)
	}

	return newEntityScreen(screenConfig[models.Yacht, yachtDraft]{
		name:  "yachts",
		label: "Yates",
		store: yachts,
		columns: []table.Column{
			{Title: "Nombre", Width: 24},
			{Title: "Categoría", Width: 14},
			{Title: "Tipo", Width: 12},
			{Title: "Cap.", Width: 5},
			{Title: "Precio/día", Width: 12},
			{Title: "Imágenes", Width: 8},
		},
		toRow: func(y models.Yacht) table.Row {
			return table.Row{
				y.Name, y.CategoryName, y.TypeName,
				strconv.Itoa(y.Capacity), money(y.PricePerDay),
				strconv.Itoa(len(y.Images)),
			}
		},
		searchFld: func(y models.Yacht) []string {
			return []string{y.Name, y.Description, y.CategoryName, y.TypeName, y.Address}
		},
		filters: []*choiceFilter[models.Yacht]{
			{label: "Categoría", options: catalogChoices(categories), keyID: func(y models.Yacht) int64 { return y.CategoryID },
				param: func(p *api.ListParams, sel choice) { p.CategoryID = sel.ID }, selected: -1},
			{label: "Tipo", options: catalogChoices(types), keyID: func(y models.Yacht) int64 { return y.TypeID },
				param: func(p *api.ListParams, sel choice) { p.TypeID = sel.ID }, selected: -1},
		},
		listRegion: listCascade,
		params:     params,
		states:     states.get,
		form:       spec,
		deleteOp: func(ctx context.Context, y models.Yacht) error {
			return client.DeleteYacht(ctx, y.ID)
		},
		itemLabel: func(y models.Yacht) string { return y.Name },
		loadOptions: func(ctx context.Context) error {
			if err := categories.Load(ctx); err != nil {
				return err
			}
			return types.Load(ctx)
		},
	})
}

// Tours

type tourDraft struct {
	ID          int64
	Name        string
	Description string
	Capacity    string
	Price       string
	TypeID      int64
	Status      string
	Location    models.LocationRef
	Images      *form.ImageDraft
	ImagePath   string
}

var tourStatusChoices = []choice{
	{ID: 1, Str: models.TourStatusActive, Label: models.TourStatusActive},
	{ID: 2, Str: models.TourStatusInactive, Label: models.TourStatusInactive},
}

func tourStatusID(status string) int64 {
	for _, c := range tourStatusChoices {
		if c.Str == status {
			return c.ID
		}
	}
	return filter.None
}

func tourStatusFromID(id int64) string {
	for _, c := range tourStatusChoices {
		if c.ID == id {
			return c.Str
		}
	}
	return ""
}

func newTourScreen(client *api.Client, log *slog.Logger, states *stateOptions) *entityScreen[models.Tour, tourDraft] {
	params := &api.ListParams{}
	tours := store.New("tours", func(ctx context.Context) ([]models.Tour, error) {
		return client.ListTours(ctx, *params)
	}, log)
	types := store.New("tour-types", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return client.ListCatalog(ctx, api.TourTypes, api.ListParams{})
	}, log)

	formCascade := filter.NewCascade(client, log)
	listCascade := filter.NewCascade(client, log)

	toInput := func(d tourDraft) (api.TourInput, error) {
		uris, removeIDs, err := stageImages(d.Images, d.ImagePath)
		if err != nil {
			return api.TourInput{}, err
		}
		return api.TourInput{
			Name:           d.Name,
			Description:    d.Description,
			TypeID:         d.TypeID,
			Capacity:       form.ParseInt(d.Capacity),
			Price:          form.ParseFloat(d.Price),
			Status:         d.Status,
			StateID:        d.Location.StateID,
			MunicipalityID: d.Location.MunicipalityID,
			LocalityID:     d.Location.LocalityID,
			Images:         uris,
			RemoveImageIDs: removeIDs,
		}, nil
	}

	ctrl := form.NewController(form.Config[tourDraft]{
		Defaults: func() tourDraft {
			return tourDraft{
				Capacity: strconv.Itoa(models.DefaultTourCapacity),
				Status:   models.DefaultTourStatus,
				Images:   form.NewImageDraft(nil),
			}
		},
		Validate: func(d tourDraft) error {
			var v form.Errors
			v.Required("nombre", d.Name)
			v.Selected("tipo", d.TypeID)
			v.PositiveInt("capacidad", form.ParseInt(d.Capacity))
			v.PositiveFloat("precio", form.ParseFloat(d.Price))
			v.Required("estatus", d.Status)
			return v.Err()
		},
		Create: func(ctx context.Context, d tourDraft) error {
			input, err := toInput(d)
			if err != nil {
				return err
			}
			_, err = client.CreateTour(ctx, input)
			return err
		},
		Update: func(ctx context.Context, d tourDraft) error {
			input, err := toInput(d)
			if err != nil {
				return err
			}
			_, err = client.UpdateTour(ctx, d.ID, input)
			return err
		},
	})

	spec := &formSpec[models.Tour, tourDraft]{
		ctrl: ctrl,
		fromEntity: func(t models.Tour) tourDraft {
			return tourDraft{
				ID:          t.ID,
				Name:        t.Name,
				Description: t.Description,
				Capacity:    strconv.Itoa(t.Capacity),
				Price:       strconv.FormatFloat(t.Price, 'f', 2, 64),
				TypeID:      t.TypeID,
				Status:      t.Status,
				Location:    t.Ref(),
				Images:      form.NewImageDraft(t.Images),
			}
		},
		cascade:     formCascade,
		entityRef:   func(t models.Tour) models.LocationRef { return t.Ref() },
		setLocation: func(d *tourDraft, ref models.LocationRef) { d.Location = ref },
	}
	draft := func() *tourDraft { return ctrl.Draft() }
	spec.fields = func() []fieldSpec {
		fields := []fieldSpec{
			textField("Nombre", func() string { return draft().Name }, func(v string) { draft().Name = v }),
			textField("Descripción", func() string { return draft().Description }, func(v string) { draft().Description = v }),
			selectField("Tipo", catalogChoices(types),
				func() int64 { return draft().TypeID }, func(id int64) { draft().TypeID = id }),
			selectField("Estatus", func() []choice { return tourStatusChoices },
				func() int64 { return tourStatusID(draft().Status) },
				func(id int64) { draft().Status = tourStatusFromID(id) }),
			textField("Capacidad", func() string { return draft().Capacity }, func(v string) { draft().Capacity = v }),
			textField("Precio", func() string { return draft().Price }, func(v string) { draft().Price = v }),
			textField("Agregar imagen (ruta)", func() string { return draft().ImagePath }, func(v string) { draft().ImagePath = v }),
		}
		return append(fields, locationFields("tours", formCascade, states.get)...)
	}

	return newEntityScreen(screenConfig[models.Tour, tourDraft]{
		name:  "tours",
		label: "Tours",
		store: tours,
		columns: []table.Column{
			{Title: "Nombre", Width: 26},
			{Title: "Tipo", Width: 14},
			{Title: "Estatus", Width: 10},
			{Title: "Cap.", Width: 5},
			{Title: "Precio", Width: 10},
		},
		toRow: func(t models.Tour) table.Row {
			return table.Row{t.Name, t.TypeName, t.Status, strconv.Itoa(t.Capacity), money(t.Price)}
		},
		searchFld: func(t models.Tour) []string {
			return []string{t.Name, t.Description, t.TypeName}
		},
		filters: []*choiceFilter[models.Tour]{
			{label: "Tipo", options: catalogChoices(types), keyID: func(t models.Tour) int64 { return t.TypeID },
				param: func(p *api.ListParams, sel choice) { p.TypeID = sel.ID }, selected: -1},
			{label: "Estatus", options: func() []choice { return tourStatusChoices }, keyStr: func(t models.Tour) string { return t.Status },
				param: func(p *api.ListParams, sel choice) { p.Status = sel.Str }, selected: -1},
		},
		listRegion: listCascade,
		params:     params,
		states:     states.get,
		form:       spec,
		deleteOp: func(ctx context.Context, t models.Tour) error {
			return client.DeleteTour(ctx, t.ID)
		},
		itemLabel: func(t models.Tour) string { return t.Name },
		loadOptions: func(ctx context.Context) error {
			return types.Load(ctx)
		},
	})
}

// Clubs

type clubDraft struct {
	ID          int64
	Name        string
	Description string
	Address     string
	Capacity    string
	TypeID      int64
	Location    models.LocationRef
	Images      *form.ImageDraft
	ImagePath   string
}

func newClubScreen(client *api.Client, log *slog.Logger, states *stateOptions) *entityScreen[models.Club, clubDraft] {
	params := &api.ListParams{}
	clubs := store.New("clubs", func(ctx context.Context) ([]models.Club, error) {
		return client.ListClubs(ctx, *params)
	}, log)
	types := store.New("club-types", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return client.ListCatalog(ctx, api.ClubTypes, api.ListParams{})
	}, log)

	formCascade := filter.NewCascade(client, log)
	listCascade := filter.NewCascade(client, log)

	toInput := func(d clubDraft) (api.ClubInput, error) {
		uris, removeIDs, err := stageImages(d.Images, d.ImagePath)
		if err != nil {
			return api.ClubInput{}, err
		}
		return api.ClubInput{
			Name:           d.Name,
			Description:    d.Description,
			Address:        d.Address,
			TypeID:         d.TypeID,
			Capacity:       form.ParseInt(d.Capacity),
			StateID:        d.Location.StateID,
			MunicipalityID: d.Location.MunicipalityID,
			LocalityID:     d.Location.LocalityID,
			Images:         uris,
			RemoveImageIDs: removeIDs,
		}, nil
	}

	ctrl := form.NewController(form.Config[clubDraft]{
		Defaults: func() clubDraft {
			return clubDraft{Images: form.NewImageDraft(nil)}
		},
		Validate: func(d clubDraft) error {
			var v form.Errors
			v.Required("nombre", d.Name)
			v.Selected("tipo", d.TypeID)
			return v.Err()
		},
		Create: func(ctx context.Context, d clubDraft) error {
			input, err := toInput(d)
			if err != nil {
				return err
			}
			_, err = client.CreateClub(ctx, input)
			return err
		},
		Update: func(ctx context.Context, d clubDraft) error {
			input, err := toInput(d)
			if err != nil {
				return err
			}
			_, err = client.UpdateClub(ctx, d.ID, input)
			return err
		},
	})

	spec := &formSpec[models.Club, clubDraft]{
		ctrl: ctrl,
		fromEntity: func(c models.Club) clubDraft {
			return clubDraft{
				ID:          c.ID,
				Name:        c.Name,
				Description: c.Description,
				Address:     c.Address,
				Capacity:    strconv.Itoa(c.Capacity),
				TypeID:      c.TypeID,
				Location:    c.Ref(),
				Images:      form.NewImageDraft(c.Images),
			}
		},
		cascade:     formCascade,
		entityRef:   func(c models.Club) models.LocationRef { return c.Ref() },
		setLocation: func(d *clubDraft, ref models.LocationRef) { d.Location = ref },
	}
	draft := func() *clubDraft { return ctrl.Draft() }
	spec.fields = func() []fieldSpec {
		fields := []fieldSpec{
			textField("Nombre", func() string { return draft().Name }, func(v string) { draft().Name = v }),
			textField("Descripción", func() string { return draft().Description }, func(v string) { draft().Description = v }),
			selectField("Tipo", catalogChoices(types),
				func() int64 { return draft().TypeID }, func(id int64) { draft().TypeID = id }),
			textField("Dirección", func() string { return draft().Address }, func(v string) { draft().Address = v }),
			textField("Capacidad", func() string { return draft().Capacity }, func(v string) { draft().Capacity = v }),
			textField("Agregar imagen (ruta)", func() string { return draft().ImagePath }, func(v string) { draft().ImagePath = v }),
		}
		return append(fields, locationFields("clubs", formCascade, states.get)...)
	}

	return newEntityScreen(screenConfig[models.Club, clubDraft]{
		name:  "clubs",
		label: "Clubes",
		store: clubs,
		columns: []table.Column{
			{Title: "Nombre", Width: 26},
			{Title: "Tipo", Width: 16},
			{Title: "Dirección", Width: 24},
			{Title: "Cap.", Width: 5},
		},
		toRow: func(c models.Club) table.Row {
			return table.Row{c.Name, c.TypeName, c.Address, strconv.Itoa(c.Capacity)}
		},
		searchFld: func(c models.Club) []string {
			return []string{c.Name, c.Description, c.TypeName, c.Address}
		},
		filters: []*choiceFilter[models.Club]{
			{label: "Tipo", options: catalogChoices(types), keyID: func(c models.Club) int64 { return c.TypeID },
				param: func(p *api.ListParams, sel choice) { p.TypeID = sel.ID }, selected: -1},
		},
		listRegion: listCascade,
		params:     params,
		states:     states.get,
		form:       spec,
		deleteOp: func(ctx context.Context, c models.Club) error {
			return client.DeleteClub(ctx, c.ID)
		},
		itemLabel: func(c models.Club) string { return c.Name },
		loadOptions: func(ctx context.Context) error {
			return types.Load(ctx)
		},
	})
}

// Users

type userDraft struct {
	ID       int64
	Name     string
	Email    string
	Phone    string
	Password string
	RoleID   int64
}

func newUserScreen(client *api.Client, log *slog.Logger) *entityScreen[models.User, userDraft] {
	params := &api.ListParams{}
	users := store.New("users", func(ctx context.Context) ([]models.User, error) {
		return client.ListUsers(ctx, *params)
	}, log)
	roles := store.New("roles", func(ctx context.Context) ([]models.CatalogEntry, error) {
		return client.ListRoles(ctx)
	}, log)

	toInput := func(d userDraft) api.UserInput {
		return api.UserInput{
			Name:     d.Name,
			Email:    d.Email,
			Phone:    d.Phone,
			RoleID:   d.RoleID,
			Password: d.Password,
		}
	}

	ctrl := form.NewController(form.Config[userDraft]{
		Defaults: func() userDraft { return userDraft{} },
		Validate: func(d userDraft) error {
			var v form.Errors
			v.Required("nombre", d.Name)
			v.Required("correo", d.Email)
			v.Selected("rol", d.RoleID)
			if d.ID == 0 {
				v.Required("contraseña", d.Password)
			}
			return v.Err()
		},
		Create: func(ctx context.Context, d userDraft) error {
			_, err := client.CreateUser(ctx, toInput(d))
			return err
		},
		Update: func(ctx context.Context, d userDraft) error {
			_, err := client.UpdateUser(ctx, d.ID, toInput(d))
			return err
		},
	})

	spec := &formSpec[models.User, userDraft]{
		ctrl: ctrl,
		fromEntity: func(u models.User) userDraft {
			return userDraft{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, RoleID: u.RoleID}
		},
	}
	draft := func() *userDraft { return ctrl.Draft() }
	spec.fields = func() []fieldSpec {
		return []fieldSpec{
			textField("Nombre", func() string { return draft().Name }, func(v string) { draft().Name = v }),
			textField("Correo", func() string { return draft().Email }, func(v string) { draft().Email = v }),
			textField("Teléfono", func() string { return draft().Phone }, func(v string) { draft().Phone = v }),
			selectField("Rol", catalogChoices(roles),
				func() int64 { return draft().RoleID }, func(id int64) { draft().RoleID = id }),
			secretField("Contraseña", func() string { return draft().Password }, func(v string) { draft().Password = v }),
		}
	}

	return newEntityScreen(screenConfig[models.User, userDraft]{
		name:  "users",
		label: "Usuarios",
		store: users,
		columns: []table.Column{
			{Title: "Nombre", Width: 24},
			{Title: "Correo", Width: 28},
			{Title: "Teléfono", Width: 14},
			{Title: "Rol", Width: 16},
		},
		toRow: func(u models.User) table.Row {
			return table.Row{u.Name, u.Email, u.Phone, u.RoleName}
		},
		searchFld: func(u models.User) []string {
			return []string{u.Name, u.Email, u.Phone, u.RoleName}
		},
		filters: []*choiceFilter[models.User]{
			{label: "Rol", options: catalogChoices(roles), keyID: func(u models.User) int64 { return u.RoleID },
				param: func(p *api.ListParams, sel choice) { p.RoleID = sel.ID }, selected: -1},
		},
		params: params,
		form:   spec,
		deleteOp: func(ctx context.Context, u models.User) error {
			return client.DeleteUser(ctx, u.ID)
		},
		itemLabel: func(u models.User) string { return u.Name },
		loadOptions: func(ctx context.Context) error {
			return roles.Load(ctx)
		},
	})
}

// Reservations

type reservationDraft struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	StartDate     string
	EndDate       string
	Guests        string
	Total         string
	YachtID       int64
	TourID        int64
	ClubID        int64
}

func newReservationScreen(client *api.Client, log *slog.Logger,
	yachts *store.Store[models.Yacht], tours *store.Store[models.Tour], clubs *store.Store[models.Club],
) *entityScreen[models.Reservation, reservationDraft] {
	params := &api.ListParams{}
	reservations := store.New("reservations", func(ctx context.Context) ([]models.Reservation, error) {
		return client.ListReservations(ctx, *params)
	}, log)

	yachtChoices := func() []choice {
		items := yachts.Items()
		out := make([]choice, len(items))
		for i, y := range items {
			out[i] = choice{ID: y.ID, Label: y.Name}
		}
		return out
	}
	tourChoices := func() []choice {
		items := tours.Items()
		out := make([]choice, len(items))
		for i, t := range items {
			out[i] = choice{ID: t.ID, Label: t.Name}
		}
		return out
	}
	clubChoices := func() []choice {
		items := clubs.Items()
		out := make([]choice, len(items))
		for i, c := range items {
			out[i] = choice{ID: c.ID, Label: c.Name}
		}
		return out
	}

	toInput := func(d reservationDraft) api.ReservationInput {
		return api.ReservationInput{
			CustomerName:  d.CustomerName,
			CustomerEmail: d.CustomerEmail,
			YachtID:       d.YachtID,
			TourID:        d.TourID,
			ClubID:        d.ClubID,
			StartDate:     d.StartDate,
			EndDate:       d.EndDate,
			Guests:        form.ParseInt(d.Guests),
			Total:         form.ParseFloat(d.Total),
		}
	}

	ctrl := form.NewController(form.Config[reservationDraft]{
		Defaults: func() reservationDraft { return reservationDraft{} },
		Validate: func(d reservationDraft) error {
			var v form.Errors
			v.Required("cliente", d.CustomerName)
			v.Required("fecha de inicio", d.StartDate)
			v.PositiveInt("personas", form.ParseInt(d.Guests))
			set := 0
			for _, id := range []int64{d.YachtID, d.TourID, d.ClubID} {
				if id != filter.None {
					set++
				}
			}
			if set != 1 {
				v.Selected("yate, tour o club (exactamente uno)", 0)
			}
			return v.Err()
		},
		Create: func(ctx context.Context, d reservationDraft) error {
			_, err := client.CreateReservation(ctx, toInput(d))
			return err
		},
		Update: func(ctx context.Context, d reservationDraft) error {
			_, err := client.UpdateReservation(ctx, d.ID, toInput(d))
			return err
		},
	})

	spec := &formSpec[models.Reservation, reservationDraft]{
		ctrl: ctrl,
		fromEntity: func(r models.Reservation) reservationDraft {
			return reservationDraft{
				ID:            r.ID,
				CustomerName:  r.CustomerName,
				CustomerEmail: r.CustomerEmail,
				StartDate:     r.StartDate,
				EndDate:       r.EndDate,
				Guests:        strconv.Itoa(r.Guests),
				Total:         strconv.FormatFloat(r.Total, 'f', 2, 64),
				YachtID:       r.YachtID,
				TourID:        r.TourID,
				ClubID:        r.ClubID,
			}
		},
	}
	draft := func() *reservationDraft { return ctrl.Draft() }
	spec.fields = func() []fieldSpec {
		return []fieldSpec{
			textField("Cliente", func() string { return draft().CustomerName }, func(v string) { draft().CustomerName = v }),
			textField("Correo", func() string { return draft().CustomerEmail }, func(v string) { draft().CustomerEmail = v }),
			selectField("Yate", yachtChoices,
				func() int64 { return draft().YachtID }, func(id int64) { draft().YachtID = id }),
			selectField("Tour", tourChoices,
				func() int64 { return draft().TourID }, func(id int64) { draft().TourID = id }),
			selectField("Club", clubChoices,
				func() int64 { return draft().ClubID }, func(id int64) { draft().ClubID = id }),
			textField("Inicio (AAAA-MM-DD)", func() string { return draft().StartDate }, func(v string) { draft().StartDate = v }),
			textField("Fin (AAAA-MM-DD)", func() string { return draft().EndDate }, func(v string) { draft().EndDate = v }),
			textField("Personas", func() string { return draft().Guests }, func(v string) { draft().Guests = v }),
			textField("Total", func() string { return draft().Total }, func(v string) { draft().Total = v }),
		}
	}

	statusChoices := []choice{
		{Str: string(models.ReservationPending), Label: "Pendiente"},
		{Str: string(models.ReservationConfirmed), Label: "Confirmada"},
		{Str: string(models.ReservationCompleted), Label: "Completada"},
		{Str: string(models.ReservationCancelled), Label: "Cancelada"},
	}

	screen := newEntityScreen(screenConfig[models.Reservation, reservationDraft]{
		name:  "reservations",
		label: "Reservaciones",
		store: reservations,
		columns: []table.Column{
			{Title: "Cliente", Width: 22},
			{Title: "Recurso", Width: 22},
			{Title: "Inicio", Width: 12},
			{Title: "Personas", Width: 8},
			{Title: "Total", Width: 10},
			{Title: "Estado", Width: 12},
		},
		toRow: func(r models.Reservation) table.Row {
			return table.Row{
				r.CustomerName, r.ResourceName, r.StartDate,
				strconv.Itoa(r.Guests), money(r.Total), string(r.Status),
			}
		},
		searchFld: func(r models.Reservation) []string {
			return []string{r.CustomerName, r.CustomerEmail, r.ResourceName}
		},
		filters: []*choiceFilter[models.Reservation]{
			{label: "Estado", options: func() []choice { return statusChoices }, keyStr: func(r models.Reservation) string { return string(r.Status) },
				param: func(p *api.ListParams, sel choice) { p.Status = sel.Str }, selected: -1},
		},
		params: params,
		form:   spec,
		deleteOp: func(ctx context.Context, r models.Reservation) error {
			return client.DeleteReservation(ctx, r.ID)
		},
		itemLabel: func(r models.Reservation) string {
			return "la reservación de " + r.CustomerName
		},
	})

	// Status moves are only offered on pending reservations; everything else
	// is terminal here.
	screen.cfg.rowAction = func(r models.Reservation, key string) tea.Cmd {
		var target models.ReservationStatus
		switch key {
		case "c":
			target = models.ReservationConfirmed
		case "k":
			target = models.ReservationCancelled
		default:
			return nil
		}
		if !r.Status.CanTransition(target) {
			return nil
		}
		success := "Reservación confirmada"
		if target == models.ReservationCancelled {
			success = "Reservación cancelada"
		}
		return screen.mutate(success, func(ctx context.Context) error {
			_, err := client.UpdateReservationStatus(ctx, r, target)
			return err
		})
	}

	return screen
}

// Catalogs

type catalogDraft struct {
	ID       int64
	Name     string
	Location models.LocationRef
}

func newCatalogScreen(client *api.Client, log *slog.Logger, states *stateOptions,
	resource api.CatalogResource, name, label string,
) *entityScreen[models.CatalogEntry, catalogDraft] {
	entries := store.New(name, func(ctx context.Context) ([]models.CatalogEntry, error) {
		return client.ListCatalog(ctx, resource, api.ListParams{})
	}, log)

	formCascade := filter.NewCascade(client, log)

	toInput := func(d catalogDraft) api.CatalogInput {
		return api.CatalogInput{
			Name:           d.Name,
			StateID:        d.Location.StateID,
			MunicipalityID: d.Location.MunicipalityID,
			LocalityID:     d.Location.LocalityID,
		}
	}

	ctrl := form.NewController(form.Config[catalogDraft]{
		Defaults: func() catalogDraft { return catalogDraft{} },
		Validate: func(d catalogDraft) error {
			var v form.Errors
			v.Required("nombre", d.Name)
			return v.Err()
		},
		Create: func(ctx context.Context, d catalogDraft) error {
			_, err := client.CreateCatalogEntry(ctx, resource, toInput(d))
			return err
		},
		Update: func(ctx context.Context, d catalogDraft) error {
			_, err := client.UpdateCatalogEntry(ctx, resource, d.ID, toInput(d))
			return err
		},
	})

	spec := &formSpec[models.CatalogEntry, catalogDraft]{
		ctrl: ctrl,
		fromEntity: func(e models.CatalogEntry) catalogDraft {
			return catalogDraft{ID: e.ID, Name: e.Name, Location: e.Ref()}
		},
		cascade:     formCascade,
		entityRef:   func(e models.CatalogEntry) models.LocationRef { return e.Ref() },
		setLocation: func(d *catalogDraft, ref models.LocationRef) { d.Location = ref },
	}
	draft := func() *catalogDraft { return ctrl.Draft() }
	spec.fields = func() []fieldSpec {
		fields := []fieldSpec{
			textField("Nombre", func() string { return draft().Name }, func(v string) { draft().Name = v }),
		}
		return append(fields, locationFields(name, formCascade, states.get)...)
	}

	return newEntityScreen(screenConfig[models.CatalogEntry, catalogDraft]{
		name:  name,
		label: label,
		store: entries,
		columns: []table.Column{
			{Title: "Nombre", Width: 32},
			{Title: "Creado", Width: 12},
		},
		toRow: func(e models.CatalogEntry) table.Row {
			created := ""
			if !e.CreatedAt.IsZero() {
				created = e.CreatedAt.Format("2006-01-02")
			}
			return table.Row{e.Name, created}
		},
		searchFld: func(e models.CatalogEntry) []string {
			return []string{e.Name}
		},
		states: states.get,
		form:   spec,
		deleteOp: func(ctx context.Context, e models.CatalogEntry) error {
			return client.DeleteCatalogEntry(ctx, resource, e.ID)
		},
		itemLabel: func(e models.CatalogEntry) string { return e.Name },
	})
}
