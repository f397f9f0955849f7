package stub

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/costamaya/backoffice/internal/models"
)

// LoadCatalog reads a geography catalog JSON file, typically produced by the
// geoseed tool from INEGI shapefiles.
func LoadCatalog(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("reading geography catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return Catalog{}, fmt.Errorf("decoding geography catalog: %w", err)
	}
	return c, nil
}

// demoGeography is a small slice of the Mexican Caribbean coast, enough to
// exercise the cascading location picker end to end.
func demoGeography() Catalog {
	return Catalog{
		States: []models.State{
			{ID: 23, Name: "Quintana Roo"},
			{ID: 31, Name: "Yucatán"},
		},
		Municipalities: []models.Municipality{
			{ID: 2301, Name: "Benito Juárez", StateID: 23},
			{ID: 2302, Name: "Solidaridad", StateID: 23},
			{ID: 2303, Name: "Cozumel", StateID: 23},
			{ID: 3101, Name: "Mérida", StateID: 31},
			{ID: 3102, Name: "Progreso", StateID: 31},
		},
		Localities: []models.Locality{
			{ID: 230101, Name: "Cancún", MunicipalityID: 2301},
			{ID: 230102, Name: "Puerto Juárez", MunicipalityID: 2301},
			{ID: 230201, Name: "Playa del Carmen", MunicipalityID: 2302},
			{ID: 230202, Name: "Puerto Aventuras", MunicipalityID: 2302},
			{ID: 230301, Name: "San Miguel de Cozumel", MunicipalityID: 2303},
			{ID: 310101, Name: "Mérida Centro", MunicipalityID: 3101},
			{ID: 310201, Name: "Puerto Progreso", MunicipalityID: 3102},
		},
	}
}

// seed loads the demo data every sandbox starts with. The admin credentials
// are admin@costamaya.mx / sandbox.
func (s *Server) seed() {
	now := time.Now().UTC()
	entry := func(resource, name string) models.CatalogEntry {
		e := models.CatalogEntry{ID: s.id(), Name: name, CreatedAt: now, UpdatedAt: now}
		s.catalogs[resource] = append(s.catalogs[resource], e)
		return e
	}

	adminRole := entry("roles", "Administrador")
	entry("roles", "Operador")

	luxury := entry("yacht-categories", "Lujo")
	entry("yacht-categories", "Deportivo")
	motor := entry("yacht-types", "Motor")
	entry("yacht-types", "Velero")
	snorkel := entry("tour-types", "Snorkel")
	entry("tour-types", "Pesca deportiva")
	beach := entry("club-types", "Club de playa")
	entry("club-types", "Club nocturno")

	admin := &models.User{
		ID:        s.id(),
		Name:      "Administración",
		Email:     "admin@costamaya.mx",
		RoleID:    adminRole.ID,
		RoleName:  adminRole.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[admin.ID] = admin
	s.passwords[admin.Email] = "sandbox"

	yacht := &models.Yacht{
		ID:          s.id(),
		Name:        "Perla del Caribe",
		Description: "Azimut 62 con tripulación",
		CategoryID:  luxury.ID,
		TypeID:      motor.ID,
		Capacity:    12,
		PricePerDay: 45000,
		Address:     "Marina Puerto Cancún",
		Location: models.Location{
			StateID:        23,
			MunicipalityID: 2301,
			LocalityID:     230101,
		},
		Images: models.ImageList{
			{ID: s.id(), URL: "https://cdn.sandbox.costamaya.mx/img/perla-1.jpg"},
		},
		CreatedAt:    now,
		UpdatedAt:    now,
		CategoryName: luxury.Name,
		TypeName:     motor.Name,
	}
	s.yachts[yacht.ID] = yacht

	tour := &models.Tour{
		ID:          s.id(),
		Name:        "Arrecife Palancar",
		Description: "Snorkel guiado en Cozumel",
		TypeID:      snorkel.ID,
		Capacity:    models.DefaultTourCapacity,
		Price:       1200,
		Status:      models.TourStatusActive,
		Location: models.Location{
			StateID:        23,
			MunicipalityID: 2303,
			LocalityID:     230301,
		},
		CreatedAt: now,
		UpdatedAt: now,
		TypeName:  snorkel.Name,
	}
	s.tours[tour.ID] = tour

	club := &models.Club{
		ID:        s.id(),
		Name:      "Mar Abierto",
		Address:   "Playa Mamitas",
		TypeID:    beach.ID,
		Capacity:  200,
		Location:  models.Location{StateID: 23, MunicipalityID: 2302, LocalityID: 230201},
		CreatedAt: now,
		UpdatedAt: now,
		TypeName:  beach.Name,
	}
	s.clubs[club.ID] = club

	res := &models.Reservation{
		ID:           s.id(),
		CustomerName: "Familia Herrera",
		YachtID:      yacht.ID,
		ResourceName: yacht.Name,
		StartDate:    "2026-09-12",
		EndDate:      "2026-09-13",
		Guests:       8,
		Total:        45000,
		Status:       models.ReservationPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.reservations[res.ID] = res
}
