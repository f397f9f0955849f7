package models

import "time"

// CatalogEntry is the shared shape of the small lookup entities that hang off
// the main resources: yacht categories, yacht types, tour types, club types,
// and user roles. They double as discrete filter dimensions on the list
// screens. Geographic scoping is optional; zero ids mean "everywhere".
type CatalogEntry struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Location
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Location embeds the optional geographic scoping fields shared by catalog
// and business entities.
type Location struct {
	StateID        int64 `json:"stateId,omitempty"`
	MunicipalityID int64 `json:"municipalityId,omitempty"`
	LocalityID     int64 `json:"localityId,omitempty"`
}

// Ref converts the embedded scoping into a LocationRef.
func (l Location) Ref() LocationRef {
	return LocationRef{
		StateID:        l.StateID,
		MunicipalityID: l.MunicipalityID,
		LocalityID:     l.LocalityID,
	}
}
