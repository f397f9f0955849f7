package models

// State is the top level of the geographic hierarchy.
type State struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Municipality belongs to exactly one state.
type Municipality struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	StateID int64  `json:"stateId"`
}

// Locality belongs to exactly one municipality.
type Locality struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	MunicipalityID int64  `json:"municipalityId"`
}

// LocationRef is a (state, municipality, locality) triple as stored on a
// business entity. Zero means "not set" at that level.
type LocationRef struct {
	StateID        int64 `json:"stateId"`
	MunicipalityID int64 `json:"municipalityId"`
	LocalityID     int64 `json:"localityId"`
}
