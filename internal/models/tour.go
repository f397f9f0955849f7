package models

import "time"

// Tour statuses as the backend stores them.
const (
	TourStatusActive   = "Activo"
	TourStatusInactive = "Inactivo"
)

// Tour defaults applied to a fresh create draft.
const (
	DefaultTourCapacity = 10
	DefaultTourStatus   = TourStatusActive
)

// Tour is a bookable excursion.
type Tour struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	TypeID      int64   `json:"typeId"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
	Status      string  `json:"status"`
	Location
	Images    ImageList `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TypeName string `json:"typeName,omitempty"`
}
