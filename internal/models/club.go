package models

import "time"

// Club is a beach or night club available for events.
type Club struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Address     string `json:"address,omitempty"`
	TypeID      int64  `json:"typeId"`
	Capacity    int    `json:"capacity,omitempty"`
	Location
	Images    ImageList `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TypeName string `json:"typeName,omitempty"`
}
