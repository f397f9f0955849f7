package models

import "time"

// Yacht is a rentable vessel.
type Yacht struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	CategoryID  int64   `json:"categoryId"`
	TypeID      int64   `json:"typeId,omitempty"`
	Capacity    int     `json:"capacity"`
	PricePerDay float64 `json:"pricePerDay"`
	Address     string  `json:"address,omitempty"`
	Location
	Images    ImageList `json:"images,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Joined names computed server-side; never written by the client.
	CategoryName string `json:"categoryName,omitempty"`
	TypeName     string `json:"typeName,omitempty"`
}
