package models

import "time"

// ReservationStatus is the lifecycle state of a reservation.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationCompleted, ReservationCancelled:
		return true
	}
	return false
}

// Transitions returns the statuses s may move to. Only a pending reservation
// has outgoing transitions; everything else is terminal in the back office.
func (s ReservationStatus) Transitions() []ReservationStatus {
	if s == ReservationPending {
		return []ReservationStatus{ReservationConfirmed, ReservationCancelled}
	}
	return nil
}

// CanTransition reports whether moving from s to target is allowed.
func (s ReservationStatus) CanTransition(target ReservationStatus) bool {
	for _, t := range s.Transitions() {
		if t == target {
			return true
		}
	}
	return false
}

// Reservation books a yacht, tour, or club for a customer. Exactly one of
// YachtID, TourID, ClubID is set.
type Reservation struct {
	ID            int64             `json:"id"`
	CustomerName  string            `json:"customerName"`
	CustomerEmail string            `json:"customerEmail,omitempty"`
	YachtID       int64             `json:"yachtId,omitempty"`
	TourID        int64             `json:"tourId,omitempty"`
	ClubID        int64             `json:"clubId,omitempty"`
	ResourceName  string            `json:"resourceName,omitempty"`
	StartDate     string            `json:"startDate"` // ISO 8601 date (YYYY-MM-DD)
	EndDate       string            `json:"endDate,omitempty"`
	Guests        int               `json:"guests"`
	Total         float64           `json:"total,omitempty"`
	Status        ReservationStatus `json:"status"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
