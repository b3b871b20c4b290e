package model

import "time"

// Reservation mirrors the `reservations` table. Date and Time keep the
// zero-padded "dd/mm/yyyy" and "hh:mm" formats the booking form submits;
// the record is write-once from the customer's side.
type Reservation struct {
	ID        uint64    `json:"id"`     // reservations.id
	UserID    uint64    `json:"-"`      // reservations.user_id
	Name      string    `json:"name"`   // reservations.name
	Date      string    `json:"date"`   // reservations.date ("dd/mm/yyyy")
	Time      string    `json:"time"`   // reservations.time ("hh:mm")
	People    int       `json:"people"` // reservations.people
	CreatedAt time.Time `json:"-"`      // reservations.created_at
}
