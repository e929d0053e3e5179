package models

import "etix/src/types"

// Ticket is a booking record. Rows are created only by the booking flow
// and never mutated afterwards.
type Ticket struct {
	ID      uint `gorm:"primarykey" json:"id"`
	Count   uint `json:"ticket_count"`
	EventID uint `json:"event_id,omitempty"`
	UserID  uint `json:"user_id,omitempty"`

	Event Event `json:"event,omitempty"`
	User  User  `json:"user,omitempty"`

	types.Timestamps
}
