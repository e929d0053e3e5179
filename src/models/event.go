package models

import (
	"time"

	"etix/src/types"
)

type Event struct {
	ID               uint              `gorm:"primarykey" json:"id"`
	Name             string            `json:"event_name,omitempty"`
	Organizer        string            `json:"organizer_name,omitempty"`
	Date             time.Time         `gorm:"type:date;uniqueIndex:venue_date,where:deleted_at IS NULL" json:"event_date"`
	Status           types.EventStatus `gorm:"default:'pending';type:text" json:"status,omitempty"`
	TicketsAvailable uint              `json:"tickets_available"`
	Image            *string           `json:"image,omitempty"`
	VenueID          uint              `gorm:"uniqueIndex:venue_date" json:"venue_id,omitempty"`
	CategoryID       uint              `json:"category_id,omitempty"`

	Venue    Venue    `json:"venue,omitempty"`
	Category Category `json:"category,omitempty"`
	Tickets  []Ticket `gorm:"foreignKey:event_id" json:"tickets,omitempty"`

	types.Timestamps
}
