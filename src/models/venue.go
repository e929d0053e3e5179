package models

import "etix/src/types"

type Venue struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"venue_name,omitempty"`
	Country     string `json:"country,omitempty"`
	City        string `json:"city,omitempty"`
	Capacity    uint   `gorm:"check:capacity > 0" json:"capacity,omitempty"`
	IsAvailable bool   `json:"is_available"`

	types.Timestamps
}
