package models

import (
	"etix/src/types"
)

type User struct {
	ID               uint   `gorm:"primarykey" json:"id"`
	Name             string `json:"name,omitempty"`
	Email            string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password         string `json:"-"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"-"`
	DOB              string `json:"dob,omitempty"`
	RoleID           uint   `gorm:"default:2" json:"role_id,omitempty"`

	Role    Role     `json:"role,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:user_id" json:"tickets,omitempty"`

	types.Timestamps
}
