package models

import "etix/src/types"

type Category struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"category_name,omitempty"`
	Description string `json:"description,omitempty"`

	types.Timestamps
}
