package models

import "etix/src/types"

type Role struct {
	ID   uint           `gorm:"primarykey" json:"id"`
	Name types.RoleName `gorm:"uniqueIndex;type:text" json:"name"`
}
