package models

import "etix/src/types"

// ActiveSession is the server-side record of a currently valid login token.
// Logout removes the row; the background janitor sweeps the expired ones.
type ActiveSession struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	Token  string `gorm:"uniqueIndex" json:"-"`
	UserID uint   `json:"user_id"`

	User User `json:"-"`

	types.Timestamps
}
