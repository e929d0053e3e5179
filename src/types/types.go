package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

type RoleName string

const (
	ROLE_ADMIN RoleName = "admin"
	ROLE_USER  RoleName = "user"
)

// Role table IDs, fixed by the boot seed.
const (
	ROLE_ADMIN_ID uint = 1
	ROLE_USER_ID  uint = 2
)

func (r RoleName) Valid() bool {
	return r == ROLE_ADMIN || r == ROLE_USER
}

type EventStatus string

const (
	EVENT_PENDING EventStatus = "pending"
	EVENT_ACTIVE  EventStatus = "active"
)

type RegisterUserRequestBody struct {
	Name             string `json:"name" binding:"omitempty,min=3,max=15"`
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,min=6"`
	DOB              string `json:"dob,omitempty"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
}

type LoginRequestBody struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SecurityQuestionRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequestBody struct {
	Email          string `json:"email" binding:"required,email"`
	SecurityAnswer string `json:"security_answer" binding:"required"`
	NewPassword    string `json:"new_password" binding:"required,min=6"`
}

type EditUserRequestBody struct {
	Name  string `json:"name" binding:"required,min=3,max=15"`
	Email string `json:"email" binding:"required,email"`
}

// Multipart form body for event create/edit. Venue and category arrive as
// plain id fields, the optional image as a separate file part.
type CreateEventRequestBody struct {
	Name       string `form:"event_name" binding:"required"`
	Organizer  string `form:"organizer_name" binding:"omitempty,min=3,max=15"`
	Date       string `form:"event_date" binding:"required,bookabledate"`
	VenueID    uint   `form:"venue_id" binding:"required"`
	CategoryID uint   `form:"category_id" binding:"required"`
}

type CreateVenueRequestBody struct {
	Name        string `json:"venue_name" binding:"required"`
	Country     string `json:"country" binding:"required"`
	City        string `json:"city" binding:"required"`
	Capacity    uint   `json:"capacity" binding:"required,gt=0"`
	IsAvailable *bool  `json:"is_available" binding:"required"`
}

type CreateCategoryRequestBody struct {
	Name        string `json:"category_name" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type BookTicketRequestBody struct {
	Count   uint `json:"ticket_count" binding:"required,gt=0"`
	UserID  uint `json:"user_id" binding:"required"`
	EventID uint `json:"event_id" binding:"required"`
}

type SimpleRequestParams struct {
	ID uint `uri:"id" binding:"required"`
}
