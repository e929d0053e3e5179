package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path"
	"strings"
	"time"

	"etix/src/config"
	"etix/src/models"
	"etix/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/yeqown/go-qrcode"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func GenerateJWT(user *models.User, role types.RoleName) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Name:  user.Name,
		Email: user.Email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			ID:        uuid.NewString(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

func ParseEventDate(value string) (time.Time, error) {
	date, err := time.Parse(config.DATE_PARSE_FORMAT, value)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC), nil
}

// CreateNewEvent validates venue existence, availability, and the one
// event per (venue, date) rule before inserting. The ticket pool starts
// at the venue capacity; only admins get an immediately active event.
func CreateNewEvent(dbHandle *gorm.DB, params *types.CreateEventRequestBody, role types.RoleName, imagePath *string) (*models.Event, error) {
	date, err := ParseEventDate(params.Date)
	if err != nil {
		log.Printf("Error parsing event_date: %s\n", err.Error())
		return nil, err
	}
	status := types.EVENT_PENDING
	if role == types.ROLE_ADMIN {
		status = types.EVENT_ACTIVE
	}
	event := models.Event{
		Name:       params.Name,
		Organizer:  params.Organizer,
		Date:       date,
		Status:     status,
		VenueID:    params.VenueID,
		CategoryID: params.CategoryID,
		Image:      imagePath,
	}
	err = dbHandle.Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, params.VenueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return err
		}
		if !venue.IsAvailable {
			return ErrVenueUnavailable
		}
		var conflicts int64
		if err := tx.
			Model(&models.Event{}).
			Where("venue_id = ? AND date = ?", params.VenueID, date).
			Count(&conflicts).
			Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrDateConflict
		}
		event.TicketsAvailable = venue.Capacity
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	if err := dbHandle.
		Preload("Venue").
		Preload("Category").
		First(&event, event.ID).
		Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent re-runs the creation checks, excluding the event's own row
// from the date-conflict scan. A replacement image removes the old file.
func UpdateEvent(dbHandle *gorm.DB, eventId uint, params *types.CreateEventRequestBody, imagePath *string) (*models.Event, error) {
	date, err := ParseEventDate(params.Date)
	if err != nil {
		log.Printf("Error parsing event_date: %s\n", err.Error())
		return nil, err
	}
	var event models.Event
	err = dbHandle.Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, params.VenueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVenueNotFound
			}
			return err
		}
		if !venue.IsAvailable {
			return ErrVenueUnavailable
		}
		var conflicts int64
		if err := tx.
			Model(&models.Event{}).
			Where("venue_id = ? AND date = ? AND id <> ?", params.VenueID, date, eventId).
			Count(&conflicts).
			Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrDateConflict
		}
		if err := tx.First(&event, eventId).Error; err != nil {
			return err
		}
		event.Name = params.Name
		event.Organizer = params.Organizer
		event.Date = date
		event.VenueID = params.VenueID
		event.CategoryID = params.CategoryID
		if imagePath != nil {
			RemoveFile(event.Image)
			event.Image = imagePath
		}
		return tx.Save(&event).Error
	})
	if err != nil {
		return nil, err
	}
	if err := dbHandle.
		Preload("Venue").
		Preload("Category").
		First(&event, eventId).
		Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ApproveEvent moves a pending event to active. Any other starting state
// is rejected and the row is left untouched.
func ApproveEvent(dbHandle *gorm.DB, eventId uint) (*models.Event, error) {
	var event models.Event
	err := dbHandle.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, eventId).Error; err != nil {
			return err
		}
		if event.Status != types.EVENT_PENDING {
			return ErrInvalidState
		}
		event.Status = types.EVENT_ACTIVE
		return tx.Model(&models.Event{}).
			Where("id = ?", eventId).
			Update("status", types.EVENT_ACTIVE).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent refuses to remove an event that has booked tickets.
func DeleteEvent(dbHandle *gorm.DB, eventId uint) error {
	return dbHandle.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, eventId).Error; err != nil {
			return err
		}
		var tickets int64
		if err := tx.
			Model(&models.Ticket{}).
			Where("event_id = ?", eventId).
			Count(&tickets).
			Error; err != nil {
			return err
		}
		if tickets > 0 {
			return ErrHasDependents
		}
		if err := tx.Delete(&event).Error; err != nil {
			return err
		}
		RemoveFile(event.Image)
		return nil
	})
}

// BookTickets performs the availability check and the decrement as a single
// guarded UPDATE inside the insert transaction, so two concurrent bookings
// can never drive tickets_available below zero.
func BookTickets(dbHandle *gorm.DB, params *types.BookTicketRequestBody) (*models.Ticket, error) {
	var event models.Event
	if err := dbHandle.First(&event, params.EventID).Error; err != nil {
		return nil, err
	}
	var user models.User
	if err := dbHandle.First(&user, params.UserID).Error; err != nil {
		return nil, err
	}
	ticket := models.Ticket{
		Count:   params.Count,
		EventID: event.ID,
		UserID:  user.ID,
	}
	err := dbHandle.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.Event{}).
			Where("id = ? AND tickets_available >= ?", params.EventID, params.Count).
			UpdateColumn("tickets_available", gorm.Expr("tickets_available - ?", params.Count))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientAvailability
		}
		return tx.Create(&ticket).Error
	})
	if err != nil {
		return nil, err
	}
	ticket.Event = event
	ticket.Event.TicketsAvailable -= params.Count
	ticket.User = user
	return &ticket, nil
}

// DeleteVenue removes a venue only when no event references it.
func DeleteVenue(dbHandle *gorm.DB, venueId uint) error {
	return dbHandle.Transaction(func(tx *gorm.DB) error {
		var venue models.Venue
		if err := tx.First(&venue, venueId).Error; err != nil {
			return err
		}
		var events int64
		if err := tx.
			Model(&models.Event{}).
			Where("venue_id = ?", venueId).
			Count(&events).
			Error; err != nil {
			return err
		}
		if events > 0 {
			return ErrHasDependents
		}
		return tx.Delete(&venue).Error
	})
}

// DeleteCategory removes a category only when no event references it.
func DeleteCategory(dbHandle *gorm.DB, categoryId uint) error {
	return dbHandle.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, categoryId).Error; err != nil {
			return err
		}
		var events int64
		if err := tx.
			Model(&models.Event{}).
			Where("category_id = ?", categoryId).
			Count(&events).
			Error; err != nil {
			return err
		}
		if events > 0 {
			return ErrHasDependents
		}
		return tx.Delete(&category).Error
	})
}

type EventStats struct {
	TotalEvents     int64 `json:"totalEvents"`
	CompletedEvents int64 `json:"completedEvents"`
	TotalBookings   int64 `json:"totalBookings"`
}

func GetEventStats(dbHandle *gorm.DB) (*EventStats, error) {
	var stats EventStats
	if err := dbHandle.Model(&models.Event{}).Count(&stats.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := dbHandle.
		Model(&models.Event{}).
		Where("date < ?", time.Now()).
		Count(&stats.CompletedEvents).
		Error; err != nil {
		return nil, err
	}
	if err := dbHandle.Model(&models.Ticket{}).Count(&stats.TotalBookings).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// SaveUploadedImage stores a multipart image under the uploads dir with a
// slugged, collision-free name and returns the relative path persisted on
// the event row.
func SaveUploadedImage(ctx *gin.Context, file *multipart.FileHeader, name string) (string, error) {
	ext := strings.ToLower(path.Ext(file.Filename))
	filename := fmt.Sprintf("%s-%s%s", slug.Make(name), uuid.NewString()[:8], ext)
	dst := path.Join(config.UploadDir(), filename)
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		log.Printf("Error saving uploaded file [%s]: %s\n", filename, err.Error())
		return "", err
	}
	return dst, nil
}

func RemoveFile(p *string) {
	if p == nil || *p == "" {
		return
	}
	if _, err := os.Stat(*p); err != nil {
		return
	}
	if err := os.Remove(*p); err != nil {
		log.Printf("Error removing file [%s]: %s\n", *p, err.Error())
	}
}

// GenerateTicketCode renders a QR image for a booked ticket into the
// uploads dir and returns its path. Repeated calls reuse the file.
func GenerateTicketCode(ticket *models.Ticket) (string, error) {
	filename := fmt.Sprintf("ticketcode_%d.jpeg", ticket.ID)
	filepath := path.Join(config.UploadDir(), filename)
	if _, err := os.Stat(filepath); err == nil {
		return filepath, nil
	}
	payload := map[string]any{
		"ticketId": ticket.ID,
		"eventId":  ticket.EventID,
		"userId":   ticket.UserID,
		"count":    ticket.Count,
	}
	rawBytes, _ := json.Marshal(payload)
	qrc, err := qrcode.New(string(rawBytes))
	if err != nil {
		return "", err
	}
	if err := qrc.Save(filepath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filepath, err.Error())
		return "", err
	}
	return filepath, nil
}
