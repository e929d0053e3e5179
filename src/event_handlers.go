package main

import (
	"errors"
	"log"
	"net/http"

	"etix/src/middlewares"
	"etix/src/models"
	"etix/src/types"
	"etix/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func eventHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		GET("/events", func(ctx *gin.Context) {
			var events []models.Event
			if err := dbHandle.
				Preload("Venue").
				Preload("Category").
				Order("date asc").
				Find(&events).
				Error; err != nil {
				log.Printf("Error retrieving Events: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching events"})
				return
			}
			ctx.JSON(http.StatusOK, events)
		}).
		GET("/events/getevent/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var event models.Event
			if err := dbHandle.
				Preload("Venue").
				Preload("Category").
				First(&event, params.ID).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
					return
				}
				log.Printf("Error retrieving Event [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching event"})
				return
			}
			ctx.JSON(http.StatusOK, event)
		}).
		GET("/events/stats", func(ctx *gin.Context) {
			stats, err := utils.GetEventStats(dbHandle)
			if err != nil {
				log.Printf("Error fetching event statistics: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching event statistics"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"success":         true,
				"totalEvents":     stats.TotalEvents,
				"completedEvents": stats.CompletedEvents,
				"totalBookings":   stats.TotalBookings,
			})
		})
	return g
}

func authorizedEventHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		POST("/events/add", func(ctx *gin.Context) {
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			imagePath, err := saveEventImage(ctx, body.Name)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": err.Error()})
				return
			}
			role := types.RoleName(ctx.GetString("role"))
			event, err := utils.CreateNewEvent(dbHandle, &body, role, imagePath)
			if err != nil {
				status, msg := eventErrorResponse(err)
				ctx.JSON(status, gin.H{"success": false, "msg": msg})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"success": true, "newEvent": event})
		}).
		PUT("/events/edit/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateEventRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			imagePath, err := saveEventImage(ctx, body.Name)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": err.Error()})
				return
			}
			event, err := utils.UpdateEvent(dbHandle, params.ID, &body, imagePath)
			if err != nil {
				status, msg := eventErrorResponse(err)
				ctx.JSON(status, gin.H{"success": false, "msg": msg})
				return
			}
			ctx.JSON(http.StatusOK, event)
		}).
		DELETE("/events/delete/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := utils.DeleteEvent(dbHandle, params.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"msg": "Event not found"})
					return
				}
				if errors.Is(err, utils.ErrHasDependents) {
					ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "Tickets have been booked"})
					return
				}
				log.Printf("Error deleting Event [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"msg": "Event deleted successfully"})
		}).
		PATCH("/events/approve/:id", middlewares.AdminMiddleware, func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			event, err := utils.ApproveEvent(dbHandle, params.ID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"msg": "Event not found"})
					return
				}
				if errors.Is(err, utils.ErrInvalidState) {
					ctx.JSON(http.StatusBadRequest, gin.H{"msg": "Event is not pending"})
					return
				}
				log.Printf("Error approving Event [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Server error"})
				return
			}
			ctx.JSON(http.StatusOK, event)
		})
	return g
}

// saveEventImage stores the optional image part, returning nil when the
// request carries none.
func saveEventImage(ctx *gin.Context, eventName string) (*string, error) {
	file, err := ctx.FormFile("image")
	if err != nil {
		return nil, nil
	}
	saved, err := utils.SaveUploadedImage(ctx, file, eventName)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func eventErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, utils.ErrVenueNotFound):
		return http.StatusNotFound, "Venue not found"
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, "Event not found"
	case errors.Is(err, utils.ErrVenueUnavailable):
		return http.StatusBadRequest, "Venue is not available"
	case errors.Is(err, utils.ErrDateConflict):
		return http.StatusBadRequest, "Venue is not available for this particular date"
	default:
		log.Printf("Error saving Event: %s\n", err.Error())
		return http.StatusInternalServerError, "Server error"
	}
}
