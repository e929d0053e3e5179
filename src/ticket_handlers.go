package main

import (
	"errors"
	"log"
	"net/http"

	"etix/src/lib/mailer"
	"etix/src/models"
	"etix/src/types"
	"etix/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func ticketHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		POST("/tickets/book", func(ctx *gin.Context) {
			var body types.BookTicketRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			ticket, err := utils.BookTickets(dbHandle, &body)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"msg": "Event or user not found"})
					return
				}
				if errors.Is(err, utils.ErrInsufficientAvailability) {
					ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "Not enough tickets available"})
					return
				}
				log.Printf("Error booking tickets: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			go mailer.BookingConfirmation(&ticket.User, &ticket.Event, ticket)
			ctx.JSON(http.StatusCreated, gin.H{"success": true, "ticket": ticket})
		}).
		GET("/tickets", func(ctx *gin.Context) {
			var tickets []models.Ticket
			if err := dbHandle.
				Preload("Event").
				Preload("User").
				Order("created_at desc").
				Find(&tickets).
				Error; err != nil {
				log.Printf("Error retrieving Tickets: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching tickets"})
				return
			}
			ctx.JSON(http.StatusOK, tickets)
		}).
		DELETE("/tickets/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			res := dbHandle.Delete(&models.Ticket{}, params.ID)
			if res.Error != nil {
				log.Printf("Error deleting Ticket [%d]: %s\n", params.ID, res.Error.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting ticket"})
				return
			}
			if res.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Ticket deleted successfully"})
		}).
		GET("/tickets/user/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var user models.User
			if err := dbHandle.First(&user, params.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error fetching data"})
				return
			}
			var tickets []models.Ticket
			if err := dbHandle.
				Where("user_id = ?", params.ID).
				Preload("User").
				Preload("Event").
				Preload("Event.Venue").
				Preload("Event.Category").
				Find(&tickets).
				Error; err != nil {
				log.Printf("Error retrieving Tickets for User [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error fetching data"})
				return
			}
			if len(tickets) == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"msg": "Tickets not found"})
				return
			}
			ctx.JSON(http.StatusOK, tickets)
		}).
		GET("/tickets/event/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var event models.Event
			if err := dbHandle.First(&event, params.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"msg": "Event not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error fetching data"})
				return
			}
			var tickets []models.Ticket
			if err := dbHandle.
				Where("event_id = ?", params.ID).
				Preload("User").
				Preload("Event").
				Preload("Event.Venue").
				Preload("Event.Category").
				Find(&tickets).
				Error; err != nil {
				log.Printf("Error retrieving Tickets for Event [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error fetching data"})
				return
			}
			if len(tickets) == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"msg": "Tickets not found"})
				return
			}
			ctx.JSON(http.StatusOK, tickets)
		}).
		GET("/tickets/code/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var ticket models.Ticket
			if err := dbHandle.First(&ticket, params.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching ticket"})
				return
			}
			filepath, err := utils.GenerateTicketCode(&ticket)
			if err != nil {
				log.Printf("Error generating code for Ticket [%d]: %s\n", ticket.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating ticket code"})
				return
			}
			ctx.FileAttachment(filepath, "eticket.jpeg")
		})
	return g
}
