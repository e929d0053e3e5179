package main

import (
	"errors"
	"log"
	"net/http"

	"etix/src/models"
	"etix/src/types"
	"etix/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func venueHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		GET("/venues", func(ctx *gin.Context) {
			var venues []models.Venue
			if err := dbHandle.Find(&venues).Error; err != nil {
				log.Printf("Error retrieving Venues: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching venue data"})
				return
			}
			ctx.JSON(http.StatusOK, venues)
		})
	return g
}

func authorizedVenueHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		POST("/venues/add", func(ctx *gin.Context) {
			var body types.CreateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			venue := models.Venue{
				Name:        body.Name,
				Country:     body.Country,
				City:        body.City,
				Capacity:    body.Capacity,
				IsAvailable: *body.IsAvailable,
			}
			if err := dbHandle.Create(&venue).Error; err != nil {
				log.Printf("Error creating Venue: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			ctx.JSON(http.StatusCreated, venue)
		}).
		PUT("/venues/edit/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateVenueRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			var venue models.Venue
			if err := dbHandle.First(&venue, params.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "Venue not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			venue.Name = body.Name
			venue.Country = body.Country
			venue.City = body.City
			venue.Capacity = body.Capacity
			venue.IsAvailable = *body.IsAvailable
			if err := dbHandle.Save(&venue).Error; err != nil {
				log.Printf("Error updating Venue [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			ctx.JSON(http.StatusOK, venue)
		}).
		DELETE("/venues/delete/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := utils.DeleteVenue(dbHandle, params.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "Venue not found"})
					return
				}
				if errors.Is(err, utils.ErrHasDependents) {
					ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "Cannot delete venue with associated events"})
					return
				}
				log.Printf("Error deleting Venue [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "msg": "Venue deleted successfully"})
		})
	return g
}
