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

func categoryHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		GET("/categories", func(ctx *gin.Context) {
			var categories []models.Category
			if err := dbHandle.Find(&categories).Error; err != nil {
				log.Printf("Error retrieving Categories: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching category"})
				return
			}
			ctx.JSON(http.StatusOK, categories)
		})
	return g
}

func authorizedCategoryHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		POST("/categories/add", func(ctx *gin.Context) {
			var body types.CreateCategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			category := models.Category{
				Name:        body.Name,
				Description: body.Description,
			}
			if err := dbHandle.Create(&category).Error; err != nil {
				log.Printf("Error creating Category: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			ctx.JSON(http.StatusCreated, category)
		}).
		PUT("/categories/edit/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			var body types.CreateCategoryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			var category models.Category
			if err := dbHandle.First(&category, params.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "Category not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			category.Name = body.Name
			category.Description = body.Description
			if err := dbHandle.Save(&category).Error; err != nil {
				log.Printf("Error updating Category [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			ctx.JSON(http.StatusOK, category)
		}).
		DELETE("/categories/delete/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			if err := utils.DeleteCategory(dbHandle, params.ID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"success": false, "msg": "Category not found"})
					return
				}
				if errors.Is(err, utils.ErrHasDependents) {
					ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "Cannot delete category with associated events"})
					return
				}
				log.Printf("Error deleting Category [%d]: %s\n", params.ID, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"msg": "Error"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "msg": "Category deleted successfully"})
		})
	return g
}
