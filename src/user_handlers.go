package main

import (
	"log"
	"net/http"

	"etix/src/controllers"
	"etix/src/middlewares"
	"etix/src/models"
	"etix/src/types"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func userHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		POST("/users/register", func(ctx *gin.Context) {
			user, status, err := controllers.AuthRegister(ctx, dbHandle)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "msg": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "userID": user.ID, "msg": "The user was successfully registered"})
		}).
		POST("/users/login", func(ctx *gin.Context) {
			result, status, err := controllers.AuthLogin(ctx, dbHandle)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "msg": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"success": true,
				"token":   result.Token,
				"user":    result.User,
				"role":    result.Role,
			})
		}).
		POST("/users/get-security-question", func(ctx *gin.Context) {
			question, status, err := controllers.GetSecurityQuestion(ctx, dbHandle)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "msg": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "security_question": question})
		}).
		POST("/users/reset-password", func(ctx *gin.Context) {
			status, err := controllers.ResetPassword(ctx, dbHandle)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "msg": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true, "msg": "Password reset successfully"})
		})
	return g
}

func authorizedUserHandlers(g *gin.RouterGroup, dbHandle *gorm.DB) *gin.RouterGroup {
	g.
		POST("/users/logout", func(ctx *gin.Context) {
			status, err := controllers.AuthLogout(ctx, dbHandle)
			if err != nil {
				ctx.JSON(status, gin.H{"success": false, "msg": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"success": true})
		}).
		POST("/users/check-session", func(ctx *gin.Context) {
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		}).
		PUT("/users/edit", func(ctx *gin.Context) {
			var body types.EditUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusUnprocessableEntity, gin.H{"success": false, "msg": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			if err := dbHandle.
				Model(&models.User{}).
				Where("id = ?", userId).
				Updates(map[string]any{"name": body.Name, "email": body.Email}).
				Error; err != nil {
				log.Printf("Error updating user [%d]: %s\n", userId, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "Error updating user"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true})
		})

	g.
		GET("/users", middlewares.AdminMiddleware, func(ctx *gin.Context) {
			var users []models.User
			if err := dbHandle.
				Preload("Role").
				Order("created_at desc").
				Find(&users).
				Error; err != nil {
				log.Printf("Error retrieving Users: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "Internal Server Error"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"success": true, "users": users})
		})
	return g
}
