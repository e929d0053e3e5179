package middlewares

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"etix/src/lib"
	"etix/src/models"
	"etix/src/types"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

// AuthMiddleware verifies the bearer token signature and then requires a
// matching active_sessions row, so logged-out tokens die before expiry.
func AuthMiddleware(dbHandle *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer ") {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		reqToken := strings.Split(bearerToken, " ")[1]
		if reqToken == "" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
			return jwtKey, nil
		})
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !tkn.Valid {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		if !sessionAlive(ctx, dbHandle, reqToken) {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		uid, err := strconv.Atoi(claims.Subject)
		if err != nil {
			log.Println("error parsing claims:", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Set("id", uint(uid))
		ctx.Set("email", claims.Email)
		ctx.Set("name", claims.Name)
		ctx.Set("role", string(claims.Role))
		ctx.Set("token", reqToken)
	}
}

// AdminMiddleware runs after AuthMiddleware and gates admin-only routes.
func AdminMiddleware(ctx *gin.Context) {
	role := types.RoleName(ctx.GetString("role"))
	if role != types.ROLE_ADMIN {
		ctx.AbortWithStatus(http.StatusForbidden)
		return
	}
}

func sessionAlive(ctx *gin.Context, dbHandle *gorm.DB, token string) bool {
	if rd := lib.GetRedisClient(); rd != nil {
		key := fmt.Sprintf("session:%s", token)
		if _, err := rd.Get(context.Background(), key).Result(); err == nil {
			return true
		}
	}
	var session models.ActiveSession
	err := dbHandle.
		Model(&models.ActiveSession{}).
		Where(&models.ActiveSession{Token: token}).
		First(&session).
		Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Error retrieving session: %s\n", err.Error())
		}
		return false
	}
	return true
}
