package controllers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"etix/src/lib"
	"etix/src/models"
	"etix/src/types"
	"etix/src/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

// AuthRegister creates a user with a bcrypt-hashed password and the default
// user role. Duplicate email is a business rule failure, not a 500.
func AuthRegister(ctx *gin.Context, dbHandle *gorm.DB) (*models.User, int, error) {
	var body types.RegisterUserRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}
	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		log.Printf("Error hashing password: %s\n", err.Error())
		return nil, http.StatusInternalServerError, err
	}
	user := models.User{
		Name:             body.Name,
		Email:            body.Email,
		Password:         hash,
		DOB:              body.DOB,
		SecurityQuestion: body.SecurityQuestion,
		SecurityAnswer:   body.SecurityAnswer,
		RoleID:           types.ROLE_USER_ID,
	}
	err = dbHandle.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.User{}).
			Where("email = ?", body.Email).
			Count(&count).
			Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.ErrDuplicateEmail
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		if errors.Is(err, utils.ErrDuplicateEmail) {
			return nil, http.StatusBadRequest, err
		}
		log.Printf("Error creating user: %s\n", err.Error())
		return nil, http.StatusInternalServerError, err
	}
	return &user, http.StatusCreated, nil
}

type LoginResult struct {
	Token string         `json:"token"`
	User  *models.User   `json:"user"`
	Role  types.RoleName `json:"role"`
}

// AuthLogin verifies credentials, signs a session token, and records it as
// an ActiveSession. The token is also mirrored into redis with a TTL so the
// auth middleware can skip the session lookup on the hot path.
func AuthLogin(ctx *gin.Context, dbHandle *gorm.DB) (*LoginResult, int, error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}
	var user models.User
	if err := dbHandle.
		Preload("Role").
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusUnauthorized, utils.ErrInvalidCredentials
		}
		log.Printf("Error retrieving user: %s\n", err.Error())
		return nil, http.StatusInternalServerError, err
	}
	if !utils.CheckPassword(user.Password, body.Password) {
		return nil, http.StatusUnauthorized, utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(&user, user.Role.Name)
	if err != nil {
		log.Printf("Error generating JWT token: %s\n", err.Error())
		return nil, http.StatusInternalServerError, err
	}
	session := models.ActiveSession{
		Token:  token,
		UserID: user.ID,
	}
	if err := dbHandle.Create(&session).Error; err != nil {
		log.Printf("Error recording session for user [%d]: %s\n", user.ID, err.Error())
		return nil, http.StatusInternalServerError, err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		if err := rd.SetEx(context.Background(), fmt.Sprintf("session:%s", token), user.ID, sessionTTL).Err(); err != nil {
			log.Printf("[redis] Error caching session: %s\n", err.Error())
		}
	}
	return &LoginResult{Token: token, User: &user, Role: user.Role.Name}, http.StatusOK, nil
}

// AuthLogout drops the session record. A token with no session fails
// silently, matching logout idempotency.
func AuthLogout(ctx *gin.Context, dbHandle *gorm.DB) (int, error) {
	token := ctx.GetString("token")
	if err := dbHandle.
		Where("token = ?", token).
		Delete(&models.ActiveSession{}).
		Error; err != nil {
		log.Printf("Error deleting session: %s\n", err.Error())
		return http.StatusInternalServerError, err
	}
	if rd := lib.GetRedisClient(); rd != nil {
		if err := rd.Del(context.Background(), fmt.Sprintf("session:%s", token)).Err(); err != nil {
			log.Printf("[redis] Error dropping session key: %s\n", err.Error())
		}
	}
	return http.StatusOK, nil
}

func GetSecurityQuestion(ctx *gin.Context, dbHandle *gorm.DB) (string, int, error) {
	var body types.SecurityQuestionRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return "", http.StatusUnprocessableEntity, err
	}
	var user models.User
	if err := dbHandle.
		Select("security_question").
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", http.StatusNotFound, err
		}
		return "", http.StatusInternalServerError, err
	}
	return user.SecurityQuestion, http.StatusOK, nil
}

// ResetPassword replaces the password hash when email and security answer
// match. The mismatch case is deliberately indistinguishable from an
// unknown email.
func ResetPassword(ctx *gin.Context, dbHandle *gorm.DB) (int, error) {
	var body types.ResetPasswordRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return http.StatusUnprocessableEntity, err
	}
	var user models.User
	if err := dbHandle.
		Where("email = ? AND security_answer = ?", body.Email, body.SecurityAnswer).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return http.StatusUnauthorized, utils.ErrInvalidCredentials
		}
		return http.StatusInternalServerError, err
	}
	hash, err := utils.HashPassword(body.NewPassword)
	if err != nil {
		return http.StatusInternalServerError, err
	}
	if err := dbHandle.
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("password", hash).
		Error; err != nil {
		log.Printf("Error resetting password for user [%d]: %s\n", user.ID, err.Error())
		return http.StatusInternalServerError, err
	}
	return http.StatusOK, nil
}
