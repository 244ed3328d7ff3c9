package controllers

import (
	"errors"
	"net/http"

	"farmigo/models"
	"farmigo/token"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type AuthController struct {
	DB     *gorm.DB
	Tokens *token.Manager
}

func (ac *AuthController) Register(context *gin.Context) {
	var payload RegisterPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		context.Abort()
		return
	}

	role := models.RoleCustomer
	if payload.Role != "" {
		role = models.Role(payload.Role)
		if !role.Valid() {
			context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid role"})
			context.Abort()
			return
		}
	}

	hashedPassword, err := models.HashPassword(payload.Password)
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not hash password"})
		context.Abort()
		return
	}

	user := models.User{
		Name:         payload.Name,
		Email:        payload.Email,
		PasswordHash: hashedPassword,
		Role:         role,
	}
	if err := ac.DB.Create(&user).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.Is(err, gorm.ErrDuplicatedKey) || (errors.As(err, &pgErr) && pgErr.Code == "23505") {
			context.JSON(http.StatusConflict, ErrorResponse{Error: "Email already registered"})
			context.Abort()
			return
		}
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Could not create user"})
		context.Abort()
		return
	}

	signedToken, err := ac.Tokens.Generate(user)
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error generating tokens"})
		context.Abort()
		return
	}

	context.JSON(http.StatusOK, TokenResponse{
		SignedToken: signedToken,
		User:        UserSchema{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}

func (ac *AuthController) Login(context *gin.Context) {
	var payload LoginPayload
	if err := context.ShouldBindJSON(&payload); err != nil {
		context.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing fields"})
		context.Abort()
		return
	}

	user, getError := models.GetUserByEmail(ac.DB, payload.Email)
	if getError != nil {
		if errors.Is(getError, gorm.ErrRecordNotFound) {
			context.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
			context.Abort()
			return
		}
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Could not make search result"})
		context.Abort()
		return
	}
	if !user.ValidatePassword(payload.Password) {
		context.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
		context.Abort()
		return
	}

	signedToken, err := ac.Tokens.Generate(user)
	if err != nil {
		context.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error generating tokens"})
		context.Abort()
		return
	}

	context.JSON(http.StatusOK, TokenResponse{
		SignedToken: signedToken,
		User:        UserSchema{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}
