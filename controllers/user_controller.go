package controllers

import (
	"errors"
	"net/http"

	apperrors "junglepets/common/errors"
	"junglepets/common/logger"
	"junglepets/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Struct to represent the login request body
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Struct for user registration
type RegisterRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	Phone      string `json:"phone"`
	TaxID      string `json:"tax_id"`
	PetName    string `json:"pet_name"`
	Newsletter bool   `json:"newsletter"`
}

// Struct for partial profile updates; nil fields are left untouched
type UpdateProfileRequest struct {
	ID         string  `json:"id" binding:"required"`
	Name       *string `json:"name"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	TaxID      *string `json:"tax_id"`
	PetName    *string `json:"pet_name"`
	Newsletter *bool   `json:"newsletter"`
}

type UserController struct {
	Store *services.UserStore
}

func NewUserController(store *services.UserStore) *UserController {
	return &UserController{Store: store}
}

// Register creates a new user account
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrInvalidBody)
		return
	}

	user, err := uc.Store.Register(c.Request.Context(), services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		TaxID:      req.TaxID,
		PetName:    req.PetName,
		Newsletter: req.Newsletter,
	})
	if errors.Is(err, services.ErrEmailTaken) {
		c.Error(apperrors.ErrEmailTaken)
		return
	}
	if err != nil {
		logger.Error("Failed to register user", err, zap.String("email", req.Email))
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to create account", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"user":    user.Session(),
	})
}

// Login authenticates the user and establishes the session
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrInvalidBody)
		return
	}

	user, err := uc.Store.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Error("Failed to authenticate user", err, zap.String("email", req.Email))
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to log in", err))
		return
	}
	if user == nil {
		c.Error(apperrors.ErrInvalidCredentials)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged in",
		"session": user.Session(),
	})
}

// Logout clears the current session
func (uc *UserController) Logout(c *gin.Context) {
	if err := uc.Store.Logout(c.Request.Context()); err != nil {
		logger.Error("Failed to log out", err)
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to log out", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session returns the currently authenticated user's projection
func (uc *UserController) Session(c *gin.Context) {
	session := uc.Store.CurrentSession(c.Request.Context())
	if session == nil {
		c.Error(apperrors.ErrNoSession)
		return
	}
	c.JSON(http.StatusOK, session)
}

// UpdateProfile merges partial fields into the matching user record
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.ErrInvalidBody)
		return
	}

	ok, err := uc.Store.Update(c.Request.Context(), services.UserUpdate{
		ID:         req.ID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		TaxID:      req.TaxID,
		PetName:    req.PetName,
		Newsletter: req.Newsletter,
	})
	if err != nil {
		logger.Error("Failed to update user", err, zap.String("id", req.ID))
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to update profile", err))
		return
	}
	if !ok {
		c.Error(apperrors.ErrUserNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// ListUsers dumps all user records. Development aid.
func (uc *UserController) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, uc.Store.List(c.Request.Context()))
}

// Stats returns aggregate counts over the user collection
func (uc *UserController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, uc.Store.Stats(c.Request.Context()))
}

// Export returns a diagnostic dump of users plus the current session
func (uc *UserController) Export(c *gin.Context) {
	c.JSON(http.StatusOK, uc.Store.Export(c.Request.Context()))
}

// Reset clears both the user collection and the session. Development aid.
func (uc *UserController) Reset(c *gin.Context) {
	if err := uc.Store.ResetAll(c.Request.Context()); err != nil {
		logger.Error("Failed to reset user store", err)
		c.Error(apperrors.New(http.StatusInternalServerError, "Failed to reset", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Store reset"})
}
