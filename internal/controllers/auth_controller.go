package controllers

import (
	"errors"
	"net/http"

	"userbase-be/internal/middleware"
	"userbase-be/internal/models"
	"userbase-be/internal/repository"
	"userbase-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login handles POST /api/users/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid email or password",
			})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Profile handles GET /api/users/profile (protected by AuthMiddleware)
func (ac *AuthController) Profile(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User ID not found in token",
		})
		return
	}
	userID := userIDVal.(int64)

	user, err := ac.authService.Profile(userID)
	if err != nil {
		// The token can outlive its user
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
			return
		}
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.ProfileResponse{
		Message: "Profile retrieved successfully",
		User:    user,
	})
}
