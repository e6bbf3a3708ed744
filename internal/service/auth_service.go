package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"userbase-be/internal/jwt"
	"userbase-be/internal/models"
	"userbase-be/internal/repository"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Login(req *models.LoginRequest) (*models.LoginResponse, error)
	Profile(userID int64) (*models.UserResponse, error)
}

type authService struct {
	userService UserService
	userRepo    repository.UserRepository
	jwtService  *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userService UserService, userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userService: userService,
		userRepo:    userRepo,
		jwtService:  jwtService,
	}
}

// Login verifies the credentials and issues a JWT token. Unknown email and
// wrong password produce the same error.
func (s *authService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.LoginResponse{
		Message: "Login successful",
		Token:   token,
	}, nil
}

// Profile retrieves the user a verified token belongs to
func (s *authService) Profile(userID int64) (*models.UserResponse, error) {
	return s.userService.GetUser(userID)
}
