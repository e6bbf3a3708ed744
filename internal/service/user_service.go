package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"userbase-be/internal/cache"
	"userbase-be/internal/models"
	"userbase-be/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService defines the interface for user business logic
type UserService interface {
	ListUsers() ([]*models.UserResponse, error)
	GetUser(id int64) (*models.UserResponse, error)
	CreateUser(req *models.CreateUserRequest) (*models.UserResponse, error)
	UpdateUser(id int64, req *models.UpdateUserRequest) (*models.UserResponse, error)
	DeleteUser(id int64) error
}

type userService struct {
	repo  repository.UserRepository
	cache cache.Cache
	ctx   context.Context
}

// NewUserService creates a new user service. The cache is optional; a nil
// cache degrades to database-only lookups.
func NewUserService(repo repository.UserRepository, cacheClient cache.Cache) UserService {
	svc := &userService{
		repo: repo,
		ctx:  context.Background(),
	}
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func userCacheKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// ListUsers retrieves all users
func (s *userService) ListUsers() ([]*models.UserResponse, error) {
	users, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UserResponse, len(users))
	for i, user := range users {
		responses[i] = models.NewUserResponse(user)
	}

	return responses, nil
}

// GetUser retrieves a single user by ID, trying the cache first
func (s *userService) GetUser(id int64) (*models.UserResponse, error) {
	if s.cache != nil {
		var cached models.UserResponse
		if err := s.cache.GetJSON(s.ctx, userCacheKey(id), &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	response := models.NewUserResponse(user)
	if s.cache != nil {
		s.cache.SetJSON(s.ctx, userCacheKey(id), response, userCacheTTL)
	}

	return response, nil
}

// CreateUser hashes the password and creates a new user
func (s *userService) CreateUser(req *models.CreateUserRequest) (*models.UserResponse, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(req.Name, req.Email, string(hashedPassword))
	if err != nil {
		return nil, err
	}

	return models.NewUserResponse(user), nil
}

// UpdateUser applies a partial update. A field counts as supplied only when
// its key was present in the request body; supplied fields must be non-empty.
// A supplied password is re-hashed before it is stored.
func (s *userService) UpdateUser(id int64, req *models.UpdateUserRequest) (*models.UserResponse, error) {
	if !req.HasFields() {
		return nil, ErrNoFieldsToUpdate
	}

	fields := repository.UpdateFields{}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, ErrEmptyField
		}
		fields.Name = req.Name
	}
	if req.Email != nil {
		if *req.Email == "" {
			return nil, ErrEmptyField
		}
		fields.Email = req.Email
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, ErrEmptyField
		}
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		hash := string(hashedPassword)
		fields.PasswordHash = &hash
	}

	user, err := s.repo.Update(id, fields)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Delete(s.ctx, userCacheKey(id))
	}

	return models.NewUserResponse(user), nil
}

// DeleteUser removes a user by ID
func (s *userService) DeleteUser(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Delete(s.ctx, userCacheKey(id))
	}

	return nil
}
