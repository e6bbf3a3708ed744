package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"userbase-be/internal/controllers"
	"userbase-be/internal/entities"
	"userbase-be/internal/jwt"
	"userbase-be/internal/middleware"
	"userbase-be/internal/repository"
	"userbase-be/internal/service"
)

const testJWTSecret = "controller-test-secret"

// fakeUserRepo is an in-memory UserRepository enforcing the email
// uniqueness constraint, standing in for the PostgreSQL store.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*entities.User)}
}

func (r *fakeUserRepo) emailTakenLocked(email string, excludeID int64) bool {
	for _, u := range r.users {
		if u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *fakeUserRepo) List() ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []*entities.User
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			cp := *u
			users = append(users, &cp)
		}
	}
	return users, nil
}

func (r *fakeUserRepo) FindByID(id int64) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) Create(name, email, passwordHash string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTakenLocked(email, 0) {
		return nil, repository.ErrDuplicateEmail
	}

	r.nextID++
	now := time.Now()
	u := &entities.User{
		ID:           r.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(id int64, fields repository.UpdateFields) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if fields.Email != nil && r.emailTakenLocked(*fields.Email, id) {
		return nil, repository.ErrDuplicateEmail
	}

	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.Email != nil {
		u.Email = *fields.Email
	}
	if fields.PasswordHash != nil {
		u.PasswordHash = *fields.PasswordHash
	}
	u.UpdatedAt = time.Now()

	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// newTestRouter wires the real controllers, services and JWT service over
// the in-memory repository, mirroring the route layout in main.go.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := newFakeUserRepo()
	jwtService := jwt.NewJWTService(testJWTSecret, time.Hour)
	userService := service.NewUserService(repo, nil)
	authService := service.NewAuthService(userService, repo, jwtService)
	userController := controllers.NewUserController(userService)
	authController := controllers.NewAuthController(authService)

	router := gin.New()
	users := router.Group("/api/users")
	{
		users.GET("", userController.ListUsers)
		users.GET("/:id", userController.GetUser)
		users.POST("", userController.CreateUser)
		users.PUT("/:id", userController.UpdateUser)
		users.DELETE("/:id", userController.DeleteUser)
		users.POST("/login", authController.Login)
		users.GET("/profile", middleware.AuthMiddleware(jwtService), authController.Profile)
	}
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createTestUser(t *testing.T, router *gin.Engine, name, email, password string) int64 {
	t.Helper()
	w := doRequest(t, router, http.MethodPost, "/api/users", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	body := decodeBody(t, w)
	user := body["user"].(map[string]interface{})
	return int64(user["id"].(float64))
}
