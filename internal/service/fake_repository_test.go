package service_test

import (
	"sync"
	"time"

	"userbase-be/internal/entities"
	"userbase-be/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository. It enforces the email
// uniqueness constraint under its own lock, the way the unique index does
// in PostgreSQL.
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

func copyUser(u *entities.User) *entities.User {
	cp := *u
	return &cp
}

func (r *fakeUserRepo) List() ([]*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var users []*entities.User
	for id := int64(1); id <= r.nextID; id++ {
		if u, ok := r.users[id]; ok {
			users = append(users, copyUser(u))
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
	return copyUser(u), nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return copyUser(u), nil
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
	return copyUser(u), nil
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

	return copyUser(u), nil
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
