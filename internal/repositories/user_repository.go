package repositories

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	intconfig "railbooking/internal/config"
	"railbooking/internal/domain"
)

// User is an account row for the auth surface.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	PasswordHash string `json:"-"`
}

// UserStore abstracts account storage so the server runs with or
// without a database.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
}

// UserRepository is the MySQL-backed account store.
type UserRepository struct {
	DB *sql.DB
}

func (r UserRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

func (r UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "db not available"}
	}
	var u User
	err := db.QueryRowContext(ctx, `
		SELECT id, name, email, phone, password_hash
		FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, domain.NotFoundError{Resource: "user"}
	}
	if err != nil {
		return nil, domain.InternalError{Msg: "failed to load user", Err: err}
	}
	return &u, nil
}

func (r UserRepository) Create(ctx context.Context, u *User) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "db not available"}
	}
	result, err := db.ExecContext(ctx, `
		INSERT INTO users (name, email, phone, password_hash)
		VALUES (?,?,?,?)`, u.Name, u.Email, u.Phone, u.PasswordHash)
	if err != nil {
		return domain.InternalError{Msg: "failed to create user", Err: err}
	}
	if id, err := result.LastInsertId(); err == nil {
		u.ID = id
	}
	return nil
}

// MemoryUserStore keeps accounts in process for demo mode and tests.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]*User)}
}

func (s *MemoryUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(email)]
	if !ok {
		return nil, domain.NotFoundError{Resource: "user"}
	}
	cp := *u
	return &cp, nil
}

func (s *MemoryUserStore) Create(ctx context.Context, u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(u.Email)
	if _, exists := s.users[key]; exists {
		return domain.ValidationError{Field: "email", Msg: "already registered"}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[key] = &cp
	return nil
}
