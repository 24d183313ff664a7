package domain

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is a bearer token row. The token is a uuid issued at login and
// checked on every authenticated request until it expires or is deleted.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

type AuthResponse struct {
	Token   string `json:"token"`
	UserID  int64  `json:"user_id"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
}

type UserRepository interface {
	CreateUser(user *User) (*User, error)
	GetUserByEmail(email string) (*User, error)
	GetUserByID(id int64) (*User, error)
	CreateSession(session *Session) error
	GetSession(token string) (*Session, error)
	DeleteSession(token string) error
}
