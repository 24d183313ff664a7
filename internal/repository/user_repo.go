package repository

import (
	"coffeeshop/internal/domain"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresUserRepository) CreateUser(user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (email, password_hash, is_admin)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	r.log.Debugf("Repository: Attempting to create user with email: %s", user.Email)

	err := r.db.QueryRow(query, user.Email, user.PasswordHash, user.IsAdmin).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Repository: Attempted to create user with duplicate email: %s", user.Email)
			return nil, fmt.Errorf("user with email '%s' already exists", user.Email)
		}
		r.log.Errorf("Repository: Failed to create user '%s': %v", user.Email, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}

	r.log.Infof("Repository: User created successfully with ID: %d, Email: %s", user.ID, user.Email)
	return user, nil
}

func (r *postgresUserRepository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
        SELECT id, email, password_hash, is_admin, created_at, updated_at
        FROM users
        WHERE email = $1`

	user := &domain.User{}
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with email %s not found", email)
			return nil, fmt.Errorf("user with email '%s' not found", email)
		}
		r.log.Errorf("Repository: Failed to get user by email %s: %v", email, err)
		return nil, fmt.Errorf("could not get user by email: %w", err)
	}

	return user, nil
}

func (r *postgresUserRepository) GetUserByID(id int64) (*domain.User, error) {
	query := `
        SELECT id, email, password_hash, is_admin, created_at, updated_at
        FROM users
        WHERE id = $1`

	user := &domain.User{}
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with ID %d not found", id)
			return nil, fmt.Errorf("user with id %d not found", id)
		}
		r.log.Errorf("Repository: Failed to get user by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return user, nil
}

func (r *postgresUserRepository) CreateSession(session *domain.Session) error {
	query := `
        INSERT INTO sessions (token, user_id, expires_at)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	err := r.db.QueryRow(query, session.Token, session.UserID, session.ExpiresAt).Scan(&session.CreatedAt)
	if err != nil {
		r.log.Errorf("Repository: Failed to create session for user %d: %v", session.UserID, err)
		return fmt.Errorf("could not create session: %w", err)
	}

	r.log.Infof("Repository: Session created for user %d, expires at %s", session.UserID, session.ExpiresAt)
	return nil
}

func (r *postgresUserRepository) GetSession(token string) (*domain.Session, error) {
	query := `
        SELECT token, user_id, expires_at, created_at
        FROM sessions
        WHERE token = $1`

	session := &domain.Session{}
	err := r.db.QueryRow(query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Debug("Repository: Session not found")
			return nil, fmt.Errorf("session not found")
		}
		r.log.Errorf("Repository: Failed to get session: %v", err)
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	return session, nil
}

func (r *postgresUserRepository) DeleteSession(token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.Exec(query, token)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete session: %v", err)
		return fmt.Errorf("could not delete session: %w", err)
	}
	return nil
}
