package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"coffeeshop/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type UserUseCase interface {
	RegisterUser(email, password string) (*domain.User, error)
	AuthenticateUser(email, password string) (*domain.AuthResponse, error)
	Logout(token string) error
	ValidateToken(token string) (*domain.User, error)
}

type userUseCase struct {
	userRepo   domain.UserRepository
	sessionTTL time.Duration
	log        *logrus.Logger
}

func NewUserUseCase(repo domain.UserRepository, sessionTTL time.Duration, logger *logrus.Logger) UserUseCase {
	return &userUseCase{
		userRepo:   repo,
		sessionTTL: sessionTTL,
		log:        logger,
	}
}

// RegisterUser handles sign-up: normalize the email, check the password,
// hash it and store the user. New accounts are never admins; the flag is
// flipped directly in the store by an operator.
func (uc *userUseCase) RegisterUser(email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	uc.log.Infof("Use Case: Attempting registration for email: %s", email)

	if !isValidEmail(email) {
		uc.log.Warnf("Use Case: Registration failed - invalid email format: %s", email)
		return nil, errors.New("invalid email format")
	}
	if len(password) < 6 {
		uc.log.Warn("Use Case: Registration failed - password too short")
		return nil, errors.New("password must be at least 6 characters")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to hash password for %s: %v", email, err)
		return nil, fmt.Errorf("internal error processing password: %w", err)
	}

	newUser := &domain.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	createdUser, err := uc.userRepo.CreateUser(newUser)
	if err != nil {
		return nil, err
	}

	uc.log.Infof("Use Case: User registered successfully with ID %d", createdUser.ID)
	return createdUser, nil
}

// AuthenticateUser verifies credentials and issues a uuid session token.
func (uc *userUseCase) AuthenticateUser(email, password string) (*domain.AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	uc.log.Infof("Use Case: Attempting authentication for email: %s", email)

	user, err := uc.userRepo.GetUserByEmail(email)
	if err != nil {
		uc.log.Warnf("Use Case: Authentication failed for %s: %v", email, err)
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.log.Warnf("Use Case: Authentication failed for %s: wrong password", email)
		return nil, errors.New("invalid email or password")
	}

	session := &domain.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(uc.sessionTTL),
	}
	if err := uc.userRepo.CreateSession(session); err != nil {
		uc.log.Errorf("Use Case: Failed to create session for user %d: %v", user.ID, err)
		return nil, fmt.Errorf("could not create session: %w", err)
	}

	uc.log.Infof("Use Case: User %d authenticated successfully", user.ID)
	return &domain.AuthResponse{
		Token:   session.Token,
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, nil
}

func (uc *userUseCase) Logout(token string) error {
	if token == "" {
		return errors.New("missing session token")
	}
	if err := uc.userRepo.DeleteSession(token); err != nil {
		uc.log.Errorf("Use Case: Failed to delete session: %v", err)
		return fmt.Errorf("could not log out: %w", err)
	}
	uc.log.Info("Use Case: Session deleted")
	return nil
}

// ValidateToken resolves a bearer token to its user, rejecting unknown and
// expired sessions. Expired sessions are deleted on sight.
func (uc *userUseCase) ValidateToken(token string) (*domain.User, error) {
	if token == "" {
		return nil, errors.New("missing session token")
	}

	session, err := uc.userRepo.GetSession(token)
	if err != nil {
		return nil, errors.New("invalid session token")
	}

	if time.Now().After(session.ExpiresAt) {
		uc.log.Infof("Use Case: Session for user %d expired, deleting", session.UserID)
		_ = uc.userRepo.DeleteSession(token)
		return nil, errors.New("session expired")
	}

	user, err := uc.userRepo.GetUserByID(session.UserID)
	if err != nil {
		uc.log.Errorf("Use Case: Session points at missing user %d: %v", session.UserID, err)
		return nil, errors.New("invalid session token")
	}

	return user, nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domainPart := email[at+1:]
	if !strings.Contains(domainPart, ".") || strings.HasPrefix(domainPart, ".") || strings.HasSuffix(domainPart, ".") {
		return false
	}
	return !strings.ContainsAny(email, " \t\n")
}
