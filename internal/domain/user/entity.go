// Package user defines the user domain entity
package user

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User represents an account in the system
type User struct {
	id           uuid.UUID
	email        string
	firstName    string
	lastName     string
	passwordHash string
	isActive     bool
	createdAt    time.Time
	updatedAt    time.Time
	lastLoginAt  *time.Time
}

// NewUser creates a new user with a hashed password
func NewUser(email, firstName, lastName, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &User{
		id:           uuid.New(),
		email:        email,
		firstName:    strings.TrimSpace(firstName),
		lastName:     strings.TrimSpace(lastName),
		passwordHash: string(hash),
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a user from persisted state. Used by repositories only.
func Reconstruct(
	id uuid.UUID,
	email, firstName, lastName, passwordHash string,
	isActive bool,
	createdAt, updatedAt time.Time,
	lastLoginAt *time.Time,
) *User {
	return &User{
		id:           id,
		email:        email,
		firstName:    firstName,
		lastName:     lastName,
		passwordHash: passwordHash,
		isActive:     isActive,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		lastLoginAt:  lastLoginAt,
	}
}

// ID returns the user's unique identifier
func (u *User) ID() uuid.UUID { return u.id }

// Email returns the user's email
func (u *User) Email() string { return u.email }

// FirstName returns the user's first name
func (u *User) FirstName() string { return u.firstName }

// LastName returns the user's last name
func (u *User) LastName() string { return u.lastName }

// PasswordHash returns the stored bcrypt hash
func (u *User) PasswordHash() string { return u.passwordHash }

// IsActive reports whether the account can log in
func (u *User) IsActive() bool { return u.isActive }

// CreatedAt returns when the account was created
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns when the account was last updated
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// LastLoginAt returns the time of the last successful login
func (u *User) LastLoginAt() *time.Time { return u.lastLoginAt }

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

// ChangePassword replaces the stored hash after validation
func (u *User) ChangePassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.passwordHash = string(hash)
	u.updatedAt = time.Now()
	return nil
}

// RecordLogin stamps the last successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.lastLoginAt = &now
	u.updatedAt = now
}

// Domain errors for user operations
var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrPasswordTooWeak = errors.New("password must be at least 8 characters")
	ErrInvalidPassword = errors.New("invalid password")
)

func validateEmail(email string) error {
	if email == "" || !strings.Contains(email, "@") || strings.Contains(email, " ") {
		return ErrInvalidEmail
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooWeak
	}
	return nil
}
