package models

import (
	"time"

	id "enrollhub/pkg/domain"
	dErrors "enrollhub/pkg/domain-errors"
)

// Role is the closed set of account roles. Authorization itself is
// enforced upstream; the role is stored and echoed for that layer.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleStudent, RoleAdmin:
		return Role(raw), nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "role must be one of student, admin")
	}
}

// User is an account that can register for training programs. PasswordHash
// never crosses the HTTP boundary.
type User struct {
	ID           id.UserID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Address      *string   `json:"address"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(userID id.UserID, email, passwordHash, fullName, phone string, address *string, role Role, now time.Time) *User {
	return &User{
		ID:           userID,
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Phone:        phone,
		Address:      address,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
