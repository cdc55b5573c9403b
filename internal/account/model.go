package account

import (
	"errors"
	"strings"
	"time"
)

// ErrInvalidStatus indicates a status string that does not name a known
// account status.
var ErrInvalidStatus = errors.New("invalid account status")

// Role identifies what kind of platform participant an account is.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleDesigner Role = "designer"
	RoleSchool   Role = "school"
	RoleGarment  Role = "garment"
)

// RegisterType records how the account was created.
type RegisterType string

const (
	RegisterManual RegisterType = "manual"
	RegisterGoogle RegisterType = "google"
)

// Status describes the account lifecycle state. Deleting an account is a
// soft operation that flips the status.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusDeleted   Status = "deleted"
)

// ParseStatus maps a raw string (case-insensitive) onto a Status.
func ParseStatus(raw string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case StatusActive:
		return StatusActive, nil
	case StatusInactive:
		return StatusInactive, nil
	case StatusSuspended:
		return StatusSuspended, nil
	case StatusDeleted:
		return StatusDeleted, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Account represents a registered platform identity. PasswordHash is empty
// for accounts created through Google login.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	Role         Role
	RegisterType RegisterType
	Status       Status
	RegisterDate time.Time
}
