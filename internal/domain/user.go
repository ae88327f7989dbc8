package domain

import (
	"errors"
	"time"
)

// User represents a coordinator or other actor allowed to operate on a
// project's finances. Authentication happens at the HTTP edge; by the time
// a user id reaches the integrity core it is trusted.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Role represents a user's access level.
type Role string

const (
	// RoleCoordinator manages accounts and registers transactions.
	RoleCoordinator Role = "coordinator"

	// RoleAuditor can run integrity reports and read audit trails, but
	// cannot mutate financial data.
	RoleAuditor Role = "auditor"

	// RoleViewer can only view balances and transactions.
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]bool{
	RoleCoordinator: true,
	RoleAuditor:     true,
	RoleViewer:      true,
}

// IsValid checks if the role is a known role.
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanRegisterTransactions checks if the role may create transactions and
// accounts.
func (r Role) CanRegisterTransactions() bool {
	return r == RoleCoordinator
}

// CanRunIntegrityChecks checks if the role may generate integrity reports.
func (r Role) CanRunIntegrityChecks() bool {
	return r == RoleCoordinator || r == RoleAuditor
}

// CanViewAll checks if the role can view resources.
func (r Role) CanViewAll() bool {
	return r.IsValid()
}

// Authentication and authorization errors.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)
