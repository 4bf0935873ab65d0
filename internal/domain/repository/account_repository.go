// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"internhub/internal/domain/entity"
)

// Domain-specific errors for account persistence.
// They let the application layer react to storage outcomes without depending on database-specific errors.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists is returned when an insert hits the unique email constraint.
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepository defines the persistence operations for accounts (the users relation).
type AccountRepository interface {
	// FindByEmail retrieves an account and its profile by email, the natural key shared with the identity provider.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create inserts a new account row. It must return ErrAccountAlreadyExists when
	// the email is already taken; storage enforces that constraint, not the caller.
	// On success the generated ID and timestamps are written back to account.
	Create(ctx context.Context, account *entity.Account) error
}
