package repository

import (
	"context"
	"errors"

	"internhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileAlreadyExists is returned when an account already owns a profile of that kind.
var ErrProfileAlreadyExists = errors.New("profile already exists")

// ErrProfileNotFound is returned when an account has no profile of the requested kind.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines persistence for the role-specific profile relations (students, companies).
type ProfileRepository interface {
	// CreateStudentProfile inserts a students row keyed to profile.UserID.
	CreateStudentProfile(ctx context.Context, profile *entity.StudentProfile) error

	// CreateCompanyProfile inserts a companies row keyed to profile.UserID.
	CreateCompanyProfile(ctx context.Context, profile *entity.CompanyProfile) error

	// FindStudentProfile retrieves the student profile owned by userID.
	FindStudentProfile(ctx context.Context, userID uuid.UUID) (*entity.StudentProfile, error)

	// FindCompanyProfile retrieves the company profile owned by userID.
	FindCompanyProfile(ctx context.Context, userID uuid.UUID) (*entity.CompanyProfile, error)
}
