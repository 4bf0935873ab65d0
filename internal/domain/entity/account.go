// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the application's durable record for an authenticated identity.
// Email is the natural key shared with the identity provider and is unique.
type Account struct {
	ID             uuid.UUID       // Primary key of the users table.
	Email          string          // Unique; used to match provider sessions to accounts.
	AuthSubjectID  string          // The identity provider's subject ('sub') for this person.
	Role           Role            // Set once at creation, authoritative afterwards.
	StudentProfile *StudentProfile // Present when Role is student.
	CompanyProfile *CompanyProfile // Present when Role is company.
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// HasMatchingProfile reports whether the account carries the profile variant its role requires.
func (a *Account) HasMatchingProfile() bool {
	if a == nil {
		return false
	}

	switch a.Role {
	case RoleStudent:
		return a.StudentProfile != nil && a.CompanyProfile == nil
	case RoleCompany:
		return a.CompanyProfile != nil && a.StudentProfile == nil
	default:
		return false
	}
}

// StudentProfile holds data specific to the student role.
type StudentProfile struct {
	ID             uuid.UUID
	UserID         uuid.UUID // Links this profile to its Account (unique).
	FirstName      string
	LastName       string
	University     string
	Major          string
	GraduationYear int
	Bio            string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CompanyProfile holds data specific to the company role.
type CompanyProfile struct {
	ID          uuid.UUID
	UserID      uuid.UUID // Links this profile to its Account (unique).
	Name        string
	Industry    string
	Website     string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPlaceholderProfile attaches an empty profile matching the account's role.
func (a *Account) NewPlaceholderProfile() {
	switch a.Role {
	case RoleCompany:
		a.StudentProfile = nil
		a.CompanyProfile = &CompanyProfile{UserID: a.ID}
	default:
		a.CompanyProfile = nil
		a.StudentProfile = &StudentProfile{UserID: a.ID}
	}
}
