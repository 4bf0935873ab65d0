// Package memory is an in-process persistence driver with the same
// uniqueness and atomicity guarantees as the PostgreSQL schema.
package memory

import (
	"sync"
	"time"

	"internhub/internal/domain/entity"

	"github.com/google/uuid"
)

// Store holds the users, students and companies relations in memory.
type Store struct {
	mu        sync.RWMutex
	accounts  map[uuid.UUID]*entity.Account
	byEmail   map[string]uuid.UUID
	students  map[uuid.UUID]*entity.StudentProfile
	companies map[uuid.UUID]*entity.CompanyProfile
	now       func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[uuid.UUID]*entity.Account),
		byEmail:   make(map[string]uuid.UUID),
		students:  make(map[uuid.UUID]*entity.StudentProfile),
		companies: make(map[uuid.UUID]*entity.CompanyProfile),
		now:       time.Now,
	}
}

// AccountCount returns the number of users rows.
func (s *Store) AccountCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.accounts)
}

// ProfileCount returns the number of students and companies rows.
func (s *Store) ProfileCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.students) + len(s.companies)
}

func (s *Store) newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}

func cloneAccount(a *entity.Account) *entity.Account {
	c := *a
	c.StudentProfile = nil
	c.CompanyProfile = nil

	return &c
}

func cloneStudent(p *entity.StudentProfile) *entity.StudentProfile {
	if p == nil {
		return nil
	}
	c := *p

	return &c
}

func cloneCompany(p *entity.CompanyProfile) *entity.CompanyProfile {
	if p == nil {
		return nil
	}
	c := *p

	return &c
}
