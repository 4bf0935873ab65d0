package memory

import (
	"context"
	"time"

	"internhub/internal/domain/entity"
	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// view runs repository operations against a Store. Outside a transaction it
// takes the store lock per call. Inside one the transaction already holds the
// write lock and every mutation records its undo step.
type view struct {
	store *Store
	tx    *transaction
}

func (v *view) read(fn func()) {
	if v.tx == nil {
		v.store.mu.RLock()
		defer v.store.mu.RUnlock()
	}
	fn()
}

func (v *view) write(fn func() error) error {
	if v.tx == nil {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}

	return fn()
}

func (v *view) undo(step func()) {
	if v.tx != nil {
		v.tx.journal = append(v.tx.journal, step)
	}
}

type accountRepository struct{ view }

// NewAccountRepository returns an AccountRepository backed by store.
func NewAccountRepository(store *Store) repository.AccountRepository {
	return &accountRepository{view{store: store}}
}

func (repo *accountRepository) FindByEmail(_ context.Context, email string) (*entity.Account, error) {
	var found *entity.Account
	repo.read(func() {
		id, ok := repo.store.byEmail[email]
		if !ok {
			return
		}
		found = cloneAccount(repo.store.accounts[id])
		found.StudentProfile = cloneStudent(repo.store.students[id])
		found.CompanyProfile = cloneCompany(repo.store.companies[id])
	})

	if found == nil {
		return nil, repository.ErrAccountNotFound
	}

	return found, nil
}

func (repo *accountRepository) Create(_ context.Context, account *entity.Account) error {
	if account.Email == "" {
		return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
	}

	return repo.write(func() error {
		s := repo.store
		if _, exists := s.byEmail[account.Email]; exists {
			return errors.Wrap(repository.ErrAccountAlreadyExists, "email already exists")
		}

		if account.ID == uuid.Nil {
			account.ID = s.newID()
		}
		now := s.now()
		account.CreatedAt = now
		account.UpdatedAt = now

		s.accounts[account.ID] = cloneAccount(account)
		s.byEmail[account.Email] = account.ID

		id, email := account.ID, account.Email
		repo.undo(func() {
			delete(s.accounts, id)
			delete(s.byEmail, email)
		})

		return nil
	})
}

type profileRepository struct{ view }

// NewProfileRepository returns a ProfileRepository backed by store.
func NewProfileRepository(store *Store) repository.ProfileRepository {
	return &profileRepository{view{store: store}}
}

func (repo *profileRepository) CreateStudentProfile(_ context.Context, profile *entity.StudentProfile) error {
	return repo.write(func() error {
		s := repo.store
		if err := repo.checkOwner(profile.UserID); err != nil {
			return err
		}
		if _, exists := s.students[profile.UserID]; exists {
			return errors.Wrap(repository.ErrProfileAlreadyExists, "student profile already exists")
		}

		repo.stamp(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
		s.students[profile.UserID] = cloneStudent(profile)

		userID := profile.UserID
		repo.undo(func() { delete(s.students, userID) })

		return nil
	})
}

func (repo *profileRepository) CreateCompanyProfile(_ context.Context, profile *entity.CompanyProfile) error {
	return repo.write(func() error {
		s := repo.store
		if err := repo.checkOwner(profile.UserID); err != nil {
			return err
		}
		if _, exists := s.companies[profile.UserID]; exists {
			return errors.Wrap(repository.ErrProfileAlreadyExists, "company profile already exists")
		}

		repo.stamp(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
		s.companies[profile.UserID] = cloneCompany(profile)

		userID := profile.UserID
		repo.undo(func() { delete(s.companies, userID) })

		return nil
	})
}

func (repo *profileRepository) FindStudentProfile(_ context.Context, userID uuid.UUID) (*entity.StudentProfile, error) {
	var found *entity.StudentProfile
	repo.read(func() { found = cloneStudent(repo.store.students[userID]) })

	if found == nil {
		return nil, repository.ErrProfileNotFound
	}

	return found, nil
}

func (repo *profileRepository) FindCompanyProfile(_ context.Context, userID uuid.UUID) (*entity.CompanyProfile, error) {
	var found *entity.CompanyProfile
	repo.read(func() { found = cloneCompany(repo.store.companies[userID]) })

	if found == nil {
		return nil, repository.ErrProfileNotFound
	}

	return found, nil
}

func (repo *profileRepository) checkOwner(userID uuid.UUID) error {
	if _, ok := repo.store.accounts[userID]; !ok {
		return domainerrors.ErrProfileCreationFailed.WrapMessage("profile references a missing account")
	}

	return nil
}

func (repo *profileRepository) stamp(id *uuid.UUID, createdAt, updatedAt *time.Time) {
	if *id == uuid.Nil {
		*id = repo.store.newID()
	}
	now := repo.store.now()
	*createdAt = now
	*updatedAt = now
}
