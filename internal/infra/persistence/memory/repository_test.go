package memory

import (
	"context"
	"sync"
	"testing"

	"internhub/internal/domain/entity"
	"internhub/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository_CreateAndFind(t *testing.T) {
	store := NewStore()
	repo := NewAccountRepository(store)
	ctx := context.Background()

	account := &entity.Account{Email: "ada@example.com", AuthSubjectID: "sub-1", Role: entity.RoleStudent}
	require.NoError(t, repo.Create(ctx, account))
	assert.NotEmpty(t, account.ID)
	assert.False(t, account.CreatedAt.IsZero())

	found, err := repo.FindByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)
	assert.Equal(t, entity.RoleStudent, found.Role)
	assert.Nil(t, found.StudentProfile)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	store := NewStore()
	repo := NewAccountRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Account{Email: "dup@example.com", Role: entity.RoleStudent}))

	err := repo.Create(ctx, &entity.Account{Email: "dup@example.com", Role: entity.RoleCompany})
	assert.ErrorIs(t, err, repository.ErrAccountAlreadyExists)
	assert.Equal(t, 1, store.AccountCount())
}

func TestProfileRepository(t *testing.T) {
	store := NewStore()
	accounts := NewAccountRepository(store)
	profiles := NewProfileRepository(store)
	ctx := context.Background()

	account := &entity.Account{Email: "acme@example.com", Role: entity.RoleCompany}
	require.NoError(t, accounts.Create(ctx, account))

	t.Run("missing owner", func(t *testing.T) {
		err := profiles.CreateCompanyProfile(ctx, &entity.CompanyProfile{})
		assert.Error(t, err)
	})

	t.Run("create and find", func(t *testing.T) {
		require.NoError(t, profiles.CreateCompanyProfile(ctx, &entity.CompanyProfile{UserID: account.ID, Name: "Acme"}))

		found, err := profiles.FindCompanyProfile(ctx, account.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", found.Name)

		_, err = profiles.FindStudentProfile(ctx, account.ID)
		assert.ErrorIs(t, err, repository.ErrProfileNotFound)
	})

	t.Run("second profile rejected", func(t *testing.T) {
		err := profiles.CreateCompanyProfile(ctx, &entity.CompanyProfile{UserID: account.ID})
		assert.ErrorIs(t, err, repository.ErrProfileAlreadyExists)
	})

	t.Run("account lookup carries profile", func(t *testing.T) {
		found, err := accounts.FindByEmail(ctx, "acme@example.com")
		require.NoError(t, err)
		require.NotNil(t, found.CompanyProfile)
		assert.True(t, found.HasMatchingProfile())
	})
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		account := &entity.Account{Email: "rollback@example.com", Role: entity.RoleStudent}
		if err := f.AccountRepo().Create(ctx, account); err != nil {
			return err
		}
		if err := f.ProfileRepo().CreateStudentProfile(ctx, &entity.StudentProfile{UserID: account.ID}); err != nil {
			return err
		}

		return errBoom
	})

	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 0, store.AccountCount())
	assert.Equal(t, 0, store.ProfileCount())

	_, err = NewAccountRepository(store).FindByEmail(ctx, "rollback@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestTransactionManager_RollsBackOnPanic(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(f repository.RepositoryFactory) error {
			_ = f.AccountRepo().Create(ctx, &entity.Account{Email: "panic@example.com", Role: entity.RoleStudent})
			panic("boom")
		})
	})

	assert.Equal(t, 0, store.AccountCount())
}

func TestTransactionManager_ConcurrentInsertsKeepEmailUnique(t *testing.T) {
	store := NewStore()
	tm := NewTransactionManager(store)
	ctx := context.Background()

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dupes   int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
				return f.AccountRepo().Create(ctx, &entity.Account{Email: "race@example.com", Role: entity.RoleStudent})
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				created++
			case errors.Is(err, repository.ErrAccountAlreadyExists):
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, dupes)
	assert.Equal(t, 1, store.AccountCount())
}
