package memory

import (
	"context"

	"internhub/internal/domain/repository"
)

type transaction struct {
	journal []func()
}

type transactionManager struct {
	store *Store
}

// NewTransactionManager returns a TransactionManager that serializes transactions on store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

type repositoryFactory struct {
	store *Store
	tx    *transaction
}

func (f *repositoryFactory) AccountRepo() repository.AccountRepository {
	return &accountRepository{view{store: f.store, tx: f.tx}}
}

func (f *repositoryFactory) ProfileRepo() repository.ProfileRepository {
	return &profileRepository{view{store: f.store, tx: f.tx}}
}

// Execute holds the store's write lock for the whole of fn and undoes every
// mutation fn made when it returns an error or panics.
func (tm *transactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	tx := &transaction{}

	defer func() {
		if r := recover(); r != nil {
			tx.rollback()
			panic(r)
		}
	}()

	if err := fn(&repositoryFactory{store: tm.store, tx: tx}); err != nil {
		tx.rollback()

		return err
	}

	return nil
}

func (tx *transaction) rollback() {
	for i := len(tx.journal) - 1; i >= 0; i-- {
		tx.journal[i]()
	}
	tx.journal = nil
}
