package impl

import (
	"context"
	"log/slog"

	deliverycontext "internhub/internal/delivery/context"
	"internhub/internal/domain/entity"
	"internhub/internal/domain/repository"
	"internhub/internal/domain/service"
	"internhub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	noticeSyncFailed = "We could not finish setting up your account. Reload the page to try again."
)

// profileSynchronizer implements the ProfileSynchronizer interface.
//
// Nothing serializes concurrent calls for the same identity. The unique
// constraint on users.email is the only arbiter: a losing insert re-reads
// the row the winner committed.
type profileSynchronizer struct {
	txManager   repository.TransactionManager
	accountRepo repository.AccountRepository
	roles       usecase.RoleResolver
	metrics     service.MetricsRecorder
	logger      *slog.Logger
}

// ProfileSynchronizerParams holds dependencies for ProfileSynchronizer, injected by Fx.
type ProfileSynchronizerParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Roles       usecase.RoleResolver
	Metrics     service.MetricsRecorder `optional:"true"`
	Logger      *slog.Logger
}

// NewProfileSynchronizer is the constructor for profileSynchronizer.
func NewProfileSynchronizer(params ProfileSynchronizerParams) usecase.ProfileSynchronizer {
	return &profileSynchronizer{
		txManager:   params.TxManager,
		accountRepo: params.AccountRepo,
		roles:       params.Roles,
		metrics:     params.Metrics,
		logger:      params.Logger,
	}
}

func (srv *profileSynchronizer) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *profileSynchronizer) record(outcome service.SyncOutcome) {
	if srv.metrics != nil {
		srv.metrics.RecordSync(outcome)
	}
}

// Synchronize returns the account for identity, creating the account and an empty
// profile on first sight. Lookup hits make no writes.
func (srv *profileSynchronizer) Synchronize(ctx context.Context, identity *entity.Identity) (*entity.Account, error) {
	if identity == nil || identity.Email == "" {
		srv.log(ctx).Warn("Skipping synchronization for identity without email")

		return nil, nil
	}

	existing, err := srv.accountRepo.FindByEmail(ctx, identity.Email)
	if err == nil {
		srv.record(service.SyncOutcomeExisting)

		return existing, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return srv.fail(ctx, identity, errors.Wrap(err, "failed to look up account"))
	}

	// No backing record yet, so only metadata can hint at the role.
	account := &entity.Account{
		Email:         identity.Email,
		AuthSubjectID: identity.SubjectID,
		Role:          srv.roles.RoleFromMetadata(identity),
	}

	srv.log(ctx).Info("Account not found, creating", slog.String("email", account.Email), slog.String("role", account.Role.String()))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return srv.createAccountWithProfile(ctx, repoFactory, account)
	})
	if errors.Is(err, repository.ErrAccountAlreadyExists) {
		return srv.resolveRace(ctx, identity)
	}
	if err != nil {
		return srv.fail(ctx, identity, errors.Wrap(err, "failed to create account"))
	}

	srv.record(service.SyncOutcomeCreated)
	srv.log(ctx).Debug("Account created", slog.Any("accountID", account.ID), slog.String("role", account.Role.String()))
	service.NotifierFromContext(ctx).Notify(ctx, entity.Notice{
		Level:   entity.NoticeSuccess,
		Message: "Welcome! Your " + account.Role.String() + " account is ready.",
	})

	return account, nil
}

// createAccountWithProfile inserts the account row and its placeholder profile in one transaction.
func (srv *profileSynchronizer) createAccountWithProfile(ctx context.Context, repoFactory repository.RepositoryFactory, account *entity.Account) error {
	if err := repoFactory.AccountRepo().Create(ctx, account); err != nil {
		return errors.Wrap(err, "failed to insert account")
	}

	account.NewPlaceholderProfile()

	profileRepo := repoFactory.ProfileRepo()
	switch account.Role {
	case entity.RoleCompany:
		if err := profileRepo.CreateCompanyProfile(ctx, account.CompanyProfile); err != nil {
			return errors.Wrap(err, "failed to insert company profile")
		}
	default:
		if err := profileRepo.CreateStudentProfile(ctx, account.StudentProfile); err != nil {
			return errors.Wrap(err, "failed to insert student profile")
		}
	}

	return nil
}

// resolveRace handles a lost insert: another caller created the account first.
func (srv *profileSynchronizer) resolveRace(ctx context.Context, identity *entity.Identity) (*entity.Account, error) {
	srv.log(ctx).Info("Account was created concurrently, re-fetching", slog.String("email", identity.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, identity.Email)
	if err != nil {
		return srv.fail(ctx, identity, errors.Wrap(err, "failed to re-fetch concurrently created account"))
	}

	srv.record(service.SyncOutcomeRaceResolved)

	return account, nil
}

// fail logs err, surfaces a failure notice and reports "not yet synchronized".
func (srv *profileSynchronizer) fail(ctx context.Context, identity *entity.Identity, err error) (*entity.Account, error) {
	srv.log(ctx).Error("Account synchronization failed", slog.String("email", identity.Email), slog.Any("error", err))
	srv.record(service.SyncOutcomeFailed)
	service.NotifierFromContext(ctx).Notify(ctx, entity.Notice{
		Level:   entity.NoticeError,
		Message: noticeSyncFailed,
	})

	return nil, nil
}
