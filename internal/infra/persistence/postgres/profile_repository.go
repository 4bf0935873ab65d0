package postgres

import (
	"context"

	domainerrors "internhub/internal/domain/errors"
	"internhub/internal/domain/entity"
	"internhub/internal/domain/repository"
	"internhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// profileRepository implements the repository.ProfileRepository interface using GORM.
type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository is the constructor for profileRepository.
func NewProfileRepository(db *gorm.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

func (repo *profileRepository) CreateStudentProfile(ctx context.Context, profile *entity.StudentProfile) error {
	profileM := fromStudentProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		return translateProfileError(err, "student")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

func (repo *profileRepository) CreateCompanyProfile(ctx context.Context, profile *entity.CompanyProfile) error {
	profileM := fromCompanyProfileDomain(profile)

	if err := repo.db.WithContext(ctx).Create(profileM).Error; err != nil {
		return translateProfileError(err, "company")
	}

	profile.ID = profileM.ID
	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

func (repo *profileRepository) FindStudentProfile(ctx context.Context, userID uuid.UUID) (*entity.StudentProfile, error) {
	var profileM model.StudentProfileModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find student profile")
	}

	return toStudentProfileDomain(&profileM), nil
}

func (repo *profileRepository) FindCompanyProfile(ctx context.Context, userID uuid.UUID) (*entity.CompanyProfile, error) {
	var profileM model.CompanyProfileModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProfileNotFound
		}

		return nil, errors.Wrap(err, "failed to find company profile")
	}

	return toCompanyProfileDomain(&profileM), nil
}

func translateProfileError(err error, kind string) error {
	if isUniqueConstraintViolation(err) {
		return errors.Wrapf(repository.ErrProfileAlreadyExists, "%s profile already exists", kind)
	}
	if isForeignKeyConstraintViolation(err) {
		return domainerrors.ErrProfileCreationFailed.WrapMessage("profile references a missing account")
	}

	return domainerrors.NewDatabaseExecuteError(err, "failed to create "+kind+" profile")
}
