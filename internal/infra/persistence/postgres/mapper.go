package postgres

import (
	"internhub/internal/domain/entity"
	"internhub/internal/infra/persistence/model"
)

func toAccountDomain(m *model.AccountModel) *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:             m.ID,
		Email:          m.Email,
		AuthSubjectID:  m.AuthSubjectID,
		Role:           entity.Role(m.Role),
		StudentProfile: toStudentProfileDomain(m.StudentProfile),
		CompanyProfile: toCompanyProfileDomain(m.CompanyProfile),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// fromAccountDomain maps only the users row. Profiles are written through ProfileRepository.
func fromAccountDomain(a *entity.Account) *model.AccountModel {
	return &model.AccountModel{
		ID:            a.ID,
		Email:         a.Email,
		AuthSubjectID: a.AuthSubjectID,
		Role:          a.Role.String(),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toStudentProfileDomain(m *model.StudentProfileModel) *entity.StudentProfile {
	if m == nil {
		return nil
	}

	p := &entity.StudentProfile{
		ID:         m.ID,
		UserID:     m.UserID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		University: m.University,
		Major:      m.Major,
		Bio:        m.Bio,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.GraduationYear != nil {
		p.GraduationYear = *m.GraduationYear
	}

	return p
}

func fromStudentProfileDomain(p *entity.StudentProfile) *model.StudentProfileModel {
	m := &model.StudentProfileModel{
		ID:         p.ID,
		UserID:     p.UserID,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		University: p.University,
		Major:      p.Major,
		Bio:        p.Bio,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.GraduationYear != 0 {
		year := p.GraduationYear
		m.GraduationYear = &year
	}

	return m
}

func toCompanyProfileDomain(m *model.CompanyProfileModel) *entity.CompanyProfile {
	if m == nil {
		return nil
	}

	return &entity.CompanyProfile{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		Industry:    m.Industry,
		Website:     m.Website,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromCompanyProfileDomain(p *entity.CompanyProfile) *model.CompanyProfileModel {
	return &model.CompanyProfileModel{
		ID:          p.ID,
		UserID:      p.UserID,
		Name:        p.Name,
		Industry:    p.Industry,
		Website:     p.Website,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
