package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
type AccountModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	AuthSubjectID string    `gorm:"column:auth_subject_id;type:varchar(255);not null;default:''"`
	Role          string    `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	StudentProfile *StudentProfileModel `gorm:"foreignKey:UserID"`
	CompanyProfile *CompanyProfileModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "users"
}

// StudentProfileModel mirrors the 'students' table. UserID references users.id and is unique.
type StudentProfileModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName      string    `gorm:"type:varchar(100)"`
	LastName       string    `gorm:"type:varchar(100)"`
	University     string    `gorm:"type:varchar(255)"`
	Major          string    `gorm:"type:varchar(255)"`
	GraduationYear *int
	Bio            string `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (StudentProfileModel) TableName() string {
	return "students"
}

// CompanyProfileModel mirrors the 'companies' table. UserID references users.id and is unique.
type CompanyProfileModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Name        string    `gorm:"type:varchar(255)"`
	Industry    string    `gorm:"type:varchar(255)"`
	Website     string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (CompanyProfileModel) TableName() string {
	return "companies"
}
