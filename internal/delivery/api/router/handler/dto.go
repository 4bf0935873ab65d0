package handler

import (
	"time"

	"internhub/internal/domain/entity"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Redirect string `json:"redirect"`
}

// SignupRequest is the body of POST /auth/signup. Role is only a hint for the
// account created on first sign-in.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=student company"`
	Redirect string `json:"redirect"`
}

// UserResponse is the public view of the signed-in identity.
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is returned after a successful login or sign-up.
type AuthResponse struct {
	User     UserResponse `json:"user"`
	Role     string       `json:"role"`
	Redirect string       `json:"redirect"`
}

// SignupPendingResponse is returned when the provider requires email confirmation.
type SignupPendingResponse struct {
	Status string `json:"status"`
	Email  string `json:"email"`
}

// SessionResponse describes the browser session's auth state.
type SessionResponse struct {
	Authenticated bool          `json:"authenticated"`
	Loading       bool          `json:"loading"`
	Sync          string        `json:"sync"`
	Role          string        `json:"role,omitempty"`
	User          *UserResponse `json:"user,omitempty"`
	ExpiresAt     *time.Time    `json:"expires_at,omitempty"`
}

// RoleResponse is the body of GET /auth/role.
type RoleResponse struct {
	Role string `json:"role"`
}

// StudentProfileResponse is the public view of a student profile.
type StudentProfileResponse struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	University     string `json:"university"`
	Major          string `json:"major"`
	GraduationYear int    `json:"graduation_year,omitempty"`
	Bio            string `json:"bio"`
}

// CompanyProfileResponse is the public view of a company profile.
type CompanyProfileResponse struct {
	Name        string `json:"name"`
	Industry    string `json:"industry"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// AccountResponse is the public view of an account and its profile.
type AccountResponse struct {
	ID             string                  `json:"id"`
	Email          string                  `json:"email"`
	Role           string                  `json:"role"`
	CreatedAt      time.Time               `json:"created_at"`
	StudentProfile *StudentProfileResponse `json:"student_profile,omitempty"`
	CompanyProfile *CompanyProfileResponse `json:"company_profile,omitempty"`
}

// SyncResponse is the body of POST /auth/sync.
type SyncResponse struct {
	Synchronized bool             `json:"synchronized"`
	Account      *AccountResponse `json:"account,omitempty"`
}

// PageResponse stands in for a rendered page.
type PageResponse struct {
	Page     string           `json:"page"`
	Role     string           `json:"role,omitempty"`
	User     *UserResponse    `json:"user,omitempty"`
	Account  *AccountResponse `json:"account,omitempty"`
	Redirect string           `json:"redirect,omitempty"`
	Notices  []entity.Notice  `json:"notices"`
}

func toUserResponse(identity *entity.Identity) *UserResponse {
	if identity == nil {
		return nil
	}

	return &UserResponse{ID: identity.SubjectID, Email: identity.Email}
}

func toSessionResponse(state entity.AuthState) SessionResponse {
	resp := SessionResponse{
		Authenticated: state.IsAuthenticated(),
		Loading:       state.IsLoading,
		Sync:          string(state.Sync),
		User:          toUserResponse(state.User),
	}
	if state.RoleKnown() {
		resp.Role = state.Role.String()
	}
	if state.Session != nil && !state.Session.ExpiresAt.IsZero() {
		expiresAt := state.Session.ExpiresAt
		resp.ExpiresAt = &expiresAt
	}

	return resp
}

func toAccountResponse(account *entity.Account) *AccountResponse {
	if account == nil {
		return nil
	}

	resp := &AccountResponse{
		ID:        account.ID.String(),
		Email:     account.Email,
		Role:      account.Role.String(),
		CreatedAt: account.CreatedAt,
	}
	if p := account.StudentProfile; p != nil {
		resp.StudentProfile = &StudentProfileResponse{
			FirstName:      p.FirstName,
			LastName:       p.LastName,
			University:     p.University,
			Major:          p.Major,
			GraduationYear: p.GraduationYear,
			Bio:            p.Bio,
		}
	}
	if p := account.CompanyProfile; p != nil {
		resp.CompanyProfile = &CompanyProfileResponse{
			Name:        p.Name,
			Industry:    p.Industry,
			Website:     p.Website,
			Description: p.Description,
		}
	}

	return resp
}

func noticesOrEmpty(notices []entity.Notice) []entity.Notice {
	if notices == nil {
		return []entity.Notice{}
	}

	return notices
}
