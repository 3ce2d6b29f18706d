package session

import (
	"time"

	"github.com/santarita/portal/core"
)

// Profile is the authenticated user as the backend reports it. It is
// always replaced whole; the client never patch-merges profile fields.
type Profile struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	IsAdmin     bool   `json:"isAdmin"`
	IsSecretary bool   `json:"isSecretaria"`
}

// IsZero reports whether no user is loaded.
func (p Profile) IsZero() bool { return p == Profile{} }

// IsStaff reports whether the user may enter the admin dashboard.
func (p Profile) IsStaff() bool { return p.IsAdmin || p.IsSecretary }

// Credential is a token + user pair representing an authenticated
// session. LoginAt is only meaningful for remembered (persistent)
// credentials, where it drives the expiry rule.
type Credential struct {
	Token      string
	User       Profile
	RememberMe bool
	LoginAt    time.Time
}

// LoginInput is what the login form submits.
type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

func (in *LoginInput) Validate() error {
	in.Email = core.CleanString(in.Email, true)
	if err := core.Validate.Struct(in); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// ProfileInput is what the profile form submits; the response replaces
// the in-memory Profile wholesale.
type ProfileInput struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (in *ProfileInput) Validate() error {
	in.Name = core.CleanString(in.Name)
	in.Email = core.CleanString(in.Email, true)
	if err := core.Validate.Struct(in); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

// ChangePasswordInput is what the change-password form submits.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=NewPassword"`
}

func (in *ChangePasswordInput) Validate() error {
	if err := core.Validate.Struct(in); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}
