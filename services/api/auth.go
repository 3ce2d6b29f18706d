package api

import (
	"context"

	"github.com/santarita/portal/core"
	"github.com/santarita/portal/core/session"
)

var _ session.Gateway = (*Client)(nil)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string          `json:"token"`
	User  session.Profile `json:"user"`
}

// Login authenticates and returns the token/user pair the backend
// issued. The error message, if any, is the server's own.
func (c *Client) Login(ctx context.Context, email, password string) (string, session.Profile, error) {
	var resp loginResponse
	if err := c.Post(ctx, "auth/login", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return "", session.Profile{}, err
	}
	return resp.Token, resp.User, nil
}

// RegisterInput is the public registration form.
type RegisterInput struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

func (in *RegisterInput) Validate() error {
	in.Name = core.CleanString(in.Name)
	in.Email = core.CleanString(in.Email, true)
	if err := core.Validate.Struct(in); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.Post(ctx, "auth/public-register", in, nil)
}

// RegisterByAdminInput is the dashboard's staff-registration form.
type RegisterByAdminInput struct {
	Name        string `json:"name" validate:"required"`
	Username    string `json:"username" validate:"omitempty,min=6,alphanum_"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	IsAdmin     bool   `json:"isAdmin"`
	IsSecretary bool   `json:"isSecretaria"`
}

func (in *RegisterByAdminInput) Validate() error {
	in.Name = core.CleanString(in.Name)
	in.Username = core.CleanString(in.Username, true)
	in.Email = core.CleanString(in.Email, true)
	if err := core.Validate.Struct(in); err != nil {
		return core.TranslateValidationErrors(err)
	}
	return nil
}

func (c *Client) RegisterByAdmin(ctx context.Context, in RegisterByAdminInput) error {
	return c.Post(ctx, "auth/register-by-admin", in, nil)
}

// CheckEmail reports whether an account exists for the address.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, error) {
	var resp struct {
		Exists bool `json:"exists"`
	}
	body := map[string]string{"email": core.CleanString(email, true)}
	if err := c.Post(ctx, "auth/check-email", body, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": core.CleanString(email, true)}
	return c.Post(ctx, "auth/forgot-password", body, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"password": password}
	return c.Put(ctx, "auth/reset-password/"+token, body, nil)
}
