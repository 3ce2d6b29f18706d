// Package testutil hosts the fake portal backend the client packages
// test against: a small echo app with jwt-signed logins over
// bcrypt-hashed users and an in-memory resource store.
package testutil

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/santarita/portal/core/session"
)

var secretKey = []byte("secret")

// User is an account known to the fake backend.
type User struct {
	ID           int
	Name         string
	Email        string
	IsAdmin      bool
	IsSecretary  bool
	PasswordHash []byte
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.MinCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) Profile() session.Profile {
	return session.Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		IsAdmin:     u.IsAdmin,
		IsSecretary: u.IsSecretary,
	}
}

// claims mirror what the real backend puts in its tokens.
type claims struct {
	jwt.StandardClaims
	IsAdmin     bool `json:"is_admin,omitempty"`
	IsSecretary bool `json:"is_secretaria,omitempty"`
}

// PortalAPI is the fake backend. Every request is logged so tests can
// assert which calls were (or were not) made.
type PortalAPI struct {
	app *echo.Echo

	mu          sync.Mutex
	users       []User
	nextUID     int
	resources   map[string][]map[string]interface{}
	nextRID     int
	requests    []string
	resetTokens map[string]string
}

func NewPortalAPI() *PortalAPI {
	s := &PortalAPI{
		app:         echo.New(),
		nextUID:     1,
		nextRID:     1,
		resources:   map[string][]map[string]interface{}{},
		resetTokens: map[string]string{},
	}
	s.app.HideBanner = true
	s.app.Use(s.logRequests)

	api := s.app.Group("/api")
	api.POST("/auth/login", s.login)
	api.POST("/auth/public-register", s.register)
	api.POST("/auth/register-by-admin", s.registerByAdmin)
	api.POST("/auth/check-email", s.checkEmail)
	api.POST("/auth/forgot-password", s.forgotPassword)
	api.PUT("/auth/reset-password/:token", s.resetPassword)
	api.GET("/users", s.listUsers)
	api.PUT("/users/profile", s.updateProfile)
	api.PUT("/users/change-password", s.changePassword)
	api.DELETE("/gallery/album/:name", s.deleteAlbum)
	api.GET("/:resource", s.listResource)
	api.POST("/:resource", s.createResource)
	api.PUT("/:resource/:id", s.updateResource)
	api.DELETE("/:resource/:id", s.deleteResource)
	return s
}

func (s *PortalAPI) Handler() http.Handler { return s.app }

func (s *PortalAPI) logRequests(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		s.mu.Lock()
		s.requests = append(s.requests, ctx.Request().Method+" "+ctx.Request().URL.Path)
		s.mu.Unlock()
		return next(ctx)
	}
}

// Requests returns every "METHOD /path" seen so far.
func (s *PortalAPI) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// AddUser registers an account and returns it.
func (s *PortalAPI) AddUser(name, email, pwd string, isAdmin, isSecretary bool) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	usr := User{ID: s.nextUID, Name: name, Email: email, IsAdmin: isAdmin, IsSecretary: isSecretary}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	s.nextUID++
	s.users = append(s.users, usr)
	return usr, nil
}

// Seed replaces the stored items for one resource path.
func (s *PortalAPI) Seed(resource string, items ...map[string]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resources[resource] = items
}

// Items returns the stored items for one resource path.
func (s *PortalAPI) Items(resource string) []map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]map[string]interface{}(nil), s.resources[resource]...)
}

func httpError(ctx echo.Context, code int, msg string) error {
	return ctx.JSON(code, map[string]string{"error": msg})
}

func (s *PortalAPI) login(ctx echo.Context) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		usr := &s.users[i]
		if usr.Email != body.Email {
			continue
		}
		if err := usr.CheckPassword(body.Password); err != nil {
			break
		}
		token, err := s.mintToken(usr)
		if err != nil {
			return httpError(ctx, http.StatusInternalServerError, "token signing failed")
		}
		return ctx.JSON(http.StatusOK, map[string]interface{}{
			"token": token,
			"user":  usr.Profile(),
		})
	}
	return httpError(ctx, http.StatusBadRequest, "invalid email or password")
}

func (s *PortalAPI) mintToken(usr *User) (string, error) {
	now := time.Now()
	c := &claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    "Portal Santa Rita",
			Subject:   fmt.Sprintf("%d", usr.ID),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(7 * 24 * time.Hour).Unix(),
		},
		IsAdmin:     usr.IsAdmin,
		IsSecretary: usr.IsSecretary,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secretKey)
}

func (s *PortalAPI) emailTaken(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == email {
			return true
		}
	}
	return false
}

func (s *PortalAPI) register(ctx echo.Context) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	if s.emailTaken(body.Email) {
		return httpError(ctx, http.StatusBadRequest, "email already registered")
	}
	usr, err := s.AddUser(body.Name, body.Email, body.Password, false, false)
	if err != nil {
		return httpError(ctx, http.StatusInternalServerError, "could not set password")
	}
	return ctx.JSON(http.StatusCreated, usr.Profile())
}

func (s *PortalAPI) registerByAdmin(ctx echo.Context) error {
	caller, err := s.authenticate(ctx)
	if err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	if !caller.IsAdmin {
		return httpError(ctx, http.StatusForbidden, "permission denied")
	}
	var body struct {
		Name        string `json:"name"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		IsAdmin     bool   `json:"isAdmin"`
		IsSecretary bool   `json:"isSecretaria"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	if s.emailTaken(body.Email) {
		return httpError(ctx, http.StatusBadRequest, "email already registered")
	}
	usr, err := s.AddUser(body.Name, body.Email, body.Password, body.IsAdmin, body.IsSecretary)
	if err != nil {
		return httpError(ctx, http.StatusInternalServerError, "could not set password")
	}
	return ctx.JSON(http.StatusCreated, usr.Profile())
}

func (s *PortalAPI) checkEmail(ctx echo.Context) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	return ctx.JSON(http.StatusOK, map[string]bool{"exists": s.emailTaken(body.Email)})
}

// forgotPassword answers 204 whether or not the account exists, so the
// endpoint never reveals which addresses are registered.
func (s *PortalAPI) forgotPassword(ctx echo.Context) error {
	var body struct {
		Email string `json:"email"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].Email == body.Email {
			s.resetTokens[body.Email] = fmt.Sprintf("reset-%d", s.users[i].ID)
		}
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *PortalAPI) resetPassword(ctx echo.Context) error {
	token := ctx.Param("token")
	var body struct {
		Password string `json:"password"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for email, issued := range s.resetTokens {
		if issued != token {
			continue
		}
		for i := range s.users {
			if s.users[i].Email == email {
				if err := s.users[i].SetPassword(body.Password); err != nil {
					return httpError(ctx, http.StatusInternalServerError, "could not set password")
				}
				delete(s.resetTokens, email)
				return ctx.NoContent(http.StatusNoContent)
			}
		}
	}
	return httpError(ctx, http.StatusBadRequest, "invalid or expired token")
}

// ResetTokens returns the issued password-reset tokens keyed by email.
func (s *PortalAPI) ResetTokens() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.resetTokens))
	for email, token := range s.resetTokens {
		out[email] = token
	}
	return out
}

// authenticate resolves the bearer token into the stored user.
func (s *PortalAPI) authenticate(ctx echo.Context) (*User, error) {
	header := ctx.Request().Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, fmt.Errorf("missing bearer token")
	}
	parsed, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), &claims{}, func(*jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	c := parsed.Claims.(*claims)
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if fmt.Sprintf("%d", s.users[i].ID) == c.Subject {
			usr := s.users[i]
			return &usr, nil
		}
	}
	return nil, fmt.Errorf("unknown user")
}

func (s *PortalAPI) listUsers(ctx echo.Context) error {
	usr, err := s.authenticate(ctx)
	if err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	if !usr.IsAdmin {
		return httpError(ctx, http.StatusForbidden, "permission denied")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	profiles := make([]session.Profile, 0, len(s.users))
	for i := range s.users {
		profiles = append(profiles, s.users[i].Profile())
	}
	return ctx.JSON(http.StatusOK, profiles)
}

func (s *PortalAPI) updateProfile(ctx echo.Context) error {
	usr, err := s.authenticate(ctx)
	if err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == usr.ID {
			s.users[i].Name = body.Name
			s.users[i].Email = body.Email
			return ctx.JSON(http.StatusOK, s.users[i].Profile())
		}
	}
	return httpError(ctx, http.StatusNotFound, "user not found")
}

func (s *PortalAPI) changePassword(ctx echo.Context) error {
	usr, err := s.authenticate(ctx)
	if err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	var body struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := ctx.Bind(&body); err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	if err := usr.CheckPassword(body.CurrentPassword); err != nil {
		return httpError(ctx, http.StatusBadRequest, "current password is incorrect")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == usr.ID {
			if err := s.users[i].SetPassword(body.NewPassword); err != nil {
				return httpError(ctx, http.StatusInternalServerError, "could not set password")
			}
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return httpError(ctx, http.StatusNotFound, "user not found")
}

func (s *PortalAPI) listResource(ctx echo.Context) error {
	name := ctx.Param("resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.resources[name]
	if items == nil {
		items = []map[string]interface{}{}
	}
	return ctx.JSON(http.StatusOK, items)
}

// bindItem accepts either a JSON object or a multipart form (fields
// plus file names), mirroring the real backend's upload endpoints.
func bindItem(ctx echo.Context) (map[string]interface{}, error) {
	contentType := ctx.Request().Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/") {
		form, err := ctx.MultipartForm()
		if err != nil {
			return nil, err
		}
		item := map[string]interface{}{}
		for name, values := range form.Value {
			if len(values) > 0 {
				item[name] = values[0]
			}
		}
		for name, files := range form.File {
			if len(files) > 0 {
				item[name] = files[0].Filename
			}
		}
		return item, nil
	}
	item := map[string]interface{}{}
	if err := ctx.Bind(&item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *PortalAPI) createResource(ctx echo.Context) error {
	if _, err := s.authenticate(ctx); err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	item, err := bindItem(ctx)
	if err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	name := ctx.Param("resource")
	s.mu.Lock()
	defer s.mu.Unlock()
	item["id"] = fmt.Sprintf("%d", s.nextRID)
	s.nextRID++
	s.resources[name] = append(s.resources[name], item)
	return ctx.JSON(http.StatusCreated, item)
}

func (s *PortalAPI) updateResource(ctx echo.Context) error {
	if _, err := s.authenticate(ctx); err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	item, err := bindItem(ctx)
	if err != nil {
		return httpError(ctx, http.StatusBadRequest, "malformed request")
	}
	name, id := ctx.Param("resource"), ctx.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.resources[name] {
		if existing["id"] == id {
			item["id"] = id
			s.resources[name][i] = item
			return ctx.JSON(http.StatusOK, item)
		}
	}
	return httpError(ctx, http.StatusNotFound, "item not found")
}

func (s *PortalAPI) deleteResource(ctx echo.Context) error {
	if _, err := s.authenticate(ctx); err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	name, id := ctx.Param("resource"), ctx.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.resources[name] {
		if existing["id"] == id {
			s.resources[name] = append(s.resources[name][:i], s.resources[name][i+1:]...)
			return ctx.NoContent(http.StatusNoContent)
		}
	}
	return httpError(ctx, http.StatusNotFound, "item not found")
}

func (s *PortalAPI) deleteAlbum(ctx echo.Context) error {
	if _, err := s.authenticate(ctx); err != nil {
		return httpError(ctx, http.StatusUnauthorized, "user not authenticated")
	}
	album := ctx.Param("name")
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.resources["gallery"][:0]
	for _, item := range s.resources["gallery"] {
		if item["album"] != album {
			kept = append(kept, item)
		}
	}
	s.resources["gallery"] = kept
	return ctx.NoContent(http.StatusNoContent)
}
