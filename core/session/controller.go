package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/santarita/portal/core"
	"github.com/santarita/portal/core/content"
)

// State is the controller's authentication state. Expired is transient:
// it collapses to Anonymous as soon as cleanup is done, and is only
// observable from inside a Start call.
type State int

const (
	Anonymous State = iota
	Authenticated
	Expired
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return "anonymous"
	}
}

// Pages the controller navigates to on its own transitions.
const (
	PageHome      = "home"
	PageLogin     = "login"
	PageDashboard = "dashboard"
)

// Gateway is the backend as the controller sees it.
type Gateway interface {
	Login(ctx context.Context, email, password string) (token string, usr Profile, err error)
	Users(ctx context.Context) ([]Profile, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (Profile, error)
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
	FetchContent(ctx context.Context) (*content.Content, error)
}

// Controller decides login/logout/expiry transitions and keeps the
// in-memory user and the stored credential in step: every transition
// updates both under one lock, so no caller observes one without the
// other. It also owns the public content lists; admin forms never
// mutate them directly, they trigger a refetch.
type Controller struct {
	gw    Gateway
	store *Store
	nav   core.Navigator
	notif core.Notifier
	conf  core.Confirmer
	log   core.Logger
	now   func() time.Time

	mu      sync.Mutex
	state   State
	user    Profile
	content *content.Content
}

func NewController(gw Gateway, store *Store, nav core.Navigator, notif core.Notifier, conf core.Confirmer, log core.Logger) *Controller {
	return &Controller{
		gw:    gw,
		store: store,
		nav:   nav,
		notif: notif,
		conf:  conf,
		log:   log,
		now:   time.Now,
	}
}

// Start resolves whatever credential is on disk into an initial state:
// valid -> Authenticated; expired -> cleared with a notice; corrupted
// -> cleared with a notice; nothing -> Anonymous, silently.
func (c *Controller) Start() error {
	cred, err := c.store.Load()
	switch {
	case err == nil && cred == nil:
		return nil
	case err == nil:
		c.mu.Lock()
		c.state = Authenticated
		c.user = cred.User
		c.mu.Unlock()
		return nil
	case errors.Is(err, ErrExpired):
		c.mu.Lock()
		c.state = Expired
		if cErr := c.store.Clear(); cErr != nil {
			c.mu.Unlock()
			return errors.Wrap(cErr, "clearing expired session")
		}
		c.user = Profile{}
		c.state = Anonymous
		c.mu.Unlock()
		c.notif.Info("Your session has expired. Please log in again.")
		c.nav.Navigate(PageLogin, nil)
		return nil
	case errors.Is(err, ErrInvalid):
		c.mu.Lock()
		if cErr := c.store.Clear(); cErr != nil {
			c.mu.Unlock()
			return errors.Wrap(cErr, "clearing invalid session")
		}
		c.user = Profile{}
		c.state = Anonymous
		c.mu.Unlock()
		c.notif.Warn("Invalid session. Please log in again.")
		c.nav.Navigate(PageLogin, nil)
		return nil
	default:
		return errors.Wrap(err, "loading session")
	}
}

// Login authenticates against the backend and, on success, persists the
// credential per rememberMe, hydrates the in-memory user and navigates
// to the dashboard. All failures are surfaced verbatim and leave the
// controller Anonymous.
func (c *Controller) Login(ctx context.Context, email, password string, rememberMe bool) error {
	in := LoginInput{Email: email, Password: password, RememberMe: rememberMe}
	if err := in.Validate(); err != nil {
		return err
	}

	token, usr, err := c.gw.Login(ctx, in.Email, in.Password)
	if err != nil {
		c.notif.Error(err.Error())
		return err
	}

	cred := Credential{Token: token, User: usr, RememberMe: rememberMe, LoginAt: c.now()}
	c.mu.Lock()
	if err := c.store.Save(cred); err != nil {
		c.mu.Unlock()
		return errors.Wrap(err, "persisting credential")
	}
	c.state = Authenticated
	c.user = usr
	c.mu.Unlock()

	c.notif.Success("Welcome back, %s!", usr.Name)
	c.nav.Navigate(PageDashboard, nil)
	return nil
}

// Logout ends the session. With confirmation requested, a declined
// prompt leaves everything unchanged and emits a cancellation notice.
func (c *Controller) Logout(withConfirmation bool) error {
	if withConfirmation {
		ok, err := c.conf.Confirm("Are you sure you want to log out?")
		if err != nil {
			return err
		}
		if !ok {
			c.notif.Info("Logout cancelled.")
			return nil
		}
	}
	if err := c.reset(); err != nil {
		return err
	}
	c.nav.Navigate(PageHome, nil)
	return nil
}

// ForceLogout clears the session without asking. Calling it on an
// already-empty session is a no-op, not an error.
func (c *Controller) ForceLogout() error {
	if err := c.reset(); err != nil {
		return err
	}
	c.nav.Navigate(PageHome, nil)
	return nil
}

func (c *Controller) reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.Clear(); err != nil {
		return errors.Wrap(err, "clearing session")
	}
	c.user = Profile{}
	c.state = Anonymous
	return nil
}

// UpdateProfile submits the profile form and replaces the whole
// in-memory Profile with the response; no fields survive a merge.
// Failures are returned to the calling form to render.
func (c *Controller) UpdateProfile(ctx context.Context, in ProfileInput) (Profile, error) {
	if err := in.Validate(); err != nil {
		return Profile{}, err
	}
	usr, err := c.gw.UpdateProfile(ctx, in)
	if err != nil {
		return Profile{}, err
	}
	c.mu.Lock()
	c.user = usr
	if err := c.store.UpdateUser(usr); err != nil {
		c.mu.Unlock()
		return Profile{}, errors.Wrap(err, "persisting profile")
	}
	c.mu.Unlock()
	c.notif.Success("Profile updated successfully.")
	return usr, nil
}

func (c *Controller) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if err := c.gw.ChangePassword(ctx, in); err != nil {
		return err
	}
	c.notif.Success("Password changed successfully.")
	return nil
}

// Users fetches the admin user list. A 403 is an expected condition for
// non-admin staff and is deliberately not surfaced as a notice; any
// other failure is.
func (c *Controller) Users(ctx context.Context) ([]Profile, error) {
	users, err := c.gw.Users(ctx)
	if err != nil {
		if core.StatusCode(err) != http.StatusForbidden {
			c.notif.Error(err.Error())
		}
		return nil, err
	}
	return users, nil
}

// FetchContent loads all public content in one operation and commits it
// once. Failures are notified, never propagated: callers cannot await a
// failure signal from this operation.
func (c *Controller) FetchContent(ctx context.Context) {
	ct, err := c.gw.FetchContent(ctx)
	if err != nil {
		c.log.Error("fetching public content", err)
		c.notif.Error("Could not load site content: %s", err.Error())
		return
	}
	c.mu.Lock()
	c.content = ct
	c.mu.Unlock()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) IsLoggedIn() bool { return c.State() == Authenticated }

func (c *Controller) User() Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

// Content returns the last committed public content, or nil before the
// first successful fetch.
func (c *Controller) Content() *content.Content {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.content
}
