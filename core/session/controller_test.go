package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/santarita/portal/core"
	"github.com/santarita/portal/core/content"
	"github.com/santarita/portal/core/nav"
	"github.com/santarita/portal/services/notify"
	"github.com/santarita/portal/services/prompt"
)

type fakeGateway struct {
	token      string
	usr        Profile
	loginErr   error
	loginCalls int

	users    []Profile
	usersErr error

	profile    Profile
	profileErr error

	changeErr   error
	changeCalls int

	content    *content.Content
	contentErr error
}

func (g *fakeGateway) Login(_ context.Context, email, password string) (string, Profile, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return "", Profile{}, g.loginErr
	}
	return g.token, g.usr, nil
}

func (g *fakeGateway) Users(context.Context) ([]Profile, error) {
	return g.users, g.usersErr
}

func (g *fakeGateway) UpdateProfile(context.Context, ProfileInput) (Profile, error) {
	return g.profile, g.profileErr
}

func (g *fakeGateway) ChangePassword(context.Context, ChangePasswordInput) error {
	g.changeCalls++
	return g.changeErr
}

func (g *fakeGateway) FetchContent(context.Context) (*content.Content, error) {
	return g.content, g.contentErr
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fixture struct {
	ctrl       *Controller
	gw         *fakeGateway
	store      *Store
	persistent memScope
	sess       memScope
	notif      *notify.Recorder
	conf       *prompt.Stub
	nav        *nav.Navigator
}

func newFixture(gw *fakeGateway, replies ...bool) *fixture {
	persistent := memScope{}
	sess := memScope{}
	store := NewStore(persistent, sess, 24*time.Hour)
	notif := notify.NewRecorder()
	conf := prompt.NewStub(replies...)
	navigator := nav.New(nil)
	return &fixture{
		ctrl:       NewController(gw, store, navigator, notif, conf, nopLogger{}),
		gw:         gw,
		store:      store,
		persistent: persistent,
		sess:       sess,
		notif:      notif,
		conf:       conf,
		nav:        navigator,
	}
}

func TestControllerStartEmptyStorage(t *testing.T) {
	f := newFixture(&fakeGateway{})
	if err := f.ctrl.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	assert.Equal(t, Anonymous, f.ctrl.State())
	assert.Empty(t, f.notif.Notices())
	assert.Empty(t, f.nav.History())
}

func TestControllerStartValidCredential(t *testing.T) {
	f := newFixture(&fakeGateway{})
	err := f.store.Save(Credential{Token: "T", User: anaProfile, RememberMe: true})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if err := f.ctrl.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	assert.Equal(t, Authenticated, f.ctrl.State())
	assert.True(t, f.ctrl.IsLoggedIn())
	assert.Equal(t, anaProfile, f.ctrl.User())
	assert.Empty(t, f.notif.Notices())
}

func TestControllerStartExpiredCredential(t *testing.T) {
	f := newFixture(&fakeGateway{})
	err := f.store.Save(Credential{
		Token:      "T",
		User:       anaProfile,
		RememberMe: true,
		LoginAt:    time.Now().Add(-25 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if err := f.ctrl.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	assert.Equal(t, Anonymous, f.ctrl.State())
	assert.Empty(t, f.persistent)
	assert.Empty(t, f.sess)
	assert.True(t, f.notif.Contains("session has expired"))
	assert.Len(t, f.notif.ByLevel(notify.LevelInfo), 1)
	assert.Equal(t, PageLogin, f.nav.Current().Page)
}

func TestControllerStartCorruptedCredential(t *testing.T) {
	f := newFixture(&fakeGateway{})
	f.sess[`token`] = "T" // no paired user record

	if err := f.ctrl.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	assert.Equal(t, Anonymous, f.ctrl.State())
	assert.Empty(t, f.sess)
	assert.True(t, f.notif.Contains("Invalid session"))
	assert.Len(t, f.notif.ByLevel(notify.LevelWarning), 1)
}

func TestControllerLoginRememberMe(t *testing.T) {
	f := newFixture(&fakeGateway{token: "T", usr: anaProfile})

	err := f.ctrl.Login(context.Background(), "ana@santarita.edu.br", "pw", true)
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	assert.Equal(t, "T", f.persistent[`token`])
	assert.Empty(t, f.sess)
	assert.Equal(t, Authenticated, f.ctrl.State())
	assert.Equal(t, anaProfile, f.ctrl.User())
	assert.Equal(t, PageDashboard, f.nav.Current().Page)
	assert.True(t, f.notif.Contains("Ana"))
	assert.Len(t, f.notif.ByLevel(notify.LevelSuccess), 1)

	cred, err := f.store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.NotNil(t, cred)
}

func TestControllerLoginSessionScope(t *testing.T) {
	f := newFixture(&fakeGateway{token: "T", usr: anaProfile})

	err := f.ctrl.Login(context.Background(), "ana@santarita.edu.br", "pw", false)
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	assert.Empty(t, f.persistent)
	assert.Equal(t, "T", f.sess[`token`])

	cred, err := f.store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.NotNil(t, cred)
}

func TestControllerLoginFailure(t *testing.T) {
	f := newFixture(&fakeGateway{loginErr: core.NewAPIError(http.StatusBadRequest, "invalid email or password", nil)})

	err := f.ctrl.Login(context.Background(), "ana@santarita.edu.br", "wrong", true)
	assert.Error(t, err)
	assert.Equal(t, Anonymous, f.ctrl.State())
	assert.Empty(t, f.persistent)
	assert.Empty(t, f.sess)
	// the server message is surfaced verbatim
	assert.True(t, f.notif.Contains("invalid email or password"))
	assert.Len(t, f.notif.ByLevel(notify.LevelError), 1)
}

func TestControllerLoginValidatesInput(t *testing.T) {
	gw := &fakeGateway{token: "T", usr: anaProfile}
	f := newFixture(gw)

	err := f.ctrl.Login(context.Background(), "not-an-email", "pw", false)
	assert.Error(t, err)
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Zero(t, gw.loginCalls)
}

func TestControllerLogoutDeclined(t *testing.T) {
	f := newFixture(&fakeGateway{token: "T", usr: anaProfile}, false)
	if err := f.ctrl.Login(context.Background(), "ana@santarita.edu.br", "pw", true); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	f.notif.Reset()

	if err := f.ctrl.Logout(true); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	assert.Equal(t, Authenticated, f.ctrl.State())
	assert.Equal(t, "T", f.persistent[`token`])
	assert.True(t, f.notif.Contains("Logout cancelled"))
}

func TestControllerLogoutConfirmed(t *testing.T) {
	f := newFixture(&fakeGateway{token: "T", usr: anaProfile}, true)
	if err := f.ctrl.Login(context.Background(), "ana@santarita.edu.br", "pw", true); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	if err := f.ctrl.Logout(true); err != nil {
		t.Fatalf("Logout() failed: %v", err)
	}
	assert.Equal(t, Anonymous, f.ctrl.State())
	assert.True(t, f.ctrl.User().IsZero())
	assert.Empty(t, f.persistent)
	assert.Equal(t, PageHome, f.nav.Current().Page)
	assert.Equal(t, []string{"Are you sure you want to log out?"}, f.conf.Asked())
}

func TestControllerForceLogoutIsIdempotent(t *testing.T) {
	f := newFixture(&fakeGateway{token: "T", usr: anaProfile})
	if err := f.ctrl.Login(context.Background(), "ana@santarita.edu.br", "pw", true); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	assert.NoError(t, f.ctrl.ForceLogout())
	assert.Empty(t, f.persistent)
	assert.Empty(t, f.sess)

	// second call is a no-op, not an error
	assert.NoError(t, f.ctrl.ForceLogout())
	assert.Empty(t, f.persistent)
	assert.Empty(t, f.sess)
	assert.Equal(t, Anonymous, f.ctrl.State())
}

func TestControllerUpdateProfileReplacesWholeObject(t *testing.T) {
	updated := Profile{ID: 1, Name: "Ana Souza", Email: "ana.souza@santarita.edu.br", IsAdmin: true}
	f := newFixture(&fakeGateway{token: "T", usr: anaProfile, profile: updated})
	if err := f.ctrl.Login(context.Background(), "ana@santarita.edu.br", "pw", false); err != nil {
		t.Fatalf("Login() failed: %v", err)
	}

	got, err := f.ctrl.UpdateProfile(context.Background(), ProfileInput{Name: "Ana Souza", Email: "ana.souza@santarita.edu.br"})
	if err != nil {
		t.Fatalf("UpdateProfile() failed: %v", err)
	}
	// full replacement: the in-memory user IS the response object
	assert.Equal(t, updated, got)
	assert.Equal(t, updated, f.ctrl.User())

	cred, err := f.store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, updated, cred.User)
}

func TestControllerChangePassword(t *testing.T) {
	gw := &fakeGateway{}
	f := newFixture(gw)

	err := f.ctrl.ChangePassword(context.Background(), ChangePasswordInput{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
		PasswordConfirm: "new-pass",
	})
	if err != nil {
		t.Fatalf("ChangePassword() failed: %v", err)
	}
	assert.Equal(t, 1, gw.changeCalls)
	assert.True(t, f.notif.Contains("Password changed"))
	assert.Len(t, f.notif.ByLevel(notify.LevelSuccess), 1)
}

func TestControllerChangePasswordFailure(t *testing.T) {
	gw := &fakeGateway{changeErr: core.NewAPIError(http.StatusBadRequest, "current password is incorrect", nil)}
	f := newFixture(gw)

	err := f.ctrl.ChangePassword(context.Background(), ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "new-pass",
		PasswordConfirm: "new-pass",
	})
	// the calling form renders the error; no notice here
	assert.EqualError(t, err, "current password is incorrect")
	assert.Empty(t, f.notif.Notices())
}

func TestControllerChangePasswordValidatesInput(t *testing.T) {
	gw := &fakeGateway{}
	f := newFixture(gw)

	err := f.ctrl.ChangePassword(context.Background(), ChangePasswordInput{
		CurrentPassword: "old-pass",
		NewPassword:     "new-pass",
		PasswordConfirm: "other",
	})
	assert.Error(t, err)
	var vErr *core.ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Zero(t, gw.changeCalls)
}

func TestControllerUsersSuppresses403(t *testing.T) {
	f := newFixture(&fakeGateway{usersErr: core.NewAPIError(http.StatusForbidden, "permission denied", nil)})

	_, err := f.ctrl.Users(context.Background())
	assert.Error(t, err)
	assert.Empty(t, f.notif.Notices())
}

func TestControllerUsersNotifiesOtherFailures(t *testing.T) {
	f := newFixture(&fakeGateway{usersErr: core.NewAPIError(http.StatusInternalServerError, "boom", nil)})

	_, err := f.ctrl.Users(context.Background())
	assert.Error(t, err)
	assert.Len(t, f.notif.ByLevel(notify.LevelError), 1)
}

func TestControllerFetchContent(t *testing.T) {
	ct := &content.Content{News: []content.Article{{ID: "1", Title: "Back to school"}}}
	f := newFixture(&fakeGateway{content: ct})

	f.ctrl.FetchContent(context.Background())
	assert.Equal(t, ct, f.ctrl.Content())
	assert.Empty(t, f.notif.Notices())
}

func TestControllerFetchContentFailureNotifiesOnly(t *testing.T) {
	f := newFixture(&fakeGateway{contentErr: errors.New("connection refused")})

	f.ctrl.FetchContent(context.Background())
	assert.Nil(t, f.ctrl.Content())
	assert.Len(t, f.notif.ByLevel(notify.LevelError), 1)
}
