package testutil

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/santarita/portal/core"
)

// NopLogger discards everything; tests use it where a Logger is
// required but irrelevant.
type NopLogger struct{}

var _ core.Logger = NopLogger{}

func (NopLogger) Enable(bool)                  {}
func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

// TestConfig returns a Config pointing the client at baseURL.
func TestConfig(baseURL string) *core.Config {
	conf := &core.Config{
		Env:      "TEST",
		Debug:    true,
		TestMode: true,
		AppName:  "Portal Santa Rita",
		Build:    "test",
	}
	conf.API.BaseURL = baseURL + "/api"
	conf.API.Timeout = 5 * time.Second
	conf.Session.TTL = 24 * time.Hour
	return conf
}

// StartPortalAPI serves a fresh fake backend for the duration of the
// test and returns it with a matching Config.
func StartPortalAPI(t *testing.T) (*PortalAPI, *core.Config) {
	t.Helper()
	backend := NewPortalAPI()
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return backend, TestConfig(srv.URL)
}

// CreateUser adds an account to the fake backend or fails the test.
func CreateUser(t *testing.T, backend *PortalAPI, name, email, pwd string, isAdmin, isSecretary bool) User {
	t.Helper()
	usr, err := backend.AddUser(name, email, pwd, isAdmin, isSecretary)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
