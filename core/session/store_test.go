package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type memScope map[string]string

func (m memScope) Get(key string) (string, error) {
	value, ok := m[key]
	if !ok {
		return "", ErrNoValue
	}
	return value, nil
}

func (m memScope) Set(key, value string) error {
	m[key] = value
	return nil
}

func (m memScope) Delete(key string) error {
	delete(m, key)
	return nil
}

var anaProfile = Profile{ID: 1, Name: "Ana Silva", Email: "ana@santarita.edu.br", IsAdmin: true}

func newTestStore() (*Store, memScope, memScope) {
	persistent := memScope{}
	sess := memScope{}
	return NewStore(persistent, sess, 24*time.Hour), persistent, sess
}

func TestStoreSaveRememberMe(t *testing.T) {
	store, persistent, sess := newTestStore()

	err := store.Save(Credential{Token: "T", User: anaProfile, RememberMe: true})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	assert.Equal(t, "T", persistent[keyToken])
	assert.Contains(t, persistent, keyUser)
	assert.Contains(t, persistent, keyLoginTimestamp)
	assert.Empty(t, sess)

	cred, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, "T", cred.Token)
	assert.Equal(t, anaProfile, cred.User)
	assert.True(t, cred.RememberMe)
}

func TestStoreSaveSessionScope(t *testing.T) {
	store, persistent, sess := newTestStore()

	err := store.Save(Credential{Token: "T", User: anaProfile, RememberMe: false})
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	assert.Empty(t, persistent)
	assert.Equal(t, "T", sess[keyToken])
	assert.NotContains(t, sess, keyLoginTimestamp)

	cred, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, "T", cred.Token)
	assert.False(t, cred.RememberMe)
}

func TestStoreLoadChecksPersistentFirst(t *testing.T) {
	store, _, sess := newTestStore()
	if err := store.Save(Credential{Token: "session-token", User: anaProfile}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := store.Save(Credential{Token: "persistent-token", User: anaProfile, RememberMe: true}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	cred, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, "persistent-token", cred.Token)
	assert.Equal(t, "persistent-token", store.Token())
	assert.Equal(t, "session-token", sess[keyToken])
}

func TestStoreLoadEmpty(t *testing.T) {
	store, _, _ := newTestStore()
	cred, err := store.Load()
	assert.NoError(t, err)
	assert.Nil(t, cred)
	assert.Equal(t, "", store.Token())
}

func TestStoreExpiryBoundary(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		age     time.Duration
		expired bool
	}{
		{"one ms short of the TTL", 24*time.Hour - time.Millisecond, false},
		{"exactly the TTL", 24 * time.Hour, false},
		{"one ms past the TTL", 24*time.Hour + time.Millisecond, true},
		{"a day past the TTL", 48 * time.Hour, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _, _ := newTestStore()
			store.now = func() time.Time { return now }

			err := store.Save(Credential{
				Token:      "T",
				User:       anaProfile,
				RememberMe: true,
				LoginAt:    now.Add(-tt.age),
			})
			if err != nil {
				t.Fatalf("Save() failed: %v", err)
			}

			cred, err := store.Load()
			if tt.expired {
				assert.Nil(t, cred)
				assert.ErrorIs(t, err, ErrExpired)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, cred)
			}
		})
	}
}

func TestStoreSessionScopeNeverExpires(t *testing.T) {
	store, _, _ := newTestStore()
	store.now = func() time.Time { return time.Now().Add(100 * 24 * time.Hour) }

	if err := store.Save(Credential{Token: "T", User: anaProfile}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	cred, err := store.Load()
	assert.NoError(t, err)
	assert.NotNil(t, cred)
}

func TestStoreLoadCorrupt(t *testing.T) {
	t.Run("persistent token without user", func(t *testing.T) {
		store, persistent, _ := newTestStore()
		persistent[keyToken] = "T"
		persistent[keyLoginTimestamp] = "1715342400000"
		store.now = func() time.Time { return time.Unix(1715342400, 0) }

		cred, err := store.Load()
		assert.Nil(t, cred)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("persistent token without timestamp", func(t *testing.T) {
		store, persistent, _ := newTestStore()
		persistent[keyToken] = "T"

		cred, err := store.Load()
		assert.Nil(t, cred)
		assert.ErrorIs(t, err, ErrInvalid)
	})

	t.Run("session user unreadable", func(t *testing.T) {
		store, _, sess := newTestStore()
		sess[keyToken] = "T"
		sess[keyUser] = "{not json"

		cred, err := store.Load()
		assert.Nil(t, cred)
		assert.ErrorIs(t, err, ErrInvalid)
	})
}

func TestStoreClearIsIdempotent(t *testing.T) {
	store, persistent, sess := newTestStore()
	if err := store.Save(Credential{Token: "T", User: anaProfile, RememberMe: true}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	assert.NoError(t, store.Clear())
	assert.Empty(t, persistent)
	assert.Empty(t, sess)

	// clearing an empty store is a no-op, not an error
	assert.NoError(t, store.Clear())
	assert.Empty(t, persistent)
}

func TestStoreUpdateUserRewritesActiveScope(t *testing.T) {
	store, _, sess := newTestStore()
	if err := store.Save(Credential{Token: "T", User: anaProfile}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	updated := anaProfile
	updated.Name = "Ana Souza"
	if err := store.UpdateUser(updated); err != nil {
		t.Fatalf("UpdateUser() failed: %v", err)
	}

	assert.Contains(t, sess[keyUser], "Ana Souza")
	cred, err := store.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	assert.Equal(t, updated, cred.User)
}

func TestStorePreferencesSurviveClear(t *testing.T) {
	store, _, _ := newTestStore()

	prefs := store.LoadPreferences()
	assert.False(t, prefs.HighContrast)
	assert.Equal(t, defaultFontSize, prefs.FontSize)

	err := store.SavePreferences(Preferences{HighContrast: true, FontSize: 125})
	if err != nil {
		t.Fatalf("SavePreferences() failed: %v", err)
	}
	if err := store.Save(Credential{Token: "T", User: anaProfile, RememberMe: true}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	assert.NoError(t, store.Clear())

	prefs = store.LoadPreferences()
	assert.True(t, prefs.HighContrast)
	assert.Equal(t, 125, prefs.FontSize)
}
