package session

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Storage keys, one parallel set per scope. loginTimestamp is only ever
// written to the persistent scope.
const (
	keyToken          = "token"
	keyUser           = "user"
	keyLoginTimestamp = "loginTimestamp"
)

var (
	// ErrNoValue is returned by a Scope when a key holds nothing.
	ErrNoValue = errors.New("no value")

	// ErrExpired reports a persistent credential past its TTL.
	ErrExpired = errors.New("session expired")

	// ErrInvalid reports a token whose paired user record is missing
	// or unreadable.
	ErrInvalid = errors.New("invalid session")
)

// Scope is one of the two client-side credential stores: the persistent
// scope survives restarts, the session scope ends with the session.
type Scope interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store persists credentials across the two scopes. At most one scope
// holds a credential at a time; Save never writes to both.
type Store struct {
	persistent Scope
	session    Scope
	ttl        time.Duration
	now        func() time.Time
}

func NewStore(persistent, session Scope, ttl time.Duration) *Store {
	return &Store{
		persistent: persistent,
		session:    session,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Save writes the credential into the persistent scope when RememberMe
// is set (stamping the login timestamp), otherwise into the session
// scope. Exactly one scope is written per login.
func (s *Store) Save(cred Credential) error {
	scope := s.session
	if cred.RememberMe {
		scope = s.persistent
	}
	usr, err := json.Marshal(cred.User)
	if err != nil {
		return errors.Wrap(err, "marshaling user")
	}
	if err := scope.Set(keyToken, cred.Token); err != nil {
		return errors.Wrap(err, "storing token")
	}
	if err := scope.Set(keyUser, string(usr)); err != nil {
		return errors.Wrap(err, "storing user")
	}
	if cred.RememberMe {
		ts := cred.LoginAt
		if ts.IsZero() {
			ts = s.now()
		}
		if err := scope.Set(keyLoginTimestamp, strconv.FormatInt(ts.UnixNano()/int64(time.Millisecond), 10)); err != nil {
			return errors.Wrap(err, "storing login timestamp")
		}
	}
	return nil
}

// Load checks the persistent scope first, then the session scope.
// It returns (nil, nil) when neither scope holds a token, ErrExpired
// when the persistent credential is past its TTL, and ErrInvalid when
// a token exists without a readable user record.
func (s *Store) Load() (*Credential, error) {
	if token, err := s.persistent.Get(keyToken); err == nil {
		return s.loadPersistent(token)
	} else if !errors.Is(err, ErrNoValue) {
		return nil, err
	}

	if token, err := s.session.Get(keyToken); err == nil {
		usr, err := s.loadUser(s.session)
		if err != nil {
			return nil, err
		}
		return &Credential{Token: token, User: usr}, nil
	} else if !errors.Is(err, ErrNoValue) {
		return nil, err
	}
	return nil, nil
}

func (s *Store) loadPersistent(token string) (*Credential, error) {
	raw, err := s.persistent.Get(keyLoginTimestamp)
	if err != nil {
		return nil, ErrInvalid
	}
	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, ErrInvalid
	}
	loginAt := time.Unix(0, millis*int64(time.Millisecond))
	if s.now().Sub(loginAt) > s.ttl {
		return nil, ErrExpired
	}
	usr, err := s.loadUser(s.persistent)
	if err != nil {
		return nil, err
	}
	return &Credential{Token: token, User: usr, RememberMe: true, LoginAt: loginAt}, nil
}

func (s *Store) loadUser(scope Scope) (Profile, error) {
	raw, err := scope.Get(keyUser)
	if err != nil {
		return Profile{}, ErrInvalid
	}
	var usr Profile
	if err := json.Unmarshal([]byte(raw), &usr); err != nil {
		return Profile{}, ErrInvalid
	}
	return usr, nil
}

// Clear removes the credential keys from both scopes unconditionally.
// Clearing an already-empty store is a no-op.
func (s *Store) Clear() error {
	for _, scope := range []Scope{s.persistent, s.session} {
		for _, key := range []string{keyToken, keyUser, keyLoginTimestamp} {
			if err := scope.Delete(key); err != nil {
				return errors.Wrapf(err, "clearing %q", key)
			}
		}
	}
	return nil
}

// UpdateUser rewrites the stored user record in whichever scope holds
// the token, keeping storage in step after a profile update.
func (s *Store) UpdateUser(usr Profile) error {
	raw, err := json.Marshal(usr)
	if err != nil {
		return errors.Wrap(err, "marshaling user")
	}
	for _, scope := range []Scope{s.persistent, s.session} {
		if _, err := scope.Get(keyToken); err == nil {
			return scope.Set(keyUser, string(raw))
		}
	}
	return nil
}

// Token returns the bearer token, checking the persistent scope first,
// then the session scope. It returns "" when neither holds one.
func (s *Store) Token() string {
	if token, err := s.persistent.Get(keyToken); err == nil {
		return token
	}
	if token, err := s.session.Get(keyToken); err == nil {
		return token
	}
	return ""
}
