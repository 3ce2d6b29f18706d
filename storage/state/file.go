// Package state provides the client-side key/value scopes the session
// store persists credentials into.
package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/santarita/portal/core/session"
)

// FileScope stores keys in one flat JSON file. The persistent scope
// lives in the state dir; the session scope lives under the OS temp
// dir, which the platform clears between sessions.
type FileScope struct {
	mu   sync.Mutex
	path string
}

var _ session.Scope = (*FileScope)(nil)

func NewFileScope(path string) *FileScope {
	return &FileScope{path: path}
}

func (s *FileScope) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", session.ErrNoValue
	}
	return value, nil
}

func (s *FileScope) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *FileScope) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values, err := s.read()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.write(values)
}

func (s *FileScope) read() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.Wrapf(err, "reading %s", s.path)
	}
	values := map[string]string{}
	if err := json.Unmarshal(data, &values); err != nil {
		// an unreadable scope file behaves as an empty one; the next
		// write replaces it
		return map[string]string{}, nil
	}
	return values, nil
}

func (s *FileScope) write(values map[string]string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "marshaling state")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(s.path))
	}
	return errors.Wrapf(os.WriteFile(s.path, data, 0o600), "writing %s", s.path)
}
