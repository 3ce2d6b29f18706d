package session

import "strconv"

// Accessibility preference keys. They live in the persistent scope next
// to the credential keys but survive Clear: logging out must not reset
// a user's display settings.
const (
	keyHighContrast = "highContrast"
	keyFontSize     = "fontSize"
)

const defaultFontSize = 100 // percent

type Preferences struct {
	HighContrast bool
	FontSize     int
}

func (s *Store) SavePreferences(prefs Preferences) error {
	if err := s.persistent.Set(keyHighContrast, strconv.FormatBool(prefs.HighContrast)); err != nil {
		return err
	}
	return s.persistent.Set(keyFontSize, strconv.Itoa(prefs.FontSize))
}

// LoadPreferences returns stored preferences, falling back to defaults
// for anything missing or unreadable.
func (s *Store) LoadPreferences() Preferences {
	prefs := Preferences{FontSize: defaultFontSize}
	if raw, err := s.persistent.Get(keyHighContrast); err == nil {
		if v, err := strconv.ParseBool(raw); err == nil {
			prefs.HighContrast = v
		}
	}
	if raw, err := s.persistent.Get(keyFontSize); err == nil {
		if v, err := strconv.Atoi(raw); err == nil {
			prefs.FontSize = v
		}
	}
	return prefs
}
