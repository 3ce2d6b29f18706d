package core

// Notifier is the single channel every user-visible notice funnels
// through. Implementations decide how notices are rendered.
type Notifier interface {
	Info(format string, args ...interface{})
	Success(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Confirmer asks the user to confirm a destructive or update action.
// At most one confirmation may be pending at a time; implementations
// reject a second concurrent request instead of dropping the first.
type Confirmer interface {
	Confirm(message string) (bool, error)
}

// Navigator tracks which page the user is on.
type Navigator interface {
	Navigate(page string, payload interface{})
}
