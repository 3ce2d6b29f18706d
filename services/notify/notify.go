// Package notify is the single notification channel all user-visible
// notices funnel through, with info/success/warning/error severities.
package notify

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is one emitted notification.
type Notice struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

func newNotice(level Level, format string, args []interface{}) Notice {
	return Notice{
		ID:      uuid.New().String(),
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		At:      time.Now(),
	}
}
