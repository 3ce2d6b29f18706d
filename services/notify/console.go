package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/santarita/portal/core"
)

// Console renders notices to a terminal, color-coded by severity when
// the output is a tty.
type Console struct {
	out io.Writer

	info    *color.Color
	success *color.Color
	warning *color.Color
	err     *color.Color
}

var _ core.Notifier = (*Console)(nil)

func NewConsole() *Console {
	c := &Console{
		out:     os.Stdout,
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		err:     color.New(color.FgRed),
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	return c
}

func (c *Console) emit(paint *color.Color, notice Notice) {
	fmt.Fprintf(c.out, "%s %s\n", paint.Sprintf("[%s]", notice.Level), notice.Message)
}

func (c *Console) Info(format string, args ...interface{}) {
	c.emit(c.info, newNotice(LevelInfo, format, args))
}

func (c *Console) Success(format string, args ...interface{}) {
	c.emit(c.success, newNotice(LevelSuccess, format, args))
}

func (c *Console) Warn(format string, args ...interface{}) {
	c.emit(c.warning, newNotice(LevelWarning, format, args))
}

func (c *Console) Error(format string, args ...interface{}) {
	c.emit(c.err, newNotice(LevelError, format, args))
}
