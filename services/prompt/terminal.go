package prompt

import (
	"github.com/manifoldco/promptui"

	"github.com/santarita/portal/core"
)

// Terminal asks for confirmation interactively. The prompt blocks its
// caller until answered; there is no timeout.
type Terminal struct {
	slot slot
}

var _ core.Confirmer = (*Terminal)(nil)

func NewTerminal() *Terminal { return &Terminal{} }

func (t *Terminal) Confirm(message string) (bool, error) {
	if err := t.slot.acquire(); err != nil {
		return false, err
	}
	defer t.slot.release()

	p := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}
	if _, err := p.Run(); err != nil {
		if err == promptui.ErrAbort {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
