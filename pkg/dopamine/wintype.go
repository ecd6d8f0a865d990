package dopamine

import (
	"errors"
	"fmt"
)

// ErrUnknownWinType is returned by ParseWinType for names outside the catalog.
var ErrUnknownWinType = errors.New("unknown win type")

// WinType is a kind of micro-win.
type WinType string

// Win types.
const (
	CardProcessed WinType = "card_processed"
	EmailSent     WinType = "email_sent"
	CallCompleted WinType = "call_completed"
	DemoScheduled WinType = "demo_scheduled"
	FollowUpSet   WinType = "follow_up_set"
)

// AllWinTypes returns every win type in declaration order.
func AllWinTypes() []WinType {
	return []WinType{CardProcessed, EmailSent, CallCompleted, DemoScheduled, FollowUpSet}
}

// Valid reports whether t is one of the declared win types.
func (t WinType) Valid() bool {
	switch t {
	case CardProcessed, EmailSent, CallCompleted, DemoScheduled, FollowUpSet:
		return true
	}
	return false
}

// ParseWinType converts a name such as "email_sent" into a WinType.
func ParseWinType(s string) (WinType, error) {
	t := WinType(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownWinType, s)
	}
	return t, nil
}
