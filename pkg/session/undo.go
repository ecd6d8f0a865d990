package session

import (
	"maps"
	"time"
)

// UndoStackSize is the default undo capacity.
const UndoStackSize = 5

// UndoableAction records a prospect change that can be reverted. BeforeState
// and AfterState are opaque to the session manager.
type UndoableAction struct {
	ID          string         `json:"id"`
	ActionType  string         `json:"action_type"`
	ProspectID  int64          `json:"prospect_id"`
	BeforeState map[string]any `json:"before_state"`
	AfterState  map[string]any `json:"after_state"`
	Timestamp   time.Time      `json:"timestamp"`
}

func (a UndoableAction) clone() UndoableAction {
	a.BeforeState = maps.Clone(a.BeforeState)
	a.AfterState = maps.Clone(a.AfterState)
	return a
}

// undoRing is a fixed-capacity LIFO. Pushing onto a full ring overwrites the
// oldest entry.
type undoRing struct {
	buf  []UndoableAction
	head int // next write position
	n    int
}

func newUndoRing(capacity int) *undoRing {
	return &undoRing{buf: make([]UndoableAction, capacity)}
}

func (r *undoRing) push(a UndoableAction) {
	r.buf[r.head] = a
	r.head = (r.head + 1) % len(r.buf)
	if r.n < len(r.buf) {
		r.n++
	}
}

func (r *undoRing) pop() (UndoableAction, bool) {
	if r.n == 0 {
		return UndoableAction{}, false
	}
	r.head = (r.head - 1 + len(r.buf)) % len(r.buf)
	a := r.buf[r.head]
	r.buf[r.head] = UndoableAction{}
	r.n--
	return a, true
}

func (r *undoRing) peek() (UndoableAction, bool) {
	if r.n == 0 {
		return UndoableAction{}, false
	}
	return r.buf[(r.head-1+len(r.buf))%len(r.buf)], true
}

func (r *undoRing) size() int { return r.n }

func (r *undoRing) reset() {
	clear(r.buf)
	r.head, r.n = 0, 0
}

// items returns the entries oldest first.
func (r *undoRing) items() []UndoableAction {
	out := make([]UndoableAction, 0, r.n)
	start := (r.head - r.n + len(r.buf)) % len(r.buf)
	for i := range r.n {
		out = append(out, r.buf[(start+i)%len(r.buf)])
	}
	return out
}
