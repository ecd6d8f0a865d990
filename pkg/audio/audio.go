// Package audio gives every action a sound. Mute, volume and per-sound
// toggles are instance state; the backend is a pluggable Player.
package audio

import (
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Sound names an action cue.
type Sound string

// Sounds.
const (
	CardDone   Sound = "card_done"
	EmailSent  Sound = "email_sent"
	DemoSet    Sound = "demo_set"
	DealClosed Sound = "deal_closed"
	ErrorTone  Sound = "error"
	Streak     Sound = "streak"
)

// Profile is a tone description for backends that synthesize beeps.
type Profile struct {
	FrequencyHz int
	DurationMs  int
}

var profiles = map[Sound]Profile{
	CardDone:   {800, 100},  // soft ding
	EmailSent:  {600, 150},  // whoosh
	DemoSet:    {1000, 200}, // chime
	DealClosed: {1200, 400}, // celebration
	ErrorTone:  {300, 200},  // gentle buzz
	Streak:     {900, 300},  // level-up
}

var defaultProfile = Profile{800, 100}

// ProfileFor returns the tone for s, falling back to the card_done tone.
func ProfileFor(s Sound) Profile {
	if p, ok := profiles[s]; ok {
		return p
	}
	return defaultProfile
}

// AllSounds returns every sound in a stable order.
func AllSounds() []Sound {
	return []Sound{CardDone, EmailSent, DemoSet, DealClosed, ErrorTone, Streak}
}

// Player emits a sound at the given volume (0..1).
type Player func(s Sound, p Profile, volume float64) error

// BellPlayer returns a Player that writes a terminal bell to w. Louder cues
// (celebrations) ring twice.
func BellPlayer(w io.Writer) Player {
	return func(_ Sound, p Profile, volume float64) error {
		if volume == 0 {
			return nil
		}
		n := 1
		if p.DurationMs >= 300 {
			n = 2
		}
		if _, err := io.WriteString(w, strings.Repeat("\a", n)); err != nil {
			return fmt.Errorf("ring bell: %w", err)
		}
		return nil
	}
}

// Manager plays sounds subject to mute and per-sound toggles.
// Not safe for concurrent use.
type Manager struct {
	muted    bool
	volume   float64
	disabled map[Sound]bool
	player   Player
	logger   *zap.Logger
}

// New creates an unmuted Manager at full volume. A nil player logs sounds
// instead of emitting them.
func New(player Player, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		volume:   1.0,
		disabled: make(map[Sound]bool),
		player:   player,
		logger:   logger,
	}
}

// Play emits s. It returns false when muted, when s is disabled, when no
// backend is configured, or when the backend fails.
func (m *Manager) Play(s Sound) bool {
	if m.muted || m.disabled[s] {
		return false
	}
	p := ProfileFor(s)
	if m.player == nil {
		m.logger.Debug("sound logged (no audio backend)",
			zap.String("sound", string(s)),
			zap.Int("freq", p.FrequencyHz),
			zap.Int("duration", p.DurationMs),
		)
		return false
	}
	if err := m.player(s, p, m.volume); err != nil {
		m.logger.Debug("audio backend failed", zap.String("sound", string(s)), zap.Error(err))
		return false
	}
	return true
}

// SetMuted sets the global mute flag.
func (m *Manager) SetMuted(muted bool) { m.muted = muted }

// Muted reports the global mute flag.
func (m *Manager) Muted() bool { return m.muted }

// SetVolume sets master volume, clamped to [0, 1].
func (m *Manager) SetVolume(v float64) {
	m.volume = min(max(v, 0), 1)
}

// Volume returns master volume.
func (m *Manager) Volume() float64 { return m.volume }

// Disable silences one sound.
func (m *Manager) Disable(s Sound) { m.disabled[s] = true }

// Enable re-enables one sound.
func (m *Manager) Enable(s Sound) { delete(m.disabled, s) }

// Enabled reports whether s is enabled. Mute is not considered.
func (m *Manager) Enabled(s Sound) bool { return !m.disabled[s] }

// SetPlayer replaces the backend.
func (m *Manager) SetPlayer(p Player) { m.player = p }
