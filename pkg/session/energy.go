package session

import "time"

// EnergyLevel is a time-of-day band used to pick task difficulty.
type EnergyLevel string

// Energy bands.
const (
	EnergyHigh   EnergyLevel = "high"   // before 14:00
	EnergyMedium EnergyLevel = "medium" // 14:00 to 15:59
	EnergyLow    EnergyLevel = "low"    // 16:00 onward
)

// EnergyAt classifies the wall-clock hour of t.
func EnergyAt(t time.Time) EnergyLevel {
	switch h := t.Hour(); {
	case h < 14:
		return EnergyHigh
	case h < 16:
		return EnergyMedium
	default:
		return EnergyLow
	}
}
