package longevity

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// HoursPerYear converts impact hours into years of life expectancy.
const HoursPerYear = 8760

// DefaultLifeExpectancy seeds the ledger when no value is configured.
const DefaultLifeExpectancy = 78.5

// ErrInvalidInput marks values rejected before they reach shared state.
var ErrInvalidInput = errors.New("invalid input")

// State is a snapshot of the user's longevity figures.
type State struct {
	CurrentLifeExpectancy float64 `json:"currentLifeExpectancy"` // years
	TotalLifeExtension    float64 `json:"totalLifeExtension"`    // hours
}

// Ledger owns the running longevity state. All mutation goes through its
// mutex, so a single Ledger may be shared across request goroutines.
//
// Invariant: current == baseline + total/HoursPerYear.
type Ledger struct {
	mu       sync.Mutex
	baseline float64
	total    float64
}

// NewLedger starts a ledger at initialYears with no accumulated extension.
func NewLedger(initialYears float64) *Ledger {
	return &Ledger{baseline: initialYears}
}

// MaxExtensionHours bounds the running total in either direction (100 years).
const MaxExtensionHours = 100 * HoursPerYear

// Apply folds hours into the running totals and returns the new state.
// Input that is non-finite, or that would push the total past
// MaxExtensionHours, is rejected and leaves the state untouched.
func (l *Ledger) Apply(hours float64) (State, error) {
	if !finite(hours) {
		return l.Snapshot(), fmt.Errorf("%w: impact hours %v", ErrInvalidInput, hours)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	total := l.total + hours
	if !inRange(total) {
		return l.snapshotLocked(), fmt.Errorf("%w: life extension would reach %v hours", ErrInvalidInput, total)
	}
	l.total = total
	return l.snapshotLocked(), nil
}

// Override sets the current expectancy to years and adds extensionHours to
// the running total. The baseline is re-derived so the invariant holds.
func (l *Ledger) Override(years, extensionHours float64) (State, error) {
	if !finite(years) || !finite(extensionHours) {
		return l.Snapshot(), fmt.Errorf("%w: life expectancy %v, extension %v", ErrInvalidInput, years, extensionHours)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	total := l.total + extensionHours
	if !inRange(total) {
		return l.snapshotLocked(), fmt.Errorf("%w: life extension would reach %v hours", ErrInvalidInput, total)
	}
	baseline := years - total/HoursPerYear
	if !finite(baseline) {
		return l.snapshotLocked(), fmt.Errorf("%w: life expectancy %v", ErrInvalidInput, years)
	}
	l.total = total
	l.baseline = baseline
	return l.snapshotLocked(), nil
}

// Snapshot returns the current state.
func (l *Ledger) Snapshot() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshotLocked()
}

func (l *Ledger) snapshotLocked() State {
	return State{
		CurrentLifeExpectancy: l.baseline + l.total/HoursPerYear,
		TotalLifeExtension:    l.total,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func inRange(total float64) bool {
	return finite(total) && math.Abs(total) <= MaxExtensionHours
}
