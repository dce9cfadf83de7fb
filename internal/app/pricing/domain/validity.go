package domain

import (
	"fmt"
	"time"
)

// Validity is a closed time interval during which a price may be sold.
// A zero bound is open: a zero From means "since forever", a zero To means "until forever".
type Validity struct {
	from time.Time
	to   time.Time
}

// NewValidity creates a validity window. Both ends are inclusive.
func NewValidity(from, to time.Time) (*Validity, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, fmt.Errorf("%w: %s before %s", ErrInvalidValidity, to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	return &Validity{from: from, to: to}, nil
}

// Since creates a window open at the end.
func Since(from time.Time) *Validity {
	return &Validity{from: from}
}

// Until creates a window open at the start.
func Until(to time.Time) *Validity {
	return &Validity{to: to}
}

// From returns the start of the window; zero when unbounded.
func (v *Validity) From() time.Time {
	return v.from
}

// To returns the end of the window; zero when unbounded.
func (v *Validity) To() time.Time {
	return v.to
}

// Contains checks whether t falls inside the window.
// The window is INCLUSIVE on both ends:
//   - from: valid from this instant onwards (t >= from)
//   - to: valid through this instant (t <= to)
func (v *Validity) Contains(t time.Time) bool {
	if !v.from.IsZero() && t.Before(v.from) {
		return false
	}
	if !v.to.IsZero() && t.After(v.to) {
		return false
	}
	return true
}

// Equal compares two windows; nil equals nil.
func (v *Validity) Equal(other *Validity) bool {
	if v == nil || other == nil {
		return v == other
	}
	return v.from.Equal(other.from) && v.to.Equal(other.to)
}

func (v *Validity) String() string {
	if v == nil {
		return "always"
	}
	bound := func(t time.Time) string {
		if t.IsZero() {
			return "∞"
		}
		return t.Format(time.RFC3339)
	}
	return "[" + bound(v.from) + ", " + bound(v.to) + "]"
}
