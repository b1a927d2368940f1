package reservation

import (
	"errors"
	"time"
)

var (
	ErrInvalidTimeWindow = errors.New("from date must be before to date")
	ErrMissingExpiryDate = errors.New("expiry date is required")
)

// TimeWindow is the half-closed interval a reservation claims on a
// connector. Planned reservations carry an explicit [from, to); reserve-now
// reservations only carry an expiry deadline and derive their window from it.
type TimeWindow struct {
	from time.Time
	to   time.Time
}

func NewTimeWindow(from, to time.Time) (TimeWindow, error) {
	if !from.Before(to) {
		return TimeWindow{}, ErrInvalidTimeWindow
	}
	return TimeWindow{from: from, to: to}, nil
}

func (w TimeWindow) From() time.Time {
	return w.from
}

func (w TimeWindow) To() time.Time {
	return w.to
}

// Overlaps reports true interval intersection. It covers all four
// relations: either window starting or ending inside the other, plus
// full containment in both directions. Touching endpoints do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.from.Before(other.to) && other.from.Before(w.to)
}

func (w TimeWindow) StartedBy(now time.Time) bool {
	return !now.Before(w.from)
}

func (w TimeWindow) EndedBy(now time.Time) bool {
	return now.After(w.to)
}
