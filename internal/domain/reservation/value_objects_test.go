//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"github.com/JulianHBuecher/ev-server/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, from, to time.Time) reservation.TimeWindow {
	t.Helper()
	w, err := reservation.NewTimeWindow(from, to)
	require.NoError(t, err)
	return w
}

func TestNewTimeWindow(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("valid window", func(t *testing.T) {
		w, err := reservation.NewTimeWindow(base, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, base, w.From())
		assert.Equal(t, base.Add(time.Hour), w.To())
	})

	t.Run("from equal to to", func(t *testing.T) {
		_, err := reservation.NewTimeWindow(base, base)
		assert.ErrorIs(t, err, reservation.ErrInvalidTimeWindow)
	})

	t.Run("from after to", func(t *testing.T) {
		_, err := reservation.NewTimeWindow(base.Add(time.Hour), base)
		assert.ErrorIs(t, err, reservation.ErrInvalidTimeWindow)
	})
}

func TestTimeWindowOverlaps(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	reference := mustWindow(t, at(2), at(6))

	cases := []struct {
		name  string
		other reservation.TimeWindow
		want  bool
	}{
		{"other starts inside", mustWindow(t, at(4), at(8)), true},
		{"other ends inside", mustWindow(t, at(0), at(4)), true},
		{"other wholly inside", mustWindow(t, at(3), at(5)), true},
		{"other wholly surrounds", mustWindow(t, at(0), at(8)), true},
		{"identical windows", mustWindow(t, at(2), at(6)), true},
		{"other entirely before", mustWindow(t, at(0), at(1)), false},
		{"other entirely after", mustWindow(t, at(7), at(9)), false},
		{"other ends exactly at start", mustWindow(t, at(0), at(2)), false},
		{"other starts exactly at end", mustWindow(t, at(6), at(8)), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reference.Overlaps(tc.other))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, tc.other.Overlaps(reference))
		})
	}
}

func TestTimeWindowBoundaries(t *testing.T) {
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	w := mustWindow(t, base, base.Add(time.Hour))

	assert.False(t, w.StartedBy(base.Add(-time.Second)))
	assert.True(t, w.StartedBy(base))
	assert.True(t, w.StartedBy(base.Add(time.Minute)))

	assert.False(t, w.EndedBy(base.Add(time.Hour)))
	assert.True(t, w.EndedBy(base.Add(time.Hour+time.Second)))
}
