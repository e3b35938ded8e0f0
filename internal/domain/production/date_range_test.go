package production

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.March, d, 0, 0, 0, 0, time.UTC)
}

func window(t *testing.T, from, to int) DispatchWindow {
	t.Helper()
	w, err := NewDispatchWindow(day(from), day(to))
	require.NoError(t, err)
	return w
}

func TestNewDispatchWindow(t *testing.T) {
	t.Run("truncates to dates", func(t *testing.T) {
		w, err := NewDispatchWindow(day(7).Add(13*time.Hour), day(9).Add(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, day(7), w.Initial)
		assert.Equal(t, day(9), w.Final)
	})

	t.Run("single day", func(t *testing.T) {
		w, err := NewDispatchWindow(day(8), day(8))
		require.NoError(t, err)
		assert.True(t, w.Contains(day(8)))
	})

	t.Run("initial after final", func(t *testing.T) {
		_, err := NewDispatchWindow(day(9), day(8))
		assert.True(t, errors.Is(err, ErrConsistencyViolation))
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := NewDispatchWindow(time.Time{}, day(8))
		assert.True(t, errors.Is(err, ErrValidation))
	})
}

func TestDispatchWindow_Intersect(t *testing.T) {
	tests := []struct {
		name     string
		a, b     [2]int
		ok       bool
		from, to int
	}{
		{"partial overlap", [2]int{7, 8}, [2]int{8, 9}, true, 8, 8},
		{"contained", [2]int{5, 12}, [2]int{7, 8}, true, 7, 8},
		{"identical", [2]int{7, 9}, [2]int{7, 9}, true, 7, 9},
		{"disjoint", [2]int{1, 3}, [2]int{4, 6}, false, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := window(t, tt.a[0], tt.a[1])
			b := window(t, tt.b[0], tt.b[1])
			got, ok := a.Intersect(b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ok, a.Overlaps(b))
			if tt.ok {
				assert.Equal(t, day(tt.from), got.Initial)
				assert.Equal(t, day(tt.to), got.Final)
			}
		})
	}
}

func TestSpanOf(t *testing.T) {
	_, ok := SpanOf(nil)
	assert.False(t, ok)

	w, ok := SpanOf([]time.Time{day(9), day(7), day(8).Add(5 * time.Hour)})
	require.True(t, ok)
	assert.Equal(t, "2025-03-07..2025-03-09", w.String())
}
