package production

import "time"

// DateOf truncates t to its calendar date at midnight UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DispatchWindow is an inclusive range of dispatch dates
type DispatchWindow struct {
	Initial time.Time
	Final   time.Time
}

// NewDispatchWindow builds a window from two dates, rejecting initial > final
func NewDispatchWindow(initial, final time.Time) (DispatchWindow, error) {
	if initial.IsZero() || final.IsZero() {
		return DispatchWindow{}, validationError("Dispatch window requires both dates")
	}
	w := DispatchWindow{Initial: DateOf(initial), Final: DateOf(final)}
	if w.Initial.After(w.Final) {
		return DispatchWindow{}, consistencyError("Initial dispatch date %s is after final dispatch date %s",
			w.Initial.Format(time.DateOnly), w.Final.Format(time.DateOnly))
	}
	return w, nil
}

// SpanOf returns the smallest window holding every date; ok is false for no dates
func SpanOf(dates []time.Time) (DispatchWindow, bool) {
	if len(dates) == 0 {
		return DispatchWindow{}, false
	}
	w := DispatchWindow{Initial: DateOf(dates[0]), Final: DateOf(dates[0])}
	for _, d := range dates[1:] {
		d = DateOf(d)
		if d.Before(w.Initial) {
			w.Initial = d
		}
		if d.After(w.Final) {
			w.Final = d
		}
	}
	return w, true
}

// Contains reports whether the date falls inside the window
func (w DispatchWindow) Contains(d time.Time) bool {
	d = DateOf(d)
	return !d.Before(w.Initial) && !d.After(w.Final)
}

// Overlaps reports whether the two windows share at least one date
func (w DispatchWindow) Overlaps(other DispatchWindow) bool {
	return !w.Initial.After(other.Final) && !other.Initial.After(w.Final)
}

// Intersect returns [max(initials), min(finals)]; ok is false when the windows are disjoint
func (w DispatchWindow) Intersect(other DispatchWindow) (DispatchWindow, bool) {
	if !w.Overlaps(other) {
		return DispatchWindow{}, false
	}
	out := w
	if other.Initial.After(out.Initial) {
		out.Initial = other.Initial
	}
	if other.Final.Before(out.Final) {
		out.Final = other.Final
	}
	return out, true
}

// Equal compares both ends by date
func (w DispatchWindow) Equal(other DispatchWindow) bool {
	return w.Initial.Equal(other.Initial) && w.Final.Equal(other.Final)
}

// String formats the window as "2006-01-02..2006-01-02"
func (w DispatchWindow) String() string {
	return w.Initial.Format(time.DateOnly) + ".." + w.Final.Format(time.DateOnly)
}
