package booking

import "time"

// timeLayout is the wire format for the optional start/end times of a
// single-day booking.
const timeLayout = "15:04"

// Window is the absolute occupancy interval a reservation claims on a
// car.  Both endpoints are instants in UTC.  Multi-day bookings occupy
// whole days (00:00:00 through 23:59:59 of the last day), so two
// multi-day windows that merely touch on a boundary day still overlap.
type Window struct {
	Start time.Time
	End   time.Time
}

// Normalize converts the stored date/time fields of a reservation (or a
// proposal) into a Window.  When both startTime and endTime are given
// the booking is hourly: the window lies within startDate and spans the
// two clock times.  Otherwise the booking is multi-day: the window runs
// from the start of startDate to the last second of endDate, both days
// included.
func Normalize(startDate, endDate time.Time, startTime, endTime string) (Window, error) {
	if startTime != "" && endTime != "" {
		st, err := time.Parse(timeLayout, startTime)
		if err != nil {
			return Window{}, ErrInvalidWindow
		}
		et, err := time.Parse(timeLayout, endTime)
		if err != nil {
			return Window{}, ErrInvalidWindow
		}
		day := dayStart(startDate)
		return Window{
			Start: day.Add(time.Duration(st.Hour())*time.Hour + time.Duration(st.Minute())*time.Minute),
			End:   day.Add(time.Duration(et.Hour())*time.Hour + time.Duration(et.Minute())*time.Minute),
		}, nil
	}
	if endDate.Before(startDate) {
		return Window{}, ErrInvalidWindow
	}
	return Window{
		Start: dayStart(startDate),
		End:   dayStart(endDate).Add(24*time.Hour - time.Second),
	}, nil
}

// Overlaps reports whether two windows are not disjoint.  The test is
// symmetric: w starts before o ends and w ends after o starts.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// HasConflict reports whether the proposed window overlaps any of the
// existing windows.  A multi-day range is rejected as a whole when any
// day inside it is taken; partial acceptance is never offered.
func HasConflict(proposed Window, existing []Window) bool {
	for _, w := range existing {
		if proposed.Overlaps(w) {
			return true
		}
	}
	return false
}

// dayStart truncates t to midnight UTC.
func dayStart(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
