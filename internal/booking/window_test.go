package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNormalizeMultiDay(t *testing.T) {
	w, err := Normalize(date(2024, 2, 1), date(2024, 2, 5), "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 2, 5, 23, 59, 59, 0, time.UTC), w.End)
}

func TestNormalizeHourly(t *testing.T) {
	w, err := Normalize(date(2024, 2, 1), date(2024, 2, 1), "10:00", "16:30")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2024, 2, 1, 16, 30, 0, 0, time.UTC), w.End)
}

func TestNormalizeRejectsBadInput(t *testing.T) {
	_, err := Normalize(date(2024, 2, 5), date(2024, 2, 1), "", "")
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = Normalize(date(2024, 2, 1), date(2024, 2, 1), "ten", "16:00")
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestHasConflict(t *testing.T) {
	existing, err := Normalize(date(2024, 2, 1), date(2024, 2, 5), "", "")
	require.NoError(t, err)

	cases := []struct {
		name      string
		startDate time.Time
		endDate   time.Time
		startTime string
		endTime   string
		conflict  bool
	}{
		{"disjoint after", date(2024, 2, 6), date(2024, 2, 8), "", "", false},
		{"disjoint before", date(2024, 1, 25), date(2024, 1, 31), "", "", false},
		{"fully inside", date(2024, 2, 2), date(2024, 2, 3), "", "", true},
		{"covers existing", date(2024, 1, 30), date(2024, 2, 10), "", "", true},
		{"overlaps tail", date(2024, 2, 4), date(2024, 2, 8), "", "", true},
		// Whole-day occupancy: a range starting on the existing end
		// day still conflicts.
		{"boundary day touch", date(2024, 2, 5), date(2024, 2, 7), "", "", true},
		{"hourly inside reserved day", date(2024, 2, 3), date(2024, 2, 3), "10:00", "12:00", true},
		{"hourly on free day", date(2024, 2, 8), date(2024, 2, 8), "10:00", "12:00", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			proposed, err := Normalize(tc.startDate, tc.endDate, tc.startTime, tc.endTime)
			require.NoError(t, err)
			assert.Equal(t, tc.conflict, HasConflict(proposed, []Window{existing}))
		})
	}
}

func TestHasConflictBetweenHourlyWindows(t *testing.T) {
	morning, err := Normalize(date(2024, 3, 1), date(2024, 3, 1), "09:00", "12:00")
	require.NoError(t, err)
	afternoon, err := Normalize(date(2024, 3, 1), date(2024, 3, 1), "12:00", "15:00")
	require.NoError(t, err)
	overlapping, err := Normalize(date(2024, 3, 1), date(2024, 3, 1), "11:00", "13:00")
	require.NoError(t, err)

	// Back-to-back hourly slots do not occupy each other's time.
	assert.False(t, HasConflict(afternoon, []Window{morning}))
	assert.True(t, HasConflict(overlapping, []Window{morning}))
	assert.True(t, HasConflict(overlapping, []Window{afternoon}))
}

func TestHasConflictEmptyExisting(t *testing.T) {
	w, err := Normalize(date(2024, 2, 1), date(2024, 2, 5), "", "")
	require.NoError(t, err)
	assert.False(t, HasConflict(w, nil))
}
