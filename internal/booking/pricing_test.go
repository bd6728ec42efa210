package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceMultiDay(t *testing.T) {
	cases := []struct {
		name  string
		rate  float64
		start time.Time
		end   time.Time
		total float64
	}{
		{"single day", 100, date(2024, 1, 10), date(2024, 1, 10), 100},
		{"three days inclusive", 100, date(2024, 1, 10), date(2024, 1, 12), 300},
		{"across month boundary", 80, date(2024, 1, 30), date(2024, 2, 2), 320},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			total, err := PriceMultiDay(tc.rate, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.total, total)
		})
	}

	_, err := PriceMultiDay(100, date(2024, 1, 12), date(2024, 1, 10))
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestPriceHourlyGeneral(t *testing.T) {
	total, err := PriceHourly(50, "", "10:00", "13:00")
	require.NoError(t, err)
	assert.Equal(t, 150.0, total)

	// Zero or negative durations are rejected regardless of reason.
	var durErr *InvalidDurationError
	_, err = PriceHourly(50, "", "13:00", "13:00")
	require.ErrorAs(t, err, &durErr)
	_, err = PriceHourly(50, "", "14:00", "13:00")
	require.ErrorAs(t, err, &durErr)
}

func TestPriceHourlyMusicVideo(t *testing.T) {
	total, err := PriceHourly(120, ReasonMusicVideo, "10:00", "12:00")
	require.NoError(t, err)
	assert.Equal(t, 240.0, total)

	var durErr *InvalidDurationError
	_, err = PriceHourly(120, ReasonMusicVideo, "10:00", "11:30")
	require.ErrorAs(t, err, &durErr)
	assert.Equal(t, 2, durErr.MinHours)
	assert.Equal(t, ReasonMusicVideo, durErr.Reason)
}

func TestPriceHourlyChauffeur(t *testing.T) {
	// The stored rate is a six-hour block, so six hours cost exactly
	// one block.
	total, err := PriceHourly(60, ReasonChauffeur, "10:00", "16:00")
	require.NoError(t, err)
	assert.Equal(t, 60.0, total)

	total, err = PriceHourly(60, ReasonChauffeur, "09:00", "18:00")
	require.NoError(t, err)
	assert.Equal(t, 90.0, total)

	var durErr *InvalidDurationError
	_, err = PriceHourly(60, ReasonChauffeur, "10:00", "13:00")
	require.ErrorAs(t, err, &durErr)
	assert.Equal(t, 6, durErr.MinHours)
}

func TestNewQuote(t *testing.T) {
	q := NewQuote(300)
	assert.Equal(t, 300.0, q.TotalPrice)
	assert.Equal(t, 90.0, q.DepositAmount)
	assert.Equal(t, 210.0, q.RemainingToPay)

	// Deposit rounds to the minor unit and the remainder absorbs the
	// rounding so the two always sum back to the total.
	q = NewQuote(99.99)
	assert.Equal(t, 30.0, q.DepositAmount)
	assert.Equal(t, 69.99, q.RemainingToPay)
	assert.InDelta(t, q.TotalPrice, q.DepositAmount+q.RemainingToPay, 0.001)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(9000), MinorUnits(90.00))
	assert.Equal(t, int64(3000), MinorUnits(29.997))
	assert.Equal(t, int64(1), MinorUnits(0.01))
}

func TestSettle(t *testing.T) {
	// Deposit then exact remainder.
	paid, remaining, err := Settle(300, 90, 210)
	require.NoError(t, err)
	assert.Equal(t, 300.0, paid)
	assert.Equal(t, 0.0, remaining)

	// Several partial settlements reach zero with no negative residue.
	paid, remaining = 90.0, 210.0
	for _, amount := range []float64{100, 50, 60} {
		paid, remaining, err = Settle(300, paid, amount)
		require.NoError(t, err)
	}
	assert.Equal(t, 300.0, paid)
	assert.Equal(t, 0.0, remaining)

	// Overpayment floors at zero rather than going negative.
	paid, remaining, err = Settle(300, 90, 250)
	require.NoError(t, err)
	assert.Equal(t, 340.0, paid)
	assert.Equal(t, 0.0, remaining)
}

func TestSettleRejectsInvalidAmounts(t *testing.T) {
	for _, amount := range []float64{0, -5} {
		_, _, err := Settle(300, 90, amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

// Scenario from the product brief: a 100/day car booked for three days
// costs 300 with a 90 deposit and 210 outstanding.
func TestMultiDayDepositScenario(t *testing.T) {
	total, err := PriceMultiDay(100, date(2024, 1, 10), date(2024, 1, 12))
	require.NoError(t, err)
	q := NewQuote(total)
	assert.Equal(t, 300.0, q.TotalPrice)
	assert.Equal(t, 90.0, q.DepositAmount)
	assert.Equal(t, 210.0, q.RemainingToPay)
}
