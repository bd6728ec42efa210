package booking

import (
	"math"
	"time"
)

// Reason tags a car with the purpose it is rented out for.  The reason
// selects the pricing mode and the minimum-duration rule for hourly
// bookings.  An empty reason means a general daily/hourly rental with
// no minimum.
type Reason string

const (
	ReasonMusicVideo Reason = "MusicVideo"
	ReasonChauffeur  Reason = "Chauffeur"
)

const (
	minMusicVideoHours  = 2
	minChauffeurHours   = 6
	chauffeurBlockHours = 6

	// depositFraction is the share of the total price collected at
	// booking time.
	depositFraction = 0.3
)

// PriceMultiDay prices a multi-day booking: the inclusive number of
// days between startDate and endDate times the car's base rate.  Both
// endpoint days count, so a booking from the 10th to the 12th is three
// days.
func PriceMultiDay(rate float64, startDate, endDate time.Time) (float64, error) {
	if endDate.Before(startDate) {
		return 0, ErrInvalidWindow
	}
	days := int(dayStart(endDate).Sub(dayStart(startDate)).Hours()/24) + 1
	return float64(days) * rate, nil
}

// PriceHourly prices a single-day booking between two HH:MM clock
// times.  The general rate is per hour.  MusicVideo bookings require at
// least two hours.  Chauffeur bookings require at least six hours and
// the stored rate represents a six-hour block, so the effective hourly
// rate is rate/6.
func PriceHourly(rate float64, reason Reason, startTime, endTime string) (float64, error) {
	st, err := time.Parse(timeLayout, startTime)
	if err != nil {
		return 0, ErrInvalidWindow
	}
	et, err := time.Parse(timeLayout, endTime)
	if err != nil {
		return 0, ErrInvalidWindow
	}
	hours := et.Sub(st).Hours()
	if hours <= 0 {
		return 0, &InvalidDurationError{Reason: reason}
	}
	switch reason {
	case ReasonMusicVideo:
		if hours < minMusicVideoHours {
			return 0, &InvalidDurationError{Reason: reason, MinHours: minMusicVideoHours}
		}
		return hours * rate, nil
	case ReasonChauffeur:
		if hours < minChauffeurHours {
			return 0, &InvalidDurationError{Reason: reason, MinHours: minChauffeurHours}
		}
		return hours * (rate / chauffeurBlockHours), nil
	default:
		return hours * rate, nil
	}
}

// Quote is the priced outcome of a booking proposal.  TotalPrice is
// fixed at creation and never recomputed from a changed rate.  The
// deposit is 30% of the total, rounded to the minor unit; the remainder
// is what the second settlement must cover.
type Quote struct {
	TotalPrice     float64 `json:"totalPrice"`
	DepositAmount  float64 `json:"depositAmount"`
	RemainingToPay float64 `json:"remainingToPay"`
}

// NewQuote derives the deposit split from a total price.  Rounding
// happens here, at the point the deposit and remainder are fixed; the
// total itself is kept unrounded until presentation.
func NewQuote(total float64) Quote {
	deposit := Round2(total * depositFraction)
	return Quote{
		TotalPrice:     total,
		DepositAmount:  deposit,
		RemainingToPay: Round2(total - deposit),
	}
}

// Round2 rounds a major-unit amount to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// MinorUnits converts a major-unit amount to integer minor units
// (pence).  The payment processor deals exclusively in minor units, so
// this conversion must happen exactly once per intent.
func MinorUnits(x float64) int64 {
	return int64(math.Round(x * 100))
}
