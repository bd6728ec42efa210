package booking

import "math"

// Settle applies a payment against a reservation's balance and returns
// the new currentPaid and remainingToPay values.  currentPaid only ever
// grows; remainingToPay is floored at zero so overpayment never leaves
// a negative residue.  The invariant currentPaid + remainingToPay ==
// totalPrice holds after every settlement until the floor kicks in.
func Settle(totalPrice, currentPaid, amount float64) (float64, float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, 0, ErrInvalidAmount
	}
	paid := Round2(currentPaid + amount)
	remaining := Round2(totalPrice - paid)
	if remaining < 0 {
		remaining = 0
	}
	return paid, remaining, nil
}
