package queue

// ReservationConfirmedEvent is emitted after a reservation row commits
// with its deposit paid.  Consumers must tolerate unknown fields;
// producers may add fields but never change existing meanings.
type ReservationConfirmedEvent struct {
	ReservationID  uint64  `json:"reservation_id"`
	UserID         uint64  `json:"user_id"`
	CarID          uint64  `json:"car_id"`
	CarMake        string  `json:"car_make"`
	CarModel       string  `json:"car_model"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	StartTime      string  `json:"start_time,omitempty"`
	EndTime        string  `json:"end_time,omitempty"`
	TotalPrice     float64 `json:"total_price"`
	DepositAmount  float64 `json:"deposit_amount"`
	RemainingToPay float64 `json:"remaining_to_pay"`
	ConfirmedAt    string  `json:"confirmed_at"` // RFC3339 UTC
}

// PaymentSettledEvent is emitted after a settlement payment is applied
// to a reservation's balance.
type PaymentSettledEvent struct {
	ReservationID  uint64  `json:"reservation_id"`
	UserID         uint64  `json:"user_id"`
	Amount         float64 `json:"amount"`
	CurrentPaid    float64 `json:"current_paid"`
	RemainingToPay float64 `json:"remaining_to_pay"`
	SettledAt      string  `json:"settled_at"` // RFC3339 UTC
}
