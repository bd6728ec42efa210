package model

import "time"

// Reservation records a user's booking of a car over a window of time.
// The window is either a date range (multi-day) or a single date plus a
// start/end clock time (hourly); StartTime and EndTime are nil for
// multi-day bookings.  The car's make and model are denormalised onto
// the record so reservation lists render without a join against cars
// that may since have been deleted.
//
// Money invariant: CurrentPaid + RemainingToPay == TotalPrice after
// every settlement, with RemainingToPay floored at zero.  TotalPrice is
// fixed when the record is created and is never recomputed.
//
// Fields:
//  ID             – primary key identifier.
//  UserID         – user who made the reservation.
//  CarID          – reserved car.
//  CarMake        – car make at booking time.
//  CarModel       – car model at booking time.
//  StartDate      – first day of the window (or the single day, hourly).
//  EndDate        – last day of the window, inclusive.
//  StartTime      – "HH:MM" start clock time (hourly bookings only).
//  EndTime        – "HH:MM" end clock time (hourly bookings only).
//  TotalPrice     – total price in major units, fixed at creation.
//  CurrentPaid    – amount paid so far; starts at the deposit.
//  RemainingToPay – TotalPrice − CurrentPaid, never negative.
//  CreatedAt      – creation timestamp.
type Reservation struct {
	ID             uint64    `json:"id"`
	UserID         uint64    `json:"user"`
	CarID          uint64    `json:"carId"`
	CarMake        string    `json:"carMake"`
	CarModel       string    `json:"carModel"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	StartTime      *string   `json:"startTime,omitempty"`
	EndTime        *string   `json:"endTime,omitempty"`
	TotalPrice     float64   `json:"totalPrice"`
	CurrentPaid    float64   `json:"currentPaid"`
	RemainingToPay float64   `json:"remainingToPay"`
	CreatedAt      time.Time `json:"createdAt"`
}
