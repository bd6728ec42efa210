package model

// Car represents a rentable vehicle as stored in the `cars` table.
// Price is the base rate in major currency units: per day for
// multi-day bookings, per hour for general hourly bookings, and per
// six-hour block for chauffeur cars.  A car's rate is read at pricing
// time only; changing it later never touches existing reservations.
//
// Fields:
//  ID          – primary key identifier of the car.
//  Make        – manufacturer (e.g. Bentley).
//  Model       – model name.
//  Year        – model year.
//  Description – free-text marketing description.
//  Price       – base rate in major units (see above).
//  Images      – URLs of the car's photos; storage is external.
//  Reason      – booking purpose tag: MusicVideo, Chauffeur or empty
//                for a general rental.
type Car struct {
	ID          uint64   `json:"id"`
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Reason      string   `json:"carForReason"`
}
