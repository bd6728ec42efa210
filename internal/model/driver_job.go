package model

import "time"

// DriverJob is a chauffeur job posted on the marketplace.  Taken is a
// plain flag flipped when a driver accepts the job; there is no
// matching or scheduling beyond that.
//
// Fields:
//  ID              – primary key identifier.
//  Title           – short job title.
//  Pay             – offered pay in major units.
//  Description     – free-text description.
//  Taken           – whether a driver has accepted the job.
//  AcceptedByName  – name of the accepting driver, if taken.
//  AcceptedByEmail – email of the accepting driver, if taken.
type DriverJob struct {
	ID              uint64  `json:"id"`
	Title           string  `json:"title"`
	Pay             float64 `json:"pay"`
	Description     string  `json:"description"`
	Taken           bool    `json:"taken"`
	AcceptedByName  string  `json:"acceptedByName,omitempty"`
	AcceptedByEmail string  `json:"acceptedByEmail,omitempty"`
}

// RequestedDriverJob is a customer's request for drivers, posted for
// admins to turn into marketplace jobs.
//
// Fields:
//  ID            – primary key identifier.
//  DriversNeeded – how many drivers the customer needs.
//  Budget        – customer's budget in major units.
//  DaysRequired  – length of the engagement in days.
//  ContactNumber – customer's phone number.
//  Description   – free-text description of the work.
//  CreatedAt     – creation timestamp.
type RequestedDriverJob struct {
	ID            uint64    `json:"id"`
	DriversNeeded int       `json:"driversNeeded"`
	Budget        float64   `json:"budget"`
	DaysRequired  int       `json:"daysRequired"`
	ContactNumber string    `json:"contactNumber"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}
