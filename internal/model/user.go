package model

import "time"

// Roles assignable to a user.  The role is carried in the JWT and
// checked per request, never held as ambient client state.
const (
	RoleCustomer = "CUSTOMER"
	RoleDriver   = "DRIVER"
	RoleAdmin    = "ADMIN"
)

// User represents an application user as stored in the `users` table.
//
// Fields:
//  ID               – primary key identifier of the user.
//  FirstName        – given name.
//  LastName         – family name.
//  Email            – unique email address.
//  PhoneNumber      – contact number.
//  PasswordHash     – bcrypt hashed password.
//  Role             – CUSTOMER, DRIVER or ADMIN.
//  IsVerifiedDriver – set by an admin once a driver's documents check out.
//  CreatedAt        – timestamp of creation.
type User struct {
	ID               uint64    `json:"id"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Email            string    `json:"email"`
	PhoneNumber      string    `json:"phoneNumber"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	IsVerifiedDriver bool      `json:"isVerifiedDriver"`
	CreatedAt        time.Time `json:"createdAt"`
}

// RefreshToken models an entry in the `refresh_tokens` table.  Only the
// SHA-256 hash of the token value is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}
