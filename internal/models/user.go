package models

// User mirrors the users table.
type User struct {
	UserID         int64  `db:"user_id"`
	Username       string `db:"username"`
	PasswordHash   string `db:"password_hash"`
	FirstName      string `db:"first_name"`
	LastName       string `db:"last_name"`
	BirthDate      string `db:"birth_date"`
	Identification string `db:"identification"`
	Role           string `db:"role"`
	LocationID     *int64 `db:"location_id"`
}
