package client

import "time"

// Client is the person making bookings, identified uniquely by email.
// Clients are never created directly; the booking engine upserts them.
type Client struct {
	ID        int       `db:"id" json:"id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Email     string    `db:"email" json:"email_address"`
	Phone     string    `db:"phone" json:"phone_number"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
