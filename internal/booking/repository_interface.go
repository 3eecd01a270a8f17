package booking

import (
	"context"
	"time"
)

type Repository interface {
	// CreateBooking runs the whole reservation in one transaction: it
	// locks the class row, takes a slot, upserts the client, and inserts
	// the booking. The slot count never goes below zero.
	CreateBooking(ctx context.Context, classID int, firstName, lastName, email string, now time.Time) (*Booking, error)
	EmailHasBookingForClass(ctx context.Context, email string, classID int) (bool, error)
	GetBookingsForClient(ctx context.Context, clientID int) ([]BookingWithDetails, error)
}
