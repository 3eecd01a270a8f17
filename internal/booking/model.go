package booking

import "time"

type Booking struct {
	ID             int       `db:"id" json:"id"`
	ClientID       int       `db:"client_id" json:"client_id"`
	FitnessClassID int       `db:"fitness_class_id" json:"fitness_class_id"`
	BookedAt       time.Time `db:"booked_at" json:"booked_at"`
}

// BookingWithDetails is the denormalized row returned when listing a
// client's bookings.
type BookingWithDetails struct {
	ID             int       `db:"id" json:"id"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Email          string    `db:"email" json:"email_address"`
	ClassName      string    `db:"class_name" json:"fitness_class_name"`
	ScheduledAt    time.Time `db:"scheduled_at" json:"scheduled_at"`
	InstructorName string    `db:"instructor_name" json:"instructor_name"`
	BookedAt       time.Time `db:"booked_at" json:"booked_at"`
}

type CreateBookingRequest struct {
	ClassID   int    `json:"class_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email_address" binding:"required,email"`
}
