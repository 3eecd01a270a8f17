package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"studiobook/internal/class"
	"studiobook/internal/client"
)

type repository struct {
	db      *sqlx.DB
	clients client.Repository
}

func NewRepository(db *sqlx.DB, clients client.Repository) Repository {
	return &repository{
		db:      db,
		clients: clients,
	}
}

func (r *repository) CreateBooking(ctx context.Context, classID int, firstName, lastName, email string, now time.Time) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin booking tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the class row so concurrent bookings serialize on it.
	var fc struct {
		ID             int       `db:"id"`
		ScheduledAt    time.Time `db:"scheduled_at"`
		AvailableSlots int       `db:"available_slots"`
	}
	err = tx.GetContext(ctx, &fc, `
		SELECT id, scheduled_at, available_slots
		FROM fitness_classes
		WHERE id = $1
		FOR UPDATE
	`, classID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, class.ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock class row: %w", err)
	}

	if fc.ScheduledAt.Before(now) {
		return nil, ErrPastSchedule
	}

	// The available_slots > 0 guard is what keeps the count from going
	// negative even if the lock semantics ever change.
	res, err := tx.ExecContext(ctx, `
		UPDATE fitness_classes
		SET available_slots = available_slots - 1, updated_at = NOW()
		WHERE id = $1 AND available_slots > 0
	`, classID)
	if err != nil {
		return nil, fmt.Errorf("decrement slots: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("decrement slots: %w", err)
	}
	if affected == 0 {
		return nil, ErrClassFull
	}

	cl, err := r.clients.GetOrCreate(ctx, tx, firstName, lastName, email)
	if err != nil {
		return nil, err
	}

	var b Booking
	err = tx.GetContext(ctx, &b, `
		INSERT INTO bookings (client_id, fitness_class_id)
		VALUES ($1, $2)
		RETURNING id, client_id, fitness_class_id, booked_at
	`, cl.ID, classID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateBooking
		}
		return nil, fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit booking tx: %w", err)
	}

	return &b, nil
}

func (r *repository) EmailHasBookingForClass(ctx context.Context, email string, classID int) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1
			FROM bookings b
			JOIN clients c ON c.id = b.client_id
			WHERE c.email = $1 AND b.fitness_class_id = $2
		)
	`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email, classID); err != nil {
		return false, fmt.Errorf("check existing booking: %w", err)
	}

	return exists, nil
}

func (r *repository) GetBookingsForClient(ctx context.Context, clientID int) ([]BookingWithDetails, error) {
	query := `
		SELECT b.id, c.first_name, c.last_name, c.email,
		       fc.class_name, fc.scheduled_at, i.name AS instructor_name, b.booked_at
		FROM bookings b
		JOIN clients c ON c.id = b.client_id
		JOIN fitness_classes fc ON fc.id = b.fitness_class_id
		JOIN instructors i ON i.id = fc.instructor_id
		WHERE b.client_id = $1
		ORDER BY b.booked_at DESC
	`

	var bookings []BookingWithDetails
	if err := r.db.SelectContext(ctx, &bookings, query, clientID); err != nil {
		return nil, fmt.Errorf("list bookings for client: %w", err)
	}

	return bookings, nil
}
