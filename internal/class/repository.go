package class

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrClassNotFound  = errors.New("fitness class not found")
	ErrDuplicateClass = errors.New("class already scheduled at this time")
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateClass(ctx context.Context, className ClassType, instructorID, availableSlots int, scheduledAt time.Time) (*FitnessClass, error) {
	query := `
		INSERT INTO fitness_classes (class_name, instructor_id, available_slots, scheduled_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, class_name, instructor_id, available_slots, scheduled_at, created_at, updated_at
	`

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, className, instructorID, availableSlots, scheduledAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateClass
		}
		return nil, fmt.Errorf("create class: %w", err)
	}

	return &fc, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*FitnessClass, error) {
	query := `
		SELECT id, class_name, instructor_id, available_slots, scheduled_at, created_at, updated_at
		FROM fitness_classes
		WHERE id = $1
	`

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get class by id: %w", err)
	}

	return &fc, nil
}

func (r *repository) ExistsAt(ctx context.Context, className ClassType, scheduledAt time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM fitness_classes WHERE class_name = $1 AND scheduled_at = $2)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, className, scheduledAt); err != nil {
		return false, fmt.Errorf("check class schedule: %w", err)
	}

	return exists, nil
}

func (r *repository) ListUpcoming(ctx context.Context, now time.Time) ([]ClassWithInstructor, error) {
	query := `
		SELECT c.id, c.class_name, c.instructor_id, c.available_slots, c.scheduled_at,
		       c.created_at, c.updated_at, i.name AS instructor_name
		FROM fitness_classes c
		JOIN instructors i ON i.id = c.instructor_id
		WHERE c.scheduled_at >= $1
		ORDER BY c.scheduled_at ASC
	`

	var classes []ClassWithInstructor
	if err := r.db.SelectContext(ctx, &classes, query, now); err != nil {
		return nil, fmt.Errorf("list upcoming classes: %w", err)
	}

	return classes, nil
}
