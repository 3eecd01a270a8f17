package instructor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrInstructorNotFound = errors.New("instructor not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetOrCreateByName(ctx context.Context, name string) (*Instructor, error) {
	// DO UPDATE instead of DO NOTHING so RETURNING yields the existing row
	// on conflict. Creating the same instructor twice is idempotent.
	query := `
		INSERT INTO instructors (name)
		VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at
	`

	var ins Instructor
	if err := r.db.GetContext(ctx, &ins, query, name); err != nil {
		return nil, fmt.Errorf("get or create instructor: %w", err)
	}

	return &ins, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Instructor, error) {
	query := `
		SELECT id, name, created_at
		FROM instructors
		WHERE id = $1
	`

	var ins Instructor
	err := r.db.GetContext(ctx, &ins, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInstructorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get instructor by id: %w", err)
	}

	return &ins, nil
}
