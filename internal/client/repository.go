package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var ErrClientNotFound = errors.New("client not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Client, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, created_at
		FROM clients
		WHERE email = $1
	`

	var c Client
	err := r.db.GetContext(ctx, &c, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find client by email: %w", err)
	}

	return &c, nil
}

func (r *repository) GetOrCreate(ctx context.Context, q sqlx.ExtContext, firstName, lastName, email string) (*Client, error) {
	// DO UPDATE instead of DO NOTHING so RETURNING yields the existing row
	// on conflict. The existing name is kept; only the first booking sets it.
	query := `
		INSERT INTO clients (first_name, last_name, email, phone)
		VALUES ($1, $2, $3, '')
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, first_name, last_name, email, phone, created_at
	`

	var c Client
	if err := sqlx.GetContext(ctx, q, &c, query, firstName, lastName, email); err != nil {
		return nil, fmt.Errorf("get or create client: %w", err)
	}

	return &c, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1)`

	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, email); err != nil {
		return false, fmt.Errorf("check client email: %w", err)
	}

	return exists, nil
}
