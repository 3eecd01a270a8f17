package client

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*Client, error)
	// GetOrCreate upserts a client by email. It takes an ExtContext so the
	// booking transaction can run it against its own tx.
	GetOrCreate(ctx context.Context, q sqlx.ExtContext, firstName, lastName, email string) (*Client, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
