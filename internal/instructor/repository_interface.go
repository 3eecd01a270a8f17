package instructor

import "context"

type Repository interface {
	GetOrCreateByName(ctx context.Context, name string) (*Instructor, error)
	GetByID(ctx context.Context, id int) (*Instructor, error)
}
