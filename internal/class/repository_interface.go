package class

import (
	"context"
	"time"
)

type Repository interface {
	CreateClass(ctx context.Context, className ClassType, instructorID, availableSlots int, scheduledAt time.Time) (*FitnessClass, error)
	GetByID(ctx context.Context, id int) (*FitnessClass, error)
	ExistsAt(ctx context.Context, className ClassType, scheduledAt time.Time) (bool, error)
	// ListUpcoming returns classes scheduled at or after now, soonest first.
	ListUpcoming(ctx context.Context, now time.Time) ([]ClassWithInstructor, error)
}
