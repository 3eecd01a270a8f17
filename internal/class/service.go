package class

import (
	"context"
	"errors"
	"time"

	"studiobook/internal/clock"
	"studiobook/internal/instructor"
	"studiobook/internal/metrics"
)

var (
	ErrUnknownInstructor = errors.New("instructor does not exist")
	ErrInvalidSlotCount  = errors.New("available slots must be between 1 and 100")
	ErrPastSchedule      = errors.New("class cannot be scheduled in the past")
	ErrInvalidClassName  = errors.New("unknown class name")
	ErrInvalidSchedule   = errors.New("scheduled time is not a valid timestamp")
)

const maxSlots = 100

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*FitnessClass, error)
	ListUpcomingClasses(ctx context.Context) ([]ClassWithInstructor, error)
}

type service struct {
	repo         Repository
	instructors  instructor.Repository
	clk          clock.Clock
	storeTimeout time.Duration
}

func NewService(repo Repository, instructors instructor.Repository, clk clock.Clock, storeTimeout time.Duration) Service {
	return &service{
		repo:         repo,
		instructors:  instructors,
		clk:          clk,
		storeTimeout: storeTimeout,
	}
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*FitnessClass, error) {
	className := ClassType(req.ClassName)
	if !className.Valid() {
		return nil, ErrInvalidClassName
	}

	if req.AvailableSlots < 1 || req.AvailableSlots > maxSlots {
		return nil, ErrInvalidSlotCount
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, ErrInvalidSchedule
	}

	if !scheduledAt.After(s.clk.Now()) {
		return nil, ErrPastSchedule
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	if _, err := s.instructors.GetByID(ctx, req.InstructorID); err != nil {
		if errors.Is(err, instructor.ErrInstructorNotFound) {
			return nil, ErrUnknownInstructor
		}
		return nil, err
	}

	// Friendly pre-check; the unique index is what actually enforces this
	// under concurrent creates.
	exists, err := s.repo.ExistsAt(ctx, className, scheduledAt)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateClass
	}

	fc, err := s.repo.CreateClass(ctx, className, req.InstructorID, req.AvailableSlots, scheduledAt)
	if err != nil {
		return nil, err
	}

	metrics.RecordClassCreated(string(fc.ClassName))
	return fc, nil
}

func (s *service) ListUpcomingClasses(ctx context.Context) ([]ClassWithInstructor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	classes, err := s.repo.ListUpcoming(ctx, s.clk.Now())
	if err != nil {
		return nil, err
	}
	if classes == nil {
		classes = []ClassWithInstructor{}
	}

	return classes, nil
}
