package instructor

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"studiobook/internal/metrics"
)

var ErrInvalidName = errors.New("invalid instructor name")

const maxNameLength = 100

type Service interface {
	CreateInstructor(ctx context.Context, req CreateInstructorRequest) (*Instructor, error)
	GetInstructorByID(ctx context.Context, id int) (*Instructor, error)
}

type service struct {
	repo         Repository
	storeTimeout time.Duration
}

func NewService(repo Repository, storeTimeout time.Duration) Service {
	return &service{
		repo:         repo,
		storeTimeout: storeTimeout,
	}
}

func (s *service) CreateInstructor(ctx context.Context, req CreateInstructorRequest) (*Instructor, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return nil, ErrInvalidName
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	ins, err := s.repo.GetOrCreateByName(ctx, name)
	if err != nil {
		return nil, err
	}

	metrics.RecordInstructorCreated()
	return ins, nil
}

func (s *service) GetInstructorByID(ctx context.Context, id int) (*Instructor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	return s.repo.GetByID(ctx, id)
}
