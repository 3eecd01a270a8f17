package booking

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"studiobook/internal/class"
	"studiobook/internal/client"
	"studiobook/internal/clock"
	"studiobook/internal/logger"
	"studiobook/internal/metrics"
)

var (
	ErrClassFull        = errors.New("no available slots for this class")
	ErrPastSchedule     = errors.New("class has already started")
	ErrInvalidName      = errors.New("name must contain letters only")
	ErrDuplicateBooking = errors.New("client already booked this class")
)

// Notifier sends the confirmation after a booking is committed.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, className string, scheduledAt time.Time) error
}

type Service interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	ListBookingsForEmail(ctx context.Context, email string) ([]BookingWithDetails, error)
}

type service struct {
	repo         Repository
	classes      class.Repository
	clients      client.Repository
	notifier     Notifier
	clk          clock.Clock
	storeTimeout time.Duration
}

func NewService(repo Repository, classes class.Repository, clients client.Repository, notifier Notifier, clk clock.Clock, storeTimeout time.Duration) Service {
	return &service{
		repo:         repo,
		classes:      classes,
		clients:      clients,
		notifier:     notifier,
		clk:          clk,
		storeTimeout: storeTimeout,
	}
}

func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	firstName := strings.TrimSpace(req.FirstName)
	lastName := strings.TrimSpace(req.LastName)
	if !validName(firstName) || !validName(lastName) {
		metrics.RecordBookingRejected("invalid_name")
		return nil, ErrInvalidName
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	now := s.clk.Now()

	fc, err := s.classes.GetByID(ctx, req.ClassID)
	if err != nil {
		metrics.RecordBookingRejected("class_not_found")
		return nil, err
	}
	if fc.ScheduledAt.Before(now) {
		metrics.RecordBookingRejected("past_schedule")
		return nil, ErrPastSchedule
	}
	if fc.AvailableSlots <= 0 {
		metrics.RecordBookingRejected("class_full")
		return nil, ErrClassFull
	}

	// Friendly pre-check; the unique constraint inside the transaction is
	// what actually prevents double booking under concurrency.
	booked, err := s.repo.EmailHasBookingForClass(ctx, email, req.ClassID)
	if err != nil {
		return nil, err
	}
	if booked {
		metrics.RecordBookingRejected("duplicate")
		return nil, ErrDuplicateBooking
	}

	b, err := s.repo.CreateBooking(ctx, req.ClassID, firstName, lastName, email, now)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassFull):
			metrics.RecordBookingRejected("class_full")
		case errors.Is(err, ErrDuplicateBooking):
			metrics.RecordBookingRejected("duplicate")
		case errors.Is(err, ErrPastSchedule):
			metrics.RecordBookingRejected("past_schedule")
		}
		return nil, err
	}

	metrics.RecordBookingCreated()

	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(ctx, email, firstName, string(fc.ClassName), fc.ScheduledAt); err != nil {
			// The booking is committed; a lost confirmation email must not
			// fail the request.
			logger.WithError(err).Error("failed to queue booking confirmation")
		}
	}

	return b, nil
}

func (s *service) ListBookingsForEmail(ctx context.Context, email string) ([]BookingWithDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	cl, err := s.clients.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}

	bookings, err := s.repo.GetBookingsForClient(ctx, cl.ID)
	if err != nil {
		return nil, err
	}
	if bookings == nil {
		bookings = []BookingWithDetails{}
	}

	return bookings, nil
}

// validName accepts non-empty strings made of letters only.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
