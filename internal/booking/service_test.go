package booking

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"studiobook/internal/class"
	"studiobook/internal/client"
	"studiobook/internal/clock"
	"studiobook/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) CreateBooking(ctx context.Context, classID int, firstName, lastName, email string, now time.Time) (*Booking, error) {
	args := m.Called(ctx, classID, firstName, lastName, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *mockRepository) EmailHasBookingForClass(ctx context.Context, email string, classID int) (bool, error) {
	args := m.Called(ctx, email, classID)
	return args.Bool(0), args.Error(1)
}

func (m *mockRepository) GetBookingsForClient(ctx context.Context, clientID int) ([]BookingWithDetails, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]BookingWithDetails), args.Error(1)
}

type mockClassRepository struct {
	mock.Mock
}

func (m *mockClassRepository) CreateClass(ctx context.Context, className class.ClassType, instructorID, availableSlots int, scheduledAt time.Time) (*class.FitnessClass, error) {
	args := m.Called(ctx, className, instructorID, availableSlots, scheduledAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.FitnessClass), args.Error(1)
}

func (m *mockClassRepository) GetByID(ctx context.Context, id int) (*class.FitnessClass, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*class.FitnessClass), args.Error(1)
}

func (m *mockClassRepository) ExistsAt(ctx context.Context, className class.ClassType, scheduledAt time.Time) (bool, error) {
	args := m.Called(ctx, className, scheduledAt)
	return args.Bool(0), args.Error(1)
}

func (m *mockClassRepository) ListUpcoming(ctx context.Context, now time.Time) ([]class.ClassWithInstructor, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]class.ClassWithInstructor), args.Error(1)
}

type mockClientRepository struct {
	mock.Mock
}

func (m *mockClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepository) GetOrCreate(ctx context.Context, q sqlx.ExtContext, firstName, lastName, email string) (*client.Client, error) {
	args := m.Called(ctx, q, firstName, lastName, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*client.Client), args.Error(1)
}

func (m *mockClientRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SendBookingConfirmation(ctx context.Context, to, name, className string, scheduledAt time.Time) error {
	args := m.Called(ctx, to, name, className, scheduledAt)
	return args.Error(0)
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type testDeps struct {
	repo     *mockRepository
	classes  *mockClassRepository
	clients  *mockClientRepository
	notifier *mockNotifier
}

func newTestService() (Service, testDeps) {
	deps := testDeps{
		repo:     new(mockRepository),
		classes:  new(mockClassRepository),
		clients:  new(mockClientRepository),
		notifier: new(mockNotifier),
	}
	svc := NewService(deps.repo, deps.classes, deps.clients, deps.notifier, clock.Fixed(testNow), 5*time.Second)
	return svc, deps
}

func validRequest() CreateBookingRequest {
	return CreateBookingRequest{
		ClassID:   1,
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@example.com",
	}
}

func futureClass() *class.FitnessClass {
	return &class.FitnessClass{
		ID:             1,
		ClassName:      class.TypeYoga,
		AvailableSlots: 5,
		ScheduledAt:    testNow.Add(24 * time.Hour),
	}
}

func TestCreateBooking(t *testing.T) {
	svc, deps := newTestService()

	fc := futureClass()
	deps.classes.On("GetByID", mock.Anything, 1).Return(fc, nil)
	deps.repo.On("EmailHasBookingForClass", mock.Anything, "john@example.com", 1).Return(false, nil)
	deps.repo.On("CreateBooking", mock.Anything, 1, "John", "Doe", "john@example.com", testNow).
		Return(&Booking{ID: 10, ClientID: 2, FitnessClassID: 1, BookedAt: testNow}, nil)
	deps.notifier.On("SendBookingConfirmation", mock.Anything, "john@example.com", "John", "YOGA", fc.ScheduledAt).
		Return(nil)

	b, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 10, b.ID)
	deps.repo.AssertExpectations(t)
	deps.notifier.AssertExpectations(t)
}

func TestCreateBookingNormalizesEmail(t *testing.T) {
	svc, deps := newTestService()

	req := validRequest()
	req.Email = "  John@Example.COM "

	fc := futureClass()
	deps.classes.On("GetByID", mock.Anything, 1).Return(fc, nil)
	deps.repo.On("EmailHasBookingForClass", mock.Anything, "john@example.com", 1).Return(false, nil)
	deps.repo.On("CreateBooking", mock.Anything, 1, "John", "Doe", "john@example.com", testNow).
		Return(&Booking{ID: 10}, nil)
	deps.notifier.On("SendBookingConfirmation", mock.Anything, "john@example.com", "John", "YOGA", fc.ScheduledAt).
		Return(nil)

	_, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	deps.repo.AssertExpectations(t)
}

func TestCreateBookingInvalidName(t *testing.T) {
	svc, deps := newTestService()

	cases := []struct {
		name  string
		first string
		last  string
	}{
		{"digits in first name", "J0hn", "Doe"},
		{"empty first name", "", "Doe"},
		{"whitespace first name", "   ", "Doe"},
		{"symbols in last name", "John", "Doe!"},
		{"hyphenated first name", "Mary-Jane", "Doe"},
		{"apostrophe in last name", "John", "O'Brien"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.FirstName = tc.first
			req.LastName = tc.last

			_, err := svc.CreateBooking(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}

	deps.repo.AssertNotCalled(t, "CreateBooking")
}

func TestCreateBookingAllowsUnicodeLetters(t *testing.T) {
	svc, deps := newTestService()

	req := validRequest()
	req.FirstName = "Søren"
	req.LastName = "Müller"

	fc := futureClass()
	deps.classes.On("GetByID", mock.Anything, 1).Return(fc, nil)
	deps.repo.On("EmailHasBookingForClass", mock.Anything, "john@example.com", 1).Return(false, nil)
	deps.repo.On("CreateBooking", mock.Anything, 1, "Søren", "Müller", "john@example.com", testNow).
		Return(&Booking{ID: 11}, nil)
	deps.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil)

	_, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
}

func TestCreateBookingClassNotFound(t *testing.T) {
	svc, deps := newTestService()

	deps.classes.On("GetByID", mock.Anything, 1).Return(nil, class.ErrClassNotFound)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, class.ErrClassNotFound)
	deps.repo.AssertNotCalled(t, "CreateBooking")
}

func TestCreateBookingPastClass(t *testing.T) {
	svc, deps := newTestService()

	fc := futureClass()
	fc.ScheduledAt = testNow.Add(-time.Hour)
	deps.classes.On("GetByID", mock.Anything, 1).Return(fc, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPastSchedule)
	deps.repo.AssertNotCalled(t, "CreateBooking")
}

func TestCreateBookingDuplicate(t *testing.T) {
	svc, deps := newTestService()

	deps.classes.On("GetByID", mock.Anything, 1).Return(futureClass(), nil)
	deps.repo.On("EmailHasBookingForClass", mock.Anything, "john@example.com", 1).Return(true, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	deps.repo.AssertNotCalled(t, "CreateBooking")
}

func TestCreateBookingClassAlreadyFull(t *testing.T) {
	svc, deps := newTestService()

	fc := futureClass()
	fc.AvailableSlots = 0
	deps.classes.On("GetByID", mock.Anything, 1).Return(fc, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClassFull)
	deps.repo.AssertNotCalled(t, "CreateBooking")
}

func TestCreateBookingClassFull(t *testing.T) {
	svc, deps := newTestService()

	deps.classes.On("GetByID", mock.Anything, 1).Return(futureClass(), nil)
	deps.repo.On("EmailHasBookingForClass", mock.Anything, "john@example.com", 1).Return(false, nil)
	deps.repo.On("CreateBooking", mock.Anything, 1, "John", "Doe", "john@example.com", testNow).
		Return(nil, ErrClassFull)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClassFull)
	deps.notifier.AssertNotCalled(t, "SendBookingConfirmation")
}

func TestCreateBookingNotifierFailureDoesNotFailBooking(t *testing.T) {
	svc, deps := newTestService()

	fc := futureClass()
	deps.classes.On("GetByID", mock.Anything, 1).Return(fc, nil)
	deps.repo.On("EmailHasBookingForClass", mock.Anything, "john@example.com", 1).Return(false, nil)
	deps.repo.On("CreateBooking", mock.Anything, 1, "John", "Doe", "john@example.com", testNow).
		Return(&Booking{ID: 10}, nil)
	deps.notifier.On("SendBookingConfirmation", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(assert.AnError)

	b, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 10, b.ID)
}

func TestCreateBookingWithoutNotifier(t *testing.T) {
	deps := testDeps{
		repo:    new(mockRepository),
		classes: new(mockClassRepository),
		clients: new(mockClientRepository),
	}
	svc := NewService(deps.repo, deps.classes, deps.clients, nil, clock.Fixed(testNow), 5*time.Second)

	deps.classes.On("GetByID", mock.Anything, 1).Return(futureClass(), nil)
	deps.repo.On("EmailHasBookingForClass", mock.Anything, "john@example.com", 1).Return(false, nil)
	deps.repo.On("CreateBooking", mock.Anything, 1, "John", "Doe", "john@example.com", testNow).
		Return(&Booking{ID: 10}, nil)

	_, err := svc.CreateBooking(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestListBookingsForEmail(t *testing.T) {
	svc, deps := newTestService()

	deps.clients.On("FindByEmail", mock.Anything, "john@example.com").
		Return(&client.Client{ID: 2, Email: "john@example.com"}, nil)
	deps.repo.On("GetBookingsForClient", mock.Anything, 2).
		Return([]BookingWithDetails{
			{ID: 10, Email: "john@example.com", ClassName: "YOGA", InstructorName: "Alice"},
		}, nil)

	bookings, err := svc.ListBookingsForEmail(context.Background(), "John@Example.com")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "YOGA", bookings[0].ClassName)
}

func TestListBookingsForEmailUnknownClient(t *testing.T) {
	svc, deps := newTestService()

	deps.clients.On("FindByEmail", mock.Anything, "nobody@example.com").
		Return(nil, client.ErrClientNotFound)

	_, err := svc.ListBookingsForEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestListBookingsForEmailEmptyResult(t *testing.T) {
	svc, deps := newTestService()

	deps.clients.On("FindByEmail", mock.Anything, "john@example.com").
		Return(&client.Client{ID: 2}, nil)
	deps.repo.On("GetBookingsForClient", mock.Anything, 2).Return(nil, nil)

	bookings, err := svc.ListBookingsForEmail(context.Background(), "john@example.com")
	require.NoError(t, err)
	assert.NotNil(t, bookings)
	assert.Empty(t, bookings)
}
