package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
	"github.com/memberhq/SMP-AppointmentService/internal/integrations/profileservice"
	"github.com/memberhq/SMP-AppointmentService/pkg/ptr"
	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

type fakeSlotRepo struct {
	slot         *domain.AppointmentSlot
	getErr       error
	incrementErr error
	incremented  int
}

func (f *fakeSlotRepo) GetByID(context.Context, int64) (*domain.AppointmentSlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) IncrementBooked(context.Context, int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incremented++
	return nil
}

type fakeBookingRepo struct {
	sameDay    []*domain.AppointmentBooking
	dailyCount int
	created    *domain.AppointmentBooking
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.AppointmentBooking) (*domain.AppointmentBooking, error) {
	saved := *b
	saved.ID = 100
	f.created = &saved
	return &saved, nil
}

func (f *fakeBookingRepo) ListActiveByRequesterAndDate(context.Context, domain.RequesterFilter, time.Time) ([]*domain.AppointmentBooking, error) {
	return f.sameDay, nil
}

func (f *fakeBookingRepo) CountActiveForInterviewerOnDate(context.Context, int64, time.Time) (int, error) {
	return f.dailyCount, nil
}

type fakeInterviewerRepo struct {
	interviewer *domain.Interviewer
	recorded    int
}

func (f *fakeInterviewerRepo) GetByID(context.Context, int64) (*domain.Interviewer, error) {
	return f.interviewer, nil
}

func (f *fakeInterviewerRepo) RecordBooking(context.Context, int64) error {
	f.recorded++
	return nil
}

type fakeProfileClient struct {
	err    error
	called int
}

func (f *fakeProfileClient) GetProfile(_ context.Context, userID int64) (*profileservice.MemberProfile, error) {
	f.called++
	if f.err != nil {
		return nil, f.err
	}
	return &profileservice.MemberProfile{UserID: userID}, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testNow = time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

func testSlot() *domain.AppointmentSlot {
	return &domain.AppointmentSlot{
		ID:                        5,
		InterviewerID:             1,
		SlotDate:                  time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:                 "10:00",
		EndTime:                   "11:00",
		DurationMinutes:           60,
		AppointmentType:           domain.TypeConsultation,
		Timezone:                  "UTC",
		Capacity:                  2,
		BookedCount:               0,
		IsAvailable:               true,
		RequiresApproval:          true,
		CancellationDeadlineHours: 24,
	}
}

func testEnv() (*fakeSlotRepo, *fakeBookingRepo, *fakeInterviewerRepo, *fakeProfileClient, *UseCase) {
	slots := &fakeSlotRepo{slot: testSlot()}
	bookings := &fakeBookingRepo{}
	interviewers := &fakeInterviewerRepo{interviewer: &domain.Interviewer{
		ID:                   1,
		IsActive:             true,
		MaxDailyAppointments: domain.DefaultMaxDailyAppointments,
		AdvanceBookingDays:   domain.DefaultAdvanceBookingDays,
	}}
	profiles := &fakeProfileClient{}

	uc := NewUseCase(slots, bookings, interviewers, profiles, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{now: testNow}
	return slots, bookings, interviewers, profiles, uc
}

func userRequest() *Request {
	return &Request{SlotID: 5, UserID: ptr.Ptr(int64(7))}
}

func guestRequest() *Request {
	return &Request{
		SlotID:     5,
		GuestName:  ptr.Ptr("Alex Guest"),
		GuestEmail: ptr.Ptr("alex@example.com"),
	}
}

func TestCreateBooking_MemberBooking(t *testing.T) {
	slots, bookings, interviewers, profiles, uc := testEnv()

	resp, err := uc.Execute(context.Background(), userRequest())
	require.NoError(t, err)

	assert.Equal(t, 1, slots.incremented)
	assert.Equal(t, 1, interviewers.recorded)
	assert.Equal(t, 1, profiles.called)

	require.NotNil(t, bookings.created)
	b := bookings.created
	assert.Equal(t, domain.StatusBooked, b.Status) // slot requires approval
	assert.Equal(t, int64(5), b.SlotID)
	assert.NotEqual(t, "", b.ReferenceCode.String())

	// Schedule denormalized from the slot.
	assert.Equal(t, types.TimeString("10:00"), b.ScheduledTime)
	assert.Equal(t, 60, b.DurationMinutes)
	assert.Equal(t, domain.TypeConsultation, b.AppointmentType)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status)
}

func TestCreateBooking_AutoApproveStartsConfirmed(t *testing.T) {
	slots, bookings, _, _, uc := testEnv()
	slots.slot.RequiresApproval = false

	_, err := uc.Execute(context.Background(), userRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, bookings.created.Status)
}

func TestCreateBooking_GuestBookingSkipsProfileLookup(t *testing.T) {
	_, bookings, _, profiles, uc := testEnv()

	_, err := uc.Execute(context.Background(), guestRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, profiles.called)
	assert.Nil(t, bookings.created.UserID)
	require.NotNil(t, bookings.created.GuestEmail)
}

func TestCreateBooking_RequesterXOR(t *testing.T) {
	_, _, _, _, uc := testEnv()

	t.Run("neither", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), &Request{SlotID: 5})
		assert.ErrorIs(t, err, ErrInvalidRequester)
	})

	t.Run("both", func(t *testing.T) {
		req := guestRequest()
		req.UserID = ptr.Ptr(int64(7))
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidRequester)
	})

	t.Run("guest without name", func(t *testing.T) {
		req := guestRequest()
		req.GuestName = nil
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("guest with bad email", func(t *testing.T) {
		req := guestRequest()
		req.GuestEmail = ptr.Ptr("not-an-email")
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestCreateBooking_SlotChecks(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		slots, _, _, _, uc := testEnv()
		slots.getErr = slotRepo.ErrSlotNotFound
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("unavailable", func(t *testing.T) {
		slots, _, _, _, uc := testEnv()
		slots.slot.IsAvailable = false
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("full", func(t *testing.T) {
		slots, _, _, _, uc := testEnv()
		slots.slot.BookedCount = slots.slot.Capacity
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrSlotFull)
	})

	t.Run("in the past", func(t *testing.T) {
		slots, _, _, _, uc := testEnv()
		slots.slot.SlotDate = testNow.AddDate(0, 0, -1)
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrSlotInPast)
	})

	t.Run("lost race on the last seat", func(t *testing.T) {
		slots, _, _, _, uc := testEnv()
		slots.incrementErr = slotRepo.ErrSlotFull
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrSlotFull)
	})
}

func TestCreateBooking_InterviewerChecks(t *testing.T) {
	t.Run("inactive", func(t *testing.T) {
		_, _, interviewers, _, uc := testEnv()
		interviewers.interviewer.IsActive = false
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrInterviewerInactive)
	})

	t.Run("beyond advance window", func(t *testing.T) {
		_, _, interviewers, _, uc := testEnv()
		interviewers.interviewer.AdvanceBookingDays = 3
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrTooFarAhead)
	})

	t.Run("daily limit reached", func(t *testing.T) {
		_, bookings, interviewers, _, uc := testEnv()
		interviewers.interviewer.MaxDailyAppointments = 2
		bookings.dailyCount = 2
		_, err := uc.Execute(context.Background(), userRequest())
		assert.ErrorIs(t, err, ErrMaxDailyReached)
	})
}

func TestCreateBooking_RequesterConflict(t *testing.T) {
	slots, bookings, _, _, uc := testEnv()

	overlapping := &domain.AppointmentBooking{
		ID:              42,
		ScheduledDate:   slots.slot.SlotDate,
		ScheduledTime:   "10:30",
		DurationMinutes: 60,
		Timezone:        "UTC",
		Status:          domain.StatusConfirmed,
	}
	bookings.sameDay = []*domain.AppointmentBooking{overlapping}

	_, err := uc.Execute(context.Background(), userRequest())
	assert.ErrorIs(t, err, ErrRequesterConflict)
	assert.Equal(t, 0, slots.incremented)

	// A back-to-back booking is not a conflict: ranges are half-open.
	overlapping.ScheduledTime = "11:00"
	_, err = uc.Execute(context.Background(), userRequest())
	assert.NoError(t, err)
}

func TestCreateBooking_MemberNotFound(t *testing.T) {
	slots, _, _, profiles, uc := testEnv()
	profiles.err = profileservice.ErrProfileNotFound

	_, err := uc.Execute(context.Background(), userRequest())
	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.Equal(t, 0, slots.incremented)
}
