package reschedule_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
)

type fakeBookingRepo struct {
	booking *domain.AppointmentBooking
	sameDay []*domain.AppointmentBooking
	moved   int
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.AppointmentBooking, error) {
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Reschedule(_ context.Context, _ int64, newSlot *domain.AppointmentSlot) error {
	f.moved++
	f.booking.SlotID = newSlot.ID
	f.booking.ScheduledDate = newSlot.SlotDate
	f.booking.ScheduledTime = newSlot.StartTime
	f.booking.DurationMinutes = newSlot.DurationMinutes
	f.booking.Timezone = newSlot.Timezone
	f.booking.Status = domain.StatusBooked
	f.booking.RescheduleCount++
	return nil
}

func (f *fakeBookingRepo) ListActiveByRequesterAndDate(context.Context, domain.RequesterFilter, time.Time) ([]*domain.AppointmentBooking, error) {
	return f.sameDay, nil
}

type fakeSlotRepo struct {
	slots        map[int64]*domain.AppointmentSlot
	incremented  []int64
	decremented  []int64
	incrementErr error
	decrementErr error
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentSlot, error) {
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeSlotRepo) IncrementBooked(_ context.Context, id int64) error {
	if f.incrementErr != nil {
		return f.incrementErr
	}
	f.incremented = append(f.incremented, id)
	return nil
}

func (f *fakeSlotRepo) DecrementBooked(_ context.Context, id int64) error {
	if f.decrementErr != nil {
		return f.decrementErr
	}
	f.decremented = append(f.decremented, id)
	return nil
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

var testNow = time.Date(2026, 9, 12, 8, 0, 0, 0, time.UTC)

func testBooking(userID int64) *domain.AppointmentBooking {
	return &domain.AppointmentBooking{
		ID:              10,
		ReferenceCode:   uuid.New(),
		SlotID:          5,
		UserID:          &userID,
		AppointmentType: domain.TypeConsultation,
		ScheduledDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime:   "10:00",
		DurationMinutes: 60,
		Timezone:        "UTC",
		Status:          domain.StatusConfirmed,
	}
}

func testSlots() map[int64]*domain.AppointmentSlot {
	return map[int64]*domain.AppointmentSlot{
		5: {
			ID: 5, InterviewerID: 1,
			SlotDate:  time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
			StartTime: "10:00", EndTime: "11:00", DurationMinutes: 60,
			AppointmentType: domain.TypeConsultation, Timezone: "UTC",
			Capacity: 1, BookedCount: 1, IsAvailable: true,
			CancellationDeadlineHours: 24,
		},
		6: {
			ID: 6, InterviewerID: 1,
			SlotDate:  time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
			StartTime: "14:00", EndTime: "15:00", DurationMinutes: 60,
			AppointmentType: domain.TypeConsultation, Timezone: "UTC",
			Capacity: 2, BookedCount: 0, IsAvailable: true,
			CancellationDeadlineHours: 24,
		},
	}
}

func testEnv() (*fakeBookingRepo, *fakeSlotRepo, *UseCase) {
	bookings := &fakeBookingRepo{booking: testBooking(7)}
	slots := &fakeSlotRepo{slots: testSlots()}
	uc := NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{now: testNow}
	return bookings, slots, uc
}

func ownerRequest() *Request {
	userID := int64(7)
	return &Request{
		BookingID: 10,
		NewSlotID: 6,
		Requester: &domain.RequesterFilter{UserID: &userID},
	}
}

func TestReschedule_MovesSeatAndResetsStatus(t *testing.T) {
	bookings, slots, uc := testEnv()

	resp, err := uc.Execute(context.Background(), ownerRequest())
	require.NoError(t, err)

	assert.Equal(t, []int64{6}, slots.incremented)
	assert.Equal(t, []int64{5}, slots.decremented)
	assert.Equal(t, 1, bookings.moved)

	assert.Equal(t, int64(6), resp.SlotID)
	assert.Equal(t, string(domain.StatusBooked), resp.Status) // approval starts over
	assert.Equal(t, "2026-09-18", resp.ScheduledDate)
	assert.Equal(t, "14:00", resp.ScheduledTime)
	assert.Equal(t, 1, resp.RescheduleCount)
}

func TestReschedule_SameSlotRejected(t *testing.T) {
	_, _, uc := testEnv()
	req := ownerRequest()
	req.NewSlotID = 5

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSameSlot)
}

func TestReschedule_DeadlineOfCurrentSlotGoverns(t *testing.T) {
	_, slots, uc := testEnv()
	uc.timeProvider = fixedClock{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrDeadlinePassed)
	assert.Empty(t, slots.incremented)
}

func TestReschedule_TargetChecks(t *testing.T) {
	t.Run("target missing", func(t *testing.T) {
		_, slots, uc := testEnv()
		delete(slots.slots, 6)
		_, err := uc.Execute(context.Background(), ownerRequest())
		assert.ErrorIs(t, err, ErrSlotNotFound)
	})

	t.Run("target full", func(t *testing.T) {
		_, slots, uc := testEnv()
		slots.slots[6].BookedCount = slots.slots[6].Capacity
		_, err := uc.Execute(context.Background(), ownerRequest())
		assert.ErrorIs(t, err, ErrSlotFull)
	})

	t.Run("target unavailable", func(t *testing.T) {
		_, slots, uc := testEnv()
		slots.slots[6].IsAvailable = false
		_, err := uc.Execute(context.Background(), ownerRequest())
		assert.ErrorIs(t, err, ErrSlotUnavailable)
	})

	t.Run("target in the past", func(t *testing.T) {
		_, slots, uc := testEnv()
		slots.slots[6].SlotDate = testNow.AddDate(0, 0, -1)
		_, err := uc.Execute(context.Background(), ownerRequest())
		assert.ErrorIs(t, err, ErrSlotInPast)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, slots, uc := testEnv()
		slots.slots[6].AppointmentType = domain.TypeMemberInterview
		_, err := uc.Execute(context.Background(), ownerRequest())
		assert.ErrorIs(t, err, ErrTypeMismatch)
	})
}

func TestReschedule_ConflictExcludesMovingBooking(t *testing.T) {
	bookings, _, uc := testEnv()

	// The moving booking itself shows up in the same-day listing once the
	// target date matches; it must not conflict with itself.
	self := *bookings.booking
	self.ScheduledDate = time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	self.ScheduledTime = "14:00"
	bookings.sameDay = []*domain.AppointmentBooking{&self}

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.NoError(t, err)
}

func TestReschedule_RequesterConflictOnTargetDate(t *testing.T) {
	bookings, slots, uc := testEnv()
	bookings.sameDay = []*domain.AppointmentBooking{
		{
			ID:              42,
			ScheduledDate:   time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC),
			ScheduledTime:   "14:30",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrRequesterConflict)
	assert.Empty(t, slots.incremented)
}

func TestReschedule_LostRaceOnTargetSeat(t *testing.T) {
	bookings, slots, uc := testEnv()
	slots.incrementErr = slotRepo.ErrSlotFull

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Equal(t, 0, bookings.moved)
}

func TestReschedule_LedgerCorruptionAborts(t *testing.T) {
	bookings, slots, uc := testEnv()
	slots.decrementErr = slotRepo.ErrNegativeBookedCount

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 0, bookings.moved)
}

func TestReschedule_MissingCurrentSlotFailsSafe(t *testing.T) {
	_, slots, uc := testEnv()
	delete(slots.slots, 5)

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrPolicyUnavailable)
}

func TestReschedule_TerminalBooking(t *testing.T) {
	bookings, _, uc := testEnv()
	bookings.booking.Status = domain.StatusCancelled

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrCannotReschedule)
}

func TestReschedule_OwnershipDenied(t *testing.T) {
	_, _, uc := testEnv()
	other := int64(99)
	req := ownerRequest()
	req.Requester = &domain.RequesterFilter{UserID: &other}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
