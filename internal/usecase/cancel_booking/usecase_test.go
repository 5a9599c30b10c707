package cancel_booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	bookingRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/booking"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
)

type fakeBookingRepo struct {
	booking   *domain.AppointmentBooking
	cancelErr error
	cancelled int
}

func (f *fakeBookingRepo) GetByID(context.Context, int64) (*domain.AppointmentBooking, error) {
	if f.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	b := *f.booking
	return &b, nil
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason *string) error {
	if f.cancelErr != nil {
		return f.cancelErr
	}
	f.cancelled++
	f.booking.Status = domain.StatusCancelled
	f.booking.CancellationReason = reason
	return nil
}

type fakeSlotRepo struct {
	slot         *domain.AppointmentSlot
	decrementErr error
	decremented  int
}

func (f *fakeSlotRepo) GetByID(context.Context, int64) (*domain.AppointmentSlot, error) {
	if f.slot == nil {
		return nil, slotRepo.ErrSlotNotFound
	}
	return f.slot, nil
}

func (f *fakeSlotRepo) DecrementBooked(context.Context, int64) error {
	if f.decrementErr != nil {
		return f.decrementErr
	}
	f.decremented++
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

// The booking starts 2026-09-15 10:00 UTC; the slot's deadline is 24 hours.
var testNow = time.Date(2026, 9, 13, 8, 0, 0, 0, time.UTC)

func ownedBooking(userID int64) *domain.AppointmentBooking {
	return &domain.AppointmentBooking{
		ID:              10,
		ReferenceCode:   uuid.New(),
		SlotID:          5,
		UserID:          &userID,
		ScheduledDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		ScheduledTime:   "10:00",
		DurationMinutes: 60,
		Timezone:        "UTC",
		Status:          domain.StatusConfirmed,
	}
}

func policySlot(deadlineHours int) *domain.AppointmentSlot {
	return &domain.AppointmentSlot{
		ID:                        5,
		CancellationDeadlineHours: deadlineHours,
		BookedCount:               1,
		Capacity:                  1,
	}
}

func testEnv() (*fakeBookingRepo, *fakeSlotRepo, *UseCase) {
	bookings := &fakeBookingRepo{booking: ownedBooking(7)}
	slots := &fakeSlotRepo{slot: policySlot(24)}
	uc := NewUseCase(bookings, slots, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedClock{now: testNow}
	return bookings, slots, uc
}

func ownerRequest() *Request {
	userID := int64(7)
	return &Request{
		BookingID: 10,
		Requester: &domain.RequesterFilter{UserID: &userID},
	}
}

func TestCancelBooking_ReleasesSeat(t *testing.T) {
	bookings, slots, uc := testEnv()

	reason := "schedule change"
	req := ownerRequest()
	req.Reason = &reason

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, bookings.cancelled)
	assert.Equal(t, 1, slots.decremented)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, reason, *resp.CancellationReason)
}

func TestCancelBooking_StaffSkipsOwnershipCheck(t *testing.T) {
	bookings, _, uc := testEnv()

	_, err := uc.Execute(context.Background(), &Request{BookingID: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, bookings.cancelled)
}

func TestCancelBooking_DeadlineEnforced(t *testing.T) {
	// Deadline is 2026-09-14 10:00; at 12:00 the same day it has passed.
	bookings, slots, uc := testEnv()
	uc.timeProvider = fixedClock{now: time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrDeadlinePassed)
	assert.Equal(t, 0, bookings.cancelled)
	assert.Equal(t, 0, slots.decremented)
}

func TestCancelBooking_DeadlineBoundaryRejects(t *testing.T) {
	// Exactly at the deadline counts as passed.
	_, _, uc := testEnv()
	uc.timeProvider = fixedClock{now: time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestCancelBooking_ZeroDeadlineAllowsUntilStart(t *testing.T) {
	bookings, slots, uc := testEnv()
	slots.slot.CancellationDeadlineHours = 0
	uc.timeProvider = fixedClock{now: time.Date(2026, 9, 15, 9, 59, 0, 0, time.UTC)}

	_, err := uc.Execute(context.Background(), ownerRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, bookings.cancelled)
}

func TestCancelBooking_OwnershipDenied(t *testing.T) {
	t.Run("different user", func(t *testing.T) {
		_, _, uc := testEnv()
		other := int64(99)
		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Requester: &domain.RequesterFilter{UserID: &other},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("guest email against member booking", func(t *testing.T) {
		_, _, uc := testEnv()
		email := "someone@example.com"
		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Requester: &domain.RequesterFilter{GuestEmail: &email},
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("matching guest email", func(t *testing.T) {
		bookings, _, uc := testEnv()
		email := "guest@example.com"
		bookings.booking.UserID = nil
		bookings.booking.GuestEmail = &email
		_, err := uc.Execute(context.Background(), &Request{
			BookingID: 10,
			Requester: &domain.RequesterFilter{GuestEmail: &email},
		})
		assert.NoError(t, err)
	})
}

func TestCancelBooking_TerminalStatus(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCompleted, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			bookings, _, uc := testEnv()
			bookings.booking.Status = status

			_, err := uc.Execute(context.Background(), ownerRequest())
			assert.ErrorIs(t, err, ErrCannotCancel)
		})
	}
}

func TestCancelBooking_RecancelIsNoOp(t *testing.T) {
	bookings, slots, uc := testEnv()
	bookings.booking.Status = domain.StatusCancelled

	resp, err := uc.Execute(context.Background(), ownerRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	// No second status write and, above all, no second seat release.
	assert.Equal(t, 0, bookings.cancelled)
	assert.Equal(t, 0, slots.decremented)
}

func TestCancelBooking_MissingSlotFailsSafe(t *testing.T) {
	bookings, slots, uc := testEnv()
	slots.slot = nil

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrPolicyUnavailable)
	assert.Equal(t, 0, bookings.cancelled)
}

func TestCancelBooking_LedgerCorruptionAborts(t *testing.T) {
	_, slots, uc := testEnv()
	slots.decrementErr = slotRepo.ErrNegativeBookedCount

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCancelBooking_NotFound(t *testing.T) {
	bookings, _, uc := testEnv()
	bookings.booking = nil

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestCancelBooking_ConcurrentTransition(t *testing.T) {
	bookings, _, uc := testEnv()
	bookings.cancelErr = bookingRepo.ErrStatusChanged

	_, err := uc.Execute(context.Background(), ownerRequest())
	assert.ErrorIs(t, err, ErrCannotCancel)
}
