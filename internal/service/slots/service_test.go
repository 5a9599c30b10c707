package slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	slotRepo "github.com/memberhq/SMP-AppointmentService/internal/infra/storage/slot"
	"github.com/memberhq/SMP-AppointmentService/internal/service/slots/models"
	"github.com/memberhq/SMP-AppointmentService/pkg/ptr"
	"github.com/memberhq/SMP-AppointmentService/pkg/types"
)

type fakeSlotRepo struct {
	slots   map[int64]*domain.AppointmentSlot
	listed  []*domain.AppointmentSlot
	filter  domain.SlotRangeFilter
	updated *domain.AppointmentSlot
	deleted []int64
	getErr  error
	listErr error
	editErr error
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.AppointmentSlot, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	s, ok := f.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return s, nil
}

func (f *fakeSlotRepo) ListByRange(_ context.Context, filter domain.SlotRangeFilter) ([]*domain.AppointmentSlot, error) {
	f.filter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listed, nil
}

func (f *fakeSlotRepo) ListByInterviewerAndDate(_ context.Context, interviewerID int64, date time.Time) ([]*domain.AppointmentSlot, error) {
	var out []*domain.AppointmentSlot
	for _, s := range f.slots {
		if s.InterviewerID == interviewerID && s.SlotDate.Equal(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) Update(_ context.Context, s *domain.AppointmentSlot) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.updated = s
	return nil
}

func (f *fakeSlotRepo) Delete(_ context.Context, id int64) error {
	if f.editErr != nil {
		return f.editErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeBookingRepo struct {
	active   int
	countErr error
}

func (f *fakeBookingRepo) CountActiveBySlot(_ context.Context, _ int64) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.active, nil
}

type fakeInterviewerRepo struct {
	interviewer *domain.Interviewer
}

func (f *fakeInterviewerRepo) GetByID(context.Context, int64) (*domain.Interviewer, error) {
	return f.interviewer, nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func storedSlot() *domain.AppointmentSlot {
	return &domain.AppointmentSlot{
		ID:                        5,
		InterviewerID:             1,
		SlotDate:                  time.Date(2026, time.September, 15, 0, 0, 0, 0, time.UTC),
		StartTime:                 types.TimeString("10:00"),
		EndTime:                   types.TimeString("11:00"),
		DurationMinutes:           60,
		AppointmentType:           domain.TypeConsultation,
		Timezone:                  "UTC",
		Capacity:                  3,
		BookedCount:               2,
		IsAvailable:               true,
		CancellationDeadlineHours: 24,
	}
}

func newTestService(slots *fakeSlotRepo, bookings *fakeBookingRepo) *Service {
	return newTestServiceWithBuffer(slots, bookings, 0)
}

func newTestServiceWithBuffer(slots *fakeSlotRepo, bookings *fakeBookingRepo, buffer int) *Service {
	interviewers := &fakeInterviewerRepo{
		interviewer: &domain.Interviewer{ID: 1, BufferMinutes: buffer, IsActive: true},
	}
	return NewService(slots, bookings, interviewers, fakeTxManager{}, nopLogger{})
}

func TestGetByID(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
	svc := newTestService(repo, &fakeBookingRepo{})

	resp, err := svc.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "2026-09-15", resp.SlotDate)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, 1, resp.RemainingCapacity)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{}}, &fakeBookingRepo{})

	_, err := svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestList_FilterPassThrough(t *testing.T) {
	repo := &fakeSlotRepo{listed: []*domain.AppointmentSlot{storedSlot()}}
	svc := newTestService(repo, &fakeBookingRepo{})

	resp, err := svc.List(context.Background(), &models.ListSlotsRequest{
		InterviewerID:   1,
		FromDate:        time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		ToDate:          time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC),
		AppointmentType: ptr.Ptr("consultation"),
		OnlyBookable:    true,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 1)

	assert.Equal(t, int64(1), repo.filter.InterviewerID)
	assert.True(t, repo.filter.OnlyBookable)
	require.NotNil(t, repo.filter.AppointmentType)
	assert.Equal(t, domain.TypeConsultation, *repo.filter.AppointmentType)
}

func TestList_InvalidInput(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{}, &fakeBookingRepo{})

	from := time.Date(2026, time.September, 20, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)

	_, err := svc.List(context.Background(), &models.ListSlotsRequest{InterviewerID: 1, FromDate: from, ToDate: to})
	assert.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.List(context.Background(), &models.ListSlotsRequest{
		InterviewerID:   1,
		FromDate:        to,
		ToDate:          from,
		AppointmentType: ptr.Ptr("walk_in"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate_MoveWindowRecomputesDuration(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
	svc := newTestService(repo, &fakeBookingRepo{})

	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{
		StartTime: ptr.Ptr("14:00"),
		EndTime:   ptr.Ptr("14:45"),
	})
	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.StartTime)
	assert.Equal(t, "14:45", resp.EndTime)
	assert.Equal(t, 45, resp.DurationMinutes)

	require.NotNil(t, repo.updated)
	assert.Equal(t, 45, repo.updated.DurationMinutes)
}

func TestUpdate_ConflictingWindowRejected(t *testing.T) {
	other := storedSlot()
	other.ID = 6
	other.StartTime = types.TimeString("11:00")
	other.EndTime = types.TimeString("12:00")

	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot(), 6: other}}
	svc := newTestService(repo, &fakeBookingRepo{})

	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{
		StartTime: ptr.Ptr("10:30"),
		EndTime:   ptr.Ptr("11:30"),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, repo.updated)
}

func TestUpdate_ConflictCheckExcludesSelf(t *testing.T) {
	// The only overlap is with the slot's own previous window.
	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
	svc := newTestService(repo, &fakeBookingRepo{})

	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{
		StartTime: ptr.Ptr("10:30"),
		EndTime:   ptr.Ptr("11:30"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10:30", resp.StartTime)
}

func TestUpdate_BufferPadsConflictCheck(t *testing.T) {
	other := storedSlot()
	other.ID = 6
	other.StartTime = types.TimeString("11:00")
	other.EndTime = types.TimeString("12:00")

	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot(), 6: other}}
	svc := newTestServiceWithBuffer(repo, &fakeBookingRepo{}, 15)

	// 09:45-10:50 clears slot 6 on its own, but the 15-minute buffer
	// stretches it to 11:05 and into the neighbour.
	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{
		StartTime: ptr.Ptr("09:45"),
		EndTime:   ptr.Ptr("10:50"),
	})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestUpdate_CapacityFloor(t *testing.T) {
	// Two seats are taken; the slot can grow but never shrink past them.
	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
	svc := newTestService(repo, &fakeBookingRepo{})

	_, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Capacity: ptr.Ptr(1)})
	assert.ErrorIs(t, err, ErrSlotHasBookings)
	assert.Nil(t, repo.updated)

	resp, err := svc.Update(context.Background(), 5, &models.UpdateSlotRequest{Capacity: ptr.Ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Capacity)
	assert.Equal(t, 0, resp.RemainingCapacity)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdateSlotRequest
	}{
		{"inverted window", &models.UpdateSlotRequest{StartTime: ptr.Ptr("12:00"), EndTime: ptr.Ptr("11:00")}},
		{"malformed time", &models.UpdateSlotRequest{StartTime: ptr.Ptr("25:99")}},
		{"window too long", &models.UpdateSlotRequest{StartTime: ptr.Ptr("08:00"), EndTime: ptr.Ptr("17:00")}},
		{"capacity too large", &models.UpdateSlotRequest{Capacity: ptr.Ptr(101)}},
		{"negative deadline", &models.UpdateSlotRequest{CancellationDeadlineHours: ptr.Ptr(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
			svc := newTestService(repo, &fakeBookingRepo{})

			_, err := svc.Update(context.Background(), 5, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Nil(t, repo.updated)
		})
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{}}, &fakeBookingRepo{})

	_, err := svc.Update(context.Background(), 99, &models.UpdateSlotRequest{Capacity: ptr.Ptr(5)})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDelete(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
	svc := newTestService(repo, &fakeBookingRepo{active: 0})

	err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestDelete_ActiveBookingsKeepSlot(t *testing.T) {
	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
	svc := newTestService(repo, &fakeBookingRepo{active: 2})

	err := svc.Delete(context.Background(), 5)
	assert.ErrorIs(t, err, ErrSlotHasBookings)
	assert.Empty(t, repo.deleted)
}

func TestDelete_Errors(t *testing.T) {
	svc := newTestService(&fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{}}, &fakeBookingRepo{})
	assert.ErrorIs(t, svc.Delete(context.Background(), 99), ErrSlotNotFound)

	repo := &fakeSlotRepo{slots: map[int64]*domain.AppointmentSlot{5: storedSlot()}}
	svc = newTestService(repo, &fakeBookingRepo{countErr: errors.New("connection reset")})
	assert.ErrorIs(t, svc.Delete(context.Background(), 5), ErrInternal)
	assert.Empty(t, repo.deleted)
}
