package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/pkg/dbmetrics"
	"github.com/memberhq/SMP-AppointmentService/pkg/psqlbuilder"
)

const table = "appointment_bookings"

var bookingColumns = []string{
	"id",
	"reference_code",
	"slot_id",
	"user_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"appointment_type",
	"scheduled_date",
	"scheduled_time",
	"duration_minutes",
	"timezone",
	"status",
	"notes",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
	"cancellation_reason",
	"outcome",
	"rating",
	"feedback",
	"reminders_sent",
	"reschedule_count",
	"created_at",
	"updated_at",
}

// Repository persists appointment bookings. Rows are never deleted; every
// lifecycle change is a guarded status update keyed on the current status,
// so a concurrent transition surfaces as ErrStatusChanged instead of being
// silently overwritten.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking and fills in its generated id and timestamps.
func (r *Repository) Create(ctx context.Context, b *domain.AppointmentBooking) (*domain.AppointmentBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"reference_code",
			"slot_id",
			"user_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"appointment_type",
			"scheduled_date",
			"scheduled_time",
			"duration_minutes",
			"timezone",
			"status",
			"notes",
		).
		Values(
			b.ReferenceCode,
			b.SlotID,
			b.UserID,
			b.GuestName,
			b.GuestEmail,
			b.GuestPhone,
			b.AppointmentType,
			b.ScheduledDate,
			b.ScheduledTime,
			b.DurationMinutes,
			b.Timezone,
			b.Status,
			b.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return b, nil
}

// GetByID fetches one booking. Inside a transaction the row is locked with
// FOR UPDATE so lifecycle transitions serialize.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentBooking, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByReferenceCode fetches one booking by its public reference code.
func (r *Repository) GetByReferenceCode(ctx context.Context, code uuid.UUID) (*domain.AppointmentBooking, error) {
	return r.getOne(ctx, squirrel.Eq{"reference_code": code}, "GetByReferenceCode")
}

func (r *Repository) getOne(ctx context.Context, pred squirrel.Eq, method string) (*domain.AppointmentBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(pred)

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, method, err)
	}
	return b, nil
}

// ListByUser returns every booking of an authenticated user, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]*domain.AppointmentBooking, error) {
	return r.list(ctx, psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("scheduled_date DESC, scheduled_time DESC"), "ListByUser")
}

// ListByGuestEmail returns every booking made under a guest email, newest first.
func (r *Repository) ListByGuestEmail(ctx context.Context, email string) ([]*domain.AppointmentBooking, error) {
	return r.list(ctx, psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"guest_email": email}).
		OrderBy("scheduled_date DESC, scheduled_time DESC"), "ListByGuestEmail")
}

// ListActiveByRequesterAndDate returns the requester's booked and confirmed
// bookings on one date. This is the conflict-detection read; inside a
// transaction the rows are locked with FOR UPDATE.
func (r *Repository) ListActiveByRequesterAndDate(ctx context.Context, requester domain.RequesterFilter, date time.Time) ([]*domain.AppointmentBooking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"scheduled_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"status": domain.ActiveBookingStatuses}).
		OrderBy("scheduled_time ASC")

	switch {
	case requester.UserID != nil:
		builder = builder.Where(squirrel.Eq{"user_id": *requester.UserID})
	case requester.GuestEmail != nil:
		builder = builder.Where(squirrel.Eq{"guest_email": *requester.GuestEmail})
	}

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	return r.list(ctx, builder, "ListActiveByRequesterAndDate")
}

// CountActiveBySlot counts booked and confirmed bookings holding seats on a
// slot. Used to refuse slot deletion.
func (r *Repository) CountActiveBySlot(ctx context.Context, slotID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table).
		Where(squirrel.Eq{"slot_id": slotID}).
		Where(squirrel.Eq{"status": domain.ActiveBookingStatuses}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveBySlot - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// CountActiveForInterviewerOnDate counts the interviewer's booked and
// confirmed bookings on one date, joining through slots. Slots holding
// active bookings cannot be deleted, so the join never loses rows.
func (r *Repository) CountActiveForInterviewerOnDate(ctx context.Context, interviewerID int64, date time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(table + " b").
		Join("appointment_slots s ON s.id = b.slot_id").
		Where(squirrel.Eq{"s.interviewer_id": interviewerID}).
		Where(squirrel.Eq{"b.scheduled_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Eq{"b.status": domain.ActiveBookingStatuses}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveForInterviewerOnDate - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveForInterviewerOnDate - scan count: %w", ErrScanRow, err)
	}
	return count, nil
}

// Confirm moves a booked booking to confirmed, stamping confirmed_at.
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	return r.transition(ctx, "Confirm", id, []domain.BookingStatus{domain.StatusBooked},
		map[string]interface{}{
			"status":       domain.StatusConfirmed,
			"confirmed_at": squirrel.Expr("NOW()"),
		})
}

// Complete moves an active booking to completed, recording the interview
// outcome and optional rating and feedback.
func (r *Repository) Complete(ctx context.Context, id int64, outcome domain.BookingOutcome, rating *int, feedback *string) error {
	return r.transition(ctx, "Complete", id, domain.ActiveBookingStatuses,
		map[string]interface{}{
			"status":       domain.StatusCompleted,
			"completed_at": squirrel.Expr("NOW()"),
			"outcome":      outcome,
			"rating":       rating,
			"feedback":     feedback,
		})
}

// MarkNoShow moves an active booking to no_show.
func (r *Repository) MarkNoShow(ctx context.Context, id int64) error {
	return r.transition(ctx, "MarkNoShow", id, domain.ActiveBookingStatuses,
		map[string]interface{}{
			"status": domain.StatusNoShow,
		})
}

// Cancel moves an active booking to cancelled, stamping cancelled_at and the
// reason.
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	return r.transition(ctx, "Cancel", id, domain.ActiveBookingStatuses,
		map[string]interface{}{
			"status":              domain.StatusCancelled,
			"cancelled_at":        squirrel.Expr("NOW()"),
			"cancellation_reason": reason,
		})
}

// transition performs a guarded status update: the WHERE clause pins the
// statuses the transition is legal from, so a row moved concurrently is not
// matched and the caller gets ErrStatusChanged.
func (r *Repository) transition(ctx context.Context, method string, id int64, from []domain.BookingStatus, set map[string]interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": from})
	for column, value := range set {
		builder = builder.Set(column, value)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %w", ErrBuildQuery, method, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// Reschedule repoints an active booking at a new slot, rewrites the
// denormalized schedule, resets the status to booked and bumps
// reschedule_count. Runs inside the same transaction as the capacity moves.
func (r *Repository) Reschedule(ctx context.Context, id int64, newSlot *domain.AppointmentSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("slot_id", newSlot.ID).
		Set("scheduled_date", newSlot.SlotDate).
		Set("scheduled_time", newSlot.StartTime).
		Set("duration_minutes", newSlot.DurationMinutes).
		Set("timezone", newSlot.Timezone).
		Set("status", domain.StatusBooked).
		Set("confirmed_at", nil).
		Set("reschedule_count", squirrel.Expr("reschedule_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.ActiveBookingStatuses}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// IncrementReminders bumps reminders_sent on an active booking.
func (r *Repository) IncrementReminders(ctx context.Context, id int64) error {
	return r.transition(ctx, "IncrementReminders", id, domain.ActiveBookingStatuses,
		map[string]interface{}{
			"reminders_sent": squirrel.Expr("reminders_sent + 1"),
		})
}

// DueReminders returns active bookings scheduled inside the window that have
// not yet hit the reminder cap, soonest first.
func (r *Repository) DueReminders(ctx context.Context, filter domain.ReminderFilter) ([]*domain.AppointmentBooking, error) {
	builder := psqlbuilder.Select(bookingColumns...).
		From(table).
		Where(squirrel.Eq{"status": domain.ActiveBookingStatuses}).
		Where(squirrel.GtOrEq{"scheduled_date": filter.FromDate.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"scheduled_date": filter.ToDate.Format(domain.DateFormat)}).
		Where(squirrel.Lt{"reminders_sent": filter.MaxReminders}).
		OrderBy("scheduled_date ASC, scheduled_time ASC")

	return r.list(ctx, builder, "DueReminders")
}

// Stats aggregates the booking-side statistics for a date range in one query.
func (r *Repository) Stats(ctx context.Context, filter domain.StatsRangeFilter) (*domain.BookingStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"COUNT(*)",
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusCompleted),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusCancelled),
		fmt.Sprintf("COUNT(*) FILTER (WHERE status = '%s')", domain.StatusNoShow),
		"COUNT(*) FILTER (WHERE reschedule_count > 0)",
		"COALESCE(AVG(rating), 0)",
	).
		From(table).
		Where(squirrel.GtOrEq{"scheduled_date": filter.FromDate.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"scheduled_date": filter.ToDate.Format(domain.DateFormat)})

	if filter.AppointmentType != nil {
		builder = builder.Where(squirrel.Eq{"appointment_type": *filter.AppointmentType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %w", ErrBuildQuery, err)
	}

	var stats domain.BookingStatistics
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalBookings,
		&stats.Completed,
		&stats.Cancelled,
		&stats.NoShows,
		&stats.Rescheduled,
		&stats.AverageRating,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan aggregates: %w", ErrScanRow, err)
	}

	stats.CompletionRate = domain.Rate(stats.Completed, stats.TotalBookings)
	stats.NoShowRate = domain.Rate(stats.NoShows, stats.TotalBookings)
	stats.RescheduleRate = domain.Rate(stats.Rescheduled, stats.TotalBookings)
	return &stats, nil
}

func (r *Repository) list(ctx context.Context, builder squirrel.SelectBuilder, method string) ([]*domain.AppointmentBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, method, err)
	}
	defer rows.Close()

	bookings := make([]*domain.AppointmentBooking, 0)
	for rows.Next() {
		b, err := scanBookingRow(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, method, err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, method, err)
	}
	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row *sql.Row) (*domain.AppointmentBooking, error) {
	return scanBookingRow(row)
}

func scanBookingRow(row rowScanner) (*domain.AppointmentBooking, error) {
	var b domain.AppointmentBooking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.ReferenceCode,
		&b.SlotID,
		&b.UserID,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&b.AppointmentType,
		&b.ScheduledDate,
		&b.ScheduledTime,
		&b.DurationMinutes,
		&b.Timezone,
		&b.Status,
		&b.Notes,
		&b.ConfirmedAt,
		&b.CompletedAt,
		&b.CancelledAt,
		&b.CancellationReason,
		&b.Outcome,
		&b.Rating,
		&b.Feedback,
		&b.RemindersSent,
		&b.RescheduleCount,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	return &b, nil
}
