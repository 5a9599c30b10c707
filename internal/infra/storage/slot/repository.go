package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/pkg/dbmetrics"
	"github.com/memberhq/SMP-AppointmentService/pkg/psqlbuilder"
)

const table = "appointment_slots"

var slotColumns = []string{
	"id",
	"interviewer_id",
	"slot_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"appointment_type",
	"timezone",
	"capacity",
	"booked_count",
	"is_available",
	"requires_approval",
	"cancellation_deadline_hours",
	"parent_slot_id",
	"created_at",
	"updated_at",
}

// Repository persists appointment slots and owns the capacity ledger: the
// booked_count column is only ever changed through the conditional
// increment/decrement statements below.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a slot repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a slot and fills in its generated id and timestamps.
func (r *Repository) Create(ctx context.Context, s *domain.AppointmentSlot) (*domain.AppointmentSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"interviewer_id",
			"slot_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"appointment_type",
			"timezone",
			"capacity",
			"booked_count",
			"is_available",
			"requires_approval",
			"cancellation_deadline_hours",
			"parent_slot_id",
		).
		Values(
			s.InterviewerID,
			s.SlotDate,
			s.StartTime,
			s.EndTime,
			s.DurationMinutes,
			s.AppointmentType,
			s.Timezone,
			s.Capacity,
			s.BookedCount,
			s.IsAvailable,
			s.RequiresApproval,
			s.CancellationDeadlineHours,
			s.ParentSlotID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// GetByID fetches one slot. Inside a transaction the row is locked with
// FOR UPDATE so capacity decisions stay consistent.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.AppointmentSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns...).
		From(table).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	s, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %w", ErrScanRow, err)
	}
	return s, nil
}

// ListByInterviewerAndDate returns every slot of one interviewer on one
// date, ordered by start time. Used by slot-vs-slot conflict detection;
// takes FOR UPDATE inside a transaction.
func (r *Repository) ListByInterviewerAndDate(ctx context.Context, interviewerID int64, date time.Time) ([]*domain.AppointmentSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns...).
		From(table).
		Where(squirrel.Eq{"interviewer_id": interviewerID}).
		Where(squirrel.Eq{"slot_date": date.Format(domain.DateFormat)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInterviewerAndDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByInterviewerAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// ListByRange returns slots matching the range filter, ordered by date and
// start time. With OnlyBookable set, full or withdrawn slots are excluded.
func (r *Repository) ListByRange(ctx context.Context, filter domain.SlotRangeFilter) ([]*domain.AppointmentSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(slotColumns...).
		From(table).
		Where(squirrel.Eq{"interviewer_id": filter.InterviewerID}).
		Where(squirrel.GtOrEq{"slot_date": filter.FromDate.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"slot_date": filter.ToDate.Format(domain.DateFormat)}).
		OrderBy("slot_date ASC, start_time ASC")

	if filter.AppointmentType != nil {
		builder = builder.Where(squirrel.Eq{"appointment_type": *filter.AppointmentType})
	}
	if filter.OnlyBookable {
		builder = builder.
			Where(squirrel.Eq{"is_available": true}).
			Where("booked_count < capacity")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByRange - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// Update rewrites the mutable slot fields. The capacity ledger columns are
// deliberately not touched here.
func (r *Repository) Update(ctx context.Context, s *domain.AppointmentSlot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("slot_date", s.SlotDate).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("duration_minutes", s.DurationMinutes).
		Set("timezone", s.Timezone).
		Set("capacity", s.Capacity).
		Set("is_available", s.IsAvailable).
		Set("requires_approval", s.RequiresApproval).
		Set("cancellation_deadline_hours", s.CancellationDeadlineHours).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// Delete removes a slot. Callers must first verify the slot has no active
// bookings; the repository does not re-check.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// IncrementBooked takes one seat on the slot as a single conditional update:
// the capacity check and the increment happen in the same statement, so two
// concurrent bookings can never both take the last seat.
func (r *Repository) IncrementBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_available": true}).
		Where("booked_count < capacity").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementBooked - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrSlotFull
	}
	return nil
}

// DecrementBooked releases one seat. The booked_count > 0 guard keeps the
// ledger inside [0, capacity]; hitting it means a caller double-released.
func (r *Repository) DecrementBooked(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("booked_count", squirrel.Expr("booked_count - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where("booked_count > 0").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DecrementBooked - get rows affected: %w", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNegativeBookedCount
	}
	return nil
}

// Stats aggregates the slot-side statistics for a date range in one query.
func (r *Repository) Stats(ctx context.Context, filter domain.StatsRangeFilter) (*domain.SlotStatistics, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE is_available AND booked_count < capacity)",
		"COUNT(*) FILTER (WHERE booked_count >= capacity)",
		"COALESCE(SUM(capacity), 0)",
		"COALESCE(SUM(booked_count), 0)",
	).
		From(table).
		Where(squirrel.GtOrEq{"slot_date": filter.FromDate.Format(domain.DateFormat)}).
		Where(squirrel.LtOrEq{"slot_date": filter.ToDate.Format(domain.DateFormat)})

	if filter.AppointmentType != nil {
		builder = builder.Where(squirrel.Eq{"appointment_type": *filter.AppointmentType})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - build select query: %w", ErrBuildQuery, err)
	}

	var stats domain.SlotStatistics
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalSlots,
		&stats.AvailableSlots,
		&stats.FullyBookedSlots,
		&stats.TotalCapacity,
		&stats.TotalBooked,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Stats - scan aggregates: %w", ErrScanRow, err)
	}

	stats.Utilization = domain.Rate(stats.TotalBooked, stats.TotalCapacity)
	return &stats, nil
}

func scanSlot(row *sql.Row) (*domain.AppointmentSlot, error) {
	var s domain.AppointmentSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.InterviewerID,
		&s.SlotDate,
		&s.StartTime,
		&s.EndTime,
		&s.DurationMinutes,
		&s.AppointmentType,
		&s.Timezone,
		&s.Capacity,
		&s.BookedCount,
		&s.IsAvailable,
		&s.RequiresApproval,
		&s.CancellationDeadlineHours,
		&s.ParentSlotID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}

func scanSlots(rows *sql.Rows) ([]*domain.AppointmentSlot, error) {
	slots := make([]*domain.AppointmentSlot, 0)

	for rows.Next() {
		var s domain.AppointmentSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&s.InterviewerID,
			&s.SlotDate,
			&s.StartTime,
			&s.EndTime,
			&s.DurationMinutes,
			&s.AppointmentType,
			&s.Timezone,
			&s.Capacity,
			&s.BookedCount,
			&s.IsAvailable,
			&s.RequiresApproval,
			&s.CancellationDeadlineHours,
			&s.ParentSlotID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %w", ErrScanRow, err)
		}

		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time
		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %w", ErrScanRow, err)
	}

	return slots, nil
}
