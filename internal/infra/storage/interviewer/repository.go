package interviewer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/memberhq/SMP-AppointmentService/internal/domain"
	"github.com/memberhq/SMP-AppointmentService/pkg/dbmetrics"
	"github.com/memberhq/SMP-AppointmentService/pkg/psqlbuilder"
)

const table = "interviewers"

const uniqueViolation = pq.ErrorCode("23505")

var interviewerColumns = []string{
	"id",
	"name",
	"email",
	"appointment_types",
	"interview_modes",
	"weekly_availability",
	"buffer_minutes",
	"max_daily_appointments",
	"advance_booking_days",
	"auto_approve",
	"total_appointments",
	"completed_appointments",
	"average_rating",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository persists interviewers. The rolling performance counters,
// including the rating average, are updated in single statements so
// concurrent completions never lose increments.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an interviewer repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts an interviewer and fills in its generated id and timestamps.
func (r *Repository) Create(ctx context.Context, i *domain.Interviewer) (*domain.Interviewer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"name",
			"email",
			"appointment_types",
			"interview_modes",
			"weekly_availability",
			"buffer_minutes",
			"max_daily_appointments",
			"advance_booking_days",
			"auto_approve",
			"is_active",
		).
		Values(
			i.Name,
			i.Email,
			pq.Array(typesToStrings(i.AppointmentTypes)),
			pq.Array(modesToStrings(i.InterviewModes)),
			i.WeeklyAvailability,
			i.BufferMinutes,
			i.MaxDailyAppointments,
			i.AdvanceBookingDays,
			i.AutoApprove,
			i.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&i.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	i.CreatedAt = createdAt.Time
	i.UpdatedAt = updatedAt.Time
	return i, nil
}

// GetByID fetches one interviewer.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Interviewer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(interviewerColumns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	i, err := scanInterviewer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrInterviewerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan interviewer: %w", ErrScanRow, err)
	}
	return i, nil
}

// ListActive returns every active interviewer ordered by name.
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Interviewer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(interviewerColumns...).
		From(table).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	interviewers := make([]*domain.Interviewer, 0)
	for rows.Next() {
		i, err := scanInterviewer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %w", ErrScanRow, err)
		}
		interviewers = append(interviewers, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows error: %w", ErrScanRow, err)
	}
	return interviewers, nil
}

// Update rewrites the interviewer's profile and scheduling settings. The
// rolling counters are owned by RecordBooking and RecordCompletion.
func (r *Repository) Update(ctx context.Context, i *domain.Interviewer) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", i.Name).
		Set("appointment_types", pq.Array(typesToStrings(i.AppointmentTypes))).
		Set("interview_modes", pq.Array(modesToStrings(i.InterviewModes))).
		Set("weekly_availability", i.WeeklyAvailability).
		Set("buffer_minutes", i.BufferMinutes).
		Set("max_daily_appointments", i.MaxDailyAppointments).
		Set("advance_booking_days", i.AdvanceBookingDays).
		Set("auto_approve", i.AutoApprove).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": i.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// SetActive toggles whether the interviewer is offered for booking.
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetActive", query, args)
}

// RecordBooking bumps total_appointments when a booking is created.
func (r *Repository) RecordBooking(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("total_appointments", squirrel.Expr("total_appointments + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordBooking - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "RecordBooking", query, args)
}

// RecordCompletion bumps completed_appointments and, when a rating was
// given, folds it into the rolling average in the same statement. The
// rating_count column exists only to make the average incremental.
func (r *Repository) RecordCompletion(ctx context.Context, id int64, rating *int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("completed_appointments", squirrel.Expr("completed_appointments + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if rating != nil {
		builder = builder.
			Set("average_rating", squirrel.Expr(
				"(average_rating * rating_count + ?) / (rating_count + 1)", *rating)).
			Set("rating_count", squirrel.Expr("rating_count + 1"))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: RecordCompletion - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "RecordCompletion", query, args)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %w", ErrExecQuery, method, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrInterviewerNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInterviewer(row rowScanner) (*domain.Interviewer, error) {
	var i domain.Interviewer
	var appointmentTypes, interviewModes []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Email,
		pq.Array(&appointmentTypes),
		pq.Array(&interviewModes),
		&i.WeeklyAvailability,
		&i.BufferMinutes,
		&i.MaxDailyAppointments,
		&i.AdvanceBookingDays,
		&i.AutoApprove,
		&i.TotalAppointments,
		&i.CompletedAppointments,
		&i.AverageRating,
		&i.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	i.AppointmentTypes = make([]domain.AppointmentType, 0, len(appointmentTypes))
	for _, t := range appointmentTypes {
		i.AppointmentTypes = append(i.AppointmentTypes, domain.AppointmentType(t))
	}
	i.InterviewModes = make([]domain.InterviewMode, 0, len(interviewModes))
	for _, m := range interviewModes {
		i.InterviewModes = append(i.InterviewModes, domain.InterviewMode(m))
	}

	i.CreatedAt = createdAt.Time
	i.UpdatedAt = updatedAt.Time
	return &i, nil
}

func typesToStrings(types []domain.AppointmentType) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func modesToStrings(modes []domain.InterviewMode) []string {
	out := make([]string, 0, len(modes))
	for _, m := range modes {
		out = append(out, string(m))
	}
	return out
}
