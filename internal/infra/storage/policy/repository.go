package policy

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/pkg/dbmetrics"
	"github.com/MBrunoS/ezpet-sub000/pkg/psqlbuilder"
)

// Reuse the dbmetrics executor interfaces
type DBExecutor = dbmetrics.DBExecutor

// Repository persists calendar policies and their weekly working hours.
// A policy is stored as one calendar_policies row plus exactly seven
// working_hours rows keyed by weekday.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a policy repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantID loads the tenant's calendar policy with its working hours
func (r *Repository) GetByTenantID(ctx context.Context, tenantID int64) (*domain.CalendarPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"tenant_id",
		"timezone",
		"lunch_start",
		"lunch_end",
		"appointment_capacity",
		"slot_granularity_minutes",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("calendar_policies").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.CalendarPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.TenantID,
		&p.Timezone,
		&p.LunchStart,
		&p.LunchEnd,
		&p.AppointmentCapacity,
		&p.SlotGranularityMinutes,
		&p.AdvanceBookingDays,
		&p.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantID - scan policy: %w", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	if err := r.loadWorkingHours(ctx, executor, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *Repository) loadWorkingHours(ctx context.Context, executor DBExecutor, p *domain.CalendarPolicy) error {
	query, args, err := psqlbuilder.Select(
		"weekday",
		"is_open",
		"open_time",
		"close_time",
	).
		From("working_hours").
		Where(squirrel.Eq{"policy_id": p.ID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadWorkingHours - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	seen := 0
	for rows.Next() {
		var weekday int
		var dh domain.DayHours

		if err := rows.Scan(&weekday, &dh.IsOpen, &dh.OpenTime, &dh.CloseTime); err != nil {
			return fmt.Errorf("%w: loadWorkingHours - scan row: %w", ErrScanRow, err)
		}
		if weekday < 0 || weekday > 6 {
			return ErrCorruptWorkingHours
		}

		dh.Weekday = time.Weekday(weekday)
		p.WorkingHours[weekday] = dh
		seen++
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadWorkingHours - rows error: %w", ErrScanRow, err)
	}

	if seen != 7 {
		return ErrCorruptWorkingHours
	}

	return nil
}

// Upsert writes the tenant's policy and replaces its working hours.
// Callers run this inside a transaction so the policy row and the seven
// weekday rows change together.
func (r *Repository) Upsert(ctx context.Context, p *domain.CalendarPolicy) (*domain.CalendarPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("calendar_policies").
		Columns(
			"tenant_id",
			"timezone",
			"lunch_start",
			"lunch_end",
			"appointment_capacity",
			"slot_granularity_minutes",
			"advance_booking_days",
			"min_booking_notice_minutes",
		).
		Values(
			p.TenantID,
			p.Timezone,
			p.LunchStart,
			p.LunchEnd,
			p.AppointmentCapacity,
			p.SlotGranularityMinutes,
			p.AdvanceBookingDays,
			p.MinBookingNoticeMinutes,
		).
		Suffix(`ON CONFLICT (tenant_id) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			lunch_start = EXCLUDED.lunch_start,
			lunch_end = EXCLUDED.lunch_end,
			appointment_capacity = EXCLUDED.appointment_capacity,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	if err := r.replaceWorkingHours(ctx, executor, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (r *Repository) replaceWorkingHours(ctx context.Context, executor DBExecutor, p *domain.CalendarPolicy) error {
	deleteQuery, deleteArgs, err := psqlbuilder.Delete("working_hours").
		Where(squirrel.Eq{"policy_id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceWorkingHours - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: replaceWorkingHours - execute delete: %w", ErrExecQuery, err)
	}

	insertBuilder := psqlbuilder.Insert("working_hours").
		Columns("policy_id", "weekday", "is_open", "open_time", "close_time")

	for weekday, dh := range p.WorkingHours {
		var openTime, closeTime interface{}
		if dh.IsOpen {
			openTime = dh.OpenTime
			closeTime = dh.CloseTime
		}
		insertBuilder = insertBuilder.Values(p.ID, weekday, dh.IsOpen, openTime, closeTime)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: replaceWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: replaceWorkingHours - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}
