package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// exclusionViolation is the SQLSTATE raised by the booking_no_overlap
// exclusion constraint. It is what actually prevents double-booking when
// two writers race past the in-process check.
const exclusionViolation = "23P01"

// =========== Schedule Source ===========

type scheduleSourcePG struct{ pool *pgxpool.Pool }

func NewScheduleSourcePG(pool *pgxpool.Pool) ScheduleSource {
	return &scheduleSourcePG{pool: pool}
}

func (r *scheduleSourcePG) ServiceDuration(ctx context.Context, serviceID uuid.UUID) (int, error) {
	var duration int
	err := r.pool.QueryRow(ctx,
		`SELECT duration_minutes FROM service WHERE id = $1 AND active`, serviceID).Scan(&duration)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrUnknownService
	}
	return duration, err
}

func (r *scheduleSourcePG) SlotPolicy(ctx context.Context, doctorID, serviceID uuid.UUID) (*SlotPolicy, error) {
	var p SlotPolicy
	err := r.pool.QueryRow(ctx, `
		SELECT doctor_id, service_id, interval_minutes, buffer_minutes, min_advance_hours, max_advance_days
		FROM slot_policy WHERE doctor_id = $1 AND service_id = $2`,
		doctorID, serviceID).
		Scan(&p.DoctorID, &p.ServiceID, &p.IntervalMinutes, &p.BufferMinutes, &p.MinAdvanceHours, &p.MaxAdvanceDays)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUnconfiguredPolicy
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *scheduleSourcePG) WorkingWindows(ctx context.Context, doctorID uuid.UUID, weekday int) ([]WorkingWindow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, weekday, start_minute, end_minute, active
		FROM working_window
		WHERE doctor_id = $1 AND weekday = $2 AND active
		ORDER BY start_minute ASC`, doctorID, weekday)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []WorkingWindow
	for rows.Next() {
		var w WorkingWindow
		if err := rows.Scan(&w.ID, &w.DoctorID, &w.Weekday, &w.StartMinute, &w.EndMinute, &w.Active); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (r *scheduleSourcePG) Overrides(ctx context.Context, doctorID uuid.UUID, weekday int, date time.Time) ([]Override, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, weekday, override_date, full_day, start_minute, end_minute, kind, reason, staff_note
		FROM schedule_override
		WHERE doctor_id = $1 AND (weekday = $2 OR override_date = $3)
		ORDER BY start_minute ASC`, doctorID, weekday, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Override
	for rows.Next() {
		var o Override
		if err := rows.Scan(&o.ID, &o.DoctorID, &o.Weekday, &o.Date, &o.FullDay,
			&o.StartMinute, &o.EndMinute, &o.Kind, &o.Reason, &o.StaffNote); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

func (r *scheduleSourcePG) ActiveBookings(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Booking, error) {
	rows, err := r.pool.Query(ctx, bookingSelect+`
		WHERE doctor_id = $1 AND booking_date = $2 AND status IN ('pending','confirmed')
		ORDER BY start_minute ASC`, doctorID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *b)
	}
	return items, rows.Err()
}

// =========== Booking Repository ===========

type bookingRepoPG struct{ pool *pgxpool.Pool }

func NewBookingRepoPG(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepoPG{pool: pool}
}

const bookingSelect = `
	SELECT id, code, doctor_id, patient_id, service_id, booking_date,
		start_minute, end_minute, status, notes, created_at, updated_at
	FROM booking`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.Code, &b.DoctorID, &b.PatientID, &b.ServiceID, &b.Date,
		&b.StartMinute, &b.EndMinute, &b.Status, &b.Notes, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepoPG) Insert(ctx context.Context, b *Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO booking (id, code, doctor_id, patient_id, service_id, booking_date,
			start_minute, end_minute, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		b.ID, b.Code, b.DoctorID, b.PatientID, b.ServiceID, b.Date,
		b.StartMinute, b.EndMinute, b.Status, b.Notes).
		Scan(&b.CreatedAt, &b.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == exclusionViolation {
		return ErrConflict
	}
	return err
}

func (r *bookingRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, bookingSelect+` WHERE id = $1`, id))
}

func (r *bookingRepoPG) GetByCode(ctx context.Context, code string) (*Booking, error) {
	return scanBooking(r.pool.QueryRow(ctx, bookingSelect+` WHERE code = $1`, code))
}

func (r *bookingRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM booking WHERE patient_id = $1`, patientID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, bookingSelect+`
		WHERE patient_id = $1
		ORDER BY booking_date DESC, start_minute DESC LIMIT $2 OFFSET $3`, patientID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *bookingRepoPG) ListByDoctorDate(ctx context.Context, doctorID uuid.UUID, date time.Time, limit, offset int) ([]*Booking, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM booking WHERE doctor_id = $1 AND booking_date = $2`, doctorID, date).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, bookingSelect+`
		WHERE doctor_id = $1 AND booking_date = $2
		ORDER BY start_minute ASC LIMIT $3 OFFSET $4`, doctorID, date, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, rows.Err()
}

func (r *bookingRepoPG) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE booking SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrBookingNotFound
	}
	return nil
}
