package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clinovia/clinic-api/internal/domain/booking"
)

var ErrNotFound = errors.New("not found")

// =========== Doctor Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorRepoPG(pool *pgxpool.Pool) DoctorRepository { return &doctorRepoPG{pool: pool} }

const doctorCols = `id, full_name, specialty, email, phone, active, created_at, updated_at`

func scanDoctor(row pgx.Row) (*Doctor, error) {
	var d Doctor
	err := row.Scan(&d.ID, &d.FullName, &d.Specialty, &d.Email, &d.Phone, &d.Active, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, d *Doctor) error {
	d.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO doctor (id, full_name, specialty, email, phone, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		d.ID, d.FullName, d.Specialty, d.Email, d.Phone, d.Active).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor WHERE id = $1`, id))
}

func (r *doctorRepoPG) Update(ctx context.Context, d *Doctor) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE doctor SET full_name=$2, specialty=$3, email=$4, phone=$5, active=$6, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.FullName, d.Specialty, d.Email, d.Phone, d.Active)
	return err
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM doctor WHERE id = $1`, id)
	return err
}

func (r *doctorRepoPG) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctor`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+doctorCols+` FROM doctor ORDER BY full_name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Doctor
	for rows.Next() {
		d, err := scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, rows.Err()
}

// =========== Medical Service Repository ===========

type serviceRepoPG struct{ pool *pgxpool.Pool }

func NewServiceRepoPG(pool *pgxpool.Pool) ServiceRepository { return &serviceRepoPG{pool: pool} }

const serviceCols = `id, name, description, duration_minutes, price, active, created_at, updated_at`

func scanService(row pgx.Row) (*MedicalService, error) {
	var m MedicalService
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.DurationMinutes, &m.Price, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *serviceRepoPG) Create(ctx context.Context, m *MedicalService) error {
	m.ID = uuid.New()
	return r.pool.QueryRow(ctx, `
		INSERT INTO service (id, name, description, duration_minutes, price, active)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		m.ID, m.Name, m.Description, m.DurationMinutes, m.Price, m.Active).
		Scan(&m.CreatedAt, &m.UpdatedAt)
}

func (r *serviceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalService, error) {
	return scanService(r.pool.QueryRow(ctx, `SELECT `+serviceCols+` FROM service WHERE id = $1`, id))
}

func (r *serviceRepoPG) Update(ctx context.Context, m *MedicalService) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE service SET name=$2, description=$3, duration_minutes=$4, price=$5, active=$6, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Description, m.DurationMinutes, m.Price, m.Active)
	return err
}

func (r *serviceRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM service WHERE id = $1`, id)
	return err
}

func (r *serviceRepoPG) List(ctx context.Context, limit, offset int) ([]*MedicalService, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM service`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+serviceCols+` FROM service ORDER BY name ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*MedicalService
	for rows.Next() {
		m, err := scanService(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, rows.Err()
}

// =========== Schedule Admin Repository ===========

type scheduleAdminRepoPG struct{ pool *pgxpool.Pool }

func NewScheduleAdminRepoPG(pool *pgxpool.Pool) ScheduleAdminRepository {
	return &scheduleAdminRepoPG{pool: pool}
}

func (r *scheduleAdminRepoPG) CreateWindow(ctx context.Context, w *booking.WorkingWindow) error {
	w.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO working_window (id, doctor_id, weekday, start_minute, end_minute, active)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		w.ID, w.DoctorID, w.Weekday, w.StartMinute, w.EndMinute, w.Active)
	return err
}

func (r *scheduleAdminRepoPG) ListWindows(ctx context.Context, doctorID uuid.UUID) ([]booking.WorkingWindow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, weekday, start_minute, end_minute, active
		FROM working_window WHERE doctor_id = $1
		ORDER BY weekday ASC, start_minute ASC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []booking.WorkingWindow
	for rows.Next() {
		var w booking.WorkingWindow
		if err := rows.Scan(&w.ID, &w.DoctorID, &w.Weekday, &w.StartMinute, &w.EndMinute, &w.Active); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (r *scheduleAdminRepoPG) DeleteWindow(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM working_window WHERE id = $1`, id)
	return err
}

func (r *scheduleAdminRepoPG) CreateOverride(ctx context.Context, o *booking.Override) error {
	o.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO schedule_override (id, doctor_id, weekday, override_date, full_day,
			start_minute, end_minute, kind, reason, staff_note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		o.ID, o.DoctorID, o.Weekday, o.Date, o.FullDay,
		o.StartMinute, o.EndMinute, o.Kind, o.Reason, o.StaffNote)
	return err
}

func (r *scheduleAdminRepoPG) ListOverrides(ctx context.Context, doctorID uuid.UUID) ([]booking.Override, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, doctor_id, weekday, override_date, full_day, start_minute, end_minute, kind, reason, staff_note
		FROM schedule_override WHERE doctor_id = $1
		ORDER BY override_date ASC NULLS LAST, weekday ASC NULLS LAST, start_minute ASC`, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []booking.Override
	for rows.Next() {
		var o booking.Override
		if err := rows.Scan(&o.ID, &o.DoctorID, &o.Weekday, &o.Date, &o.FullDay,
			&o.StartMinute, &o.EndMinute, &o.Kind, &o.Reason, &o.StaffNote); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

func (r *scheduleAdminRepoPG) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM schedule_override WHERE id = $1`, id)
	return err
}

func (r *scheduleAdminRepoPG) UpsertPolicy(ctx context.Context, p *booking.SlotPolicy) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO slot_policy (doctor_id, service_id, interval_minutes, buffer_minutes, min_advance_hours, max_advance_days)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (doctor_id, service_id) DO UPDATE SET
			interval_minutes = EXCLUDED.interval_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			min_advance_hours = EXCLUDED.min_advance_hours,
			max_advance_days = EXCLUDED.max_advance_days`,
		p.DoctorID, p.ServiceID, p.IntervalMinutes, p.BufferMinutes, p.MinAdvanceHours, p.MaxAdvanceDays)
	return err
}

func (r *scheduleAdminRepoPG) GetPolicy(ctx context.Context, doctorID, serviceID uuid.UUID) (*booking.SlotPolicy, error) {
	var p booking.SlotPolicy
	err := r.pool.QueryRow(ctx, `
		SELECT doctor_id, service_id, interval_minutes, buffer_minutes, min_advance_hours, max_advance_days
		FROM slot_policy WHERE doctor_id = $1 AND service_id = $2`, doctorID, serviceID).
		Scan(&p.DoctorID, &p.ServiceID, &p.IntervalMinutes, &p.BufferMinutes, &p.MinAdvanceHours, &p.MaxAdvanceDays)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *scheduleAdminRepoPG) DeletePolicy(ctx context.Context, doctorID, serviceID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM slot_policy WHERE doctor_id = $1 AND service_id = $2`, doctorID, serviceID)
	return err
}
