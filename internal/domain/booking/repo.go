package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ScheduleSource is the read side consumed by the constraint loader. The
// rows it returns are owned by the directory subsystem; the engine treats
// them as an immutable snapshot.
type ScheduleSource interface {
	// ServiceDuration returns the duration in minutes of an active service,
	// or ErrUnknownService.
	ServiceDuration(ctx context.Context, serviceID uuid.UUID) (int, error)

	// SlotPolicy returns the policy for a doctor/service pair, or
	// ErrUnconfiguredPolicy when none exists.
	SlotPolicy(ctx context.Context, doctorID, serviceID uuid.UUID) (*SlotPolicy, error)

	// WorkingWindows returns the active windows for a doctor on a weekday.
	// An empty result means the doctor is closed that day.
	WorkingWindows(ctx context.Context, doctorID uuid.UUID, weekday int) ([]WorkingWindow, error)

	// Overrides returns the overrides matching either the weekday
	// (recurring) or the exact date (one-off).
	Overrides(ctx context.Context, doctorID uuid.UUID, weekday int, date time.Time) ([]Override, error)

	// ActiveBookings returns the pending and confirmed bookings for a
	// doctor on a date.
	ActiveBookings(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Booking, error)
}

// BookingRepository is the write side. Insert must be atomic with respect to
// concurrent inserts for the same doctor and date: the storage layer, not
// the application check, is required to reject overlapping {pending,
// confirmed} rows, via an exclusion constraint or a serializable
// transaction. Insert returns ErrConflict when that guarantee fires.
type BookingRepository interface {
	Insert(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByCode(ctx context.Context, code string) (*Booking, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Booking, int, error)
	ListByDoctorDate(ctx context.Context, doctorID uuid.UUID, date time.Time, limit, offset int) ([]*Booking, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}
