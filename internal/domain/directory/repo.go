package directory

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinovia/clinic-api/internal/domain/booking"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, s *MedicalService) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalService, error)
	Update(ctx context.Context, s *MedicalService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*MedicalService, int, error)
}

// ScheduleAdminRepository is the write side of the rows the booking engine
// consumes read-only: weekly windows, overrides and slot policies.
type ScheduleAdminRepository interface {
	CreateWindow(ctx context.Context, w *booking.WorkingWindow) error
	ListWindows(ctx context.Context, doctorID uuid.UUID) ([]booking.WorkingWindow, error)
	DeleteWindow(ctx context.Context, id uuid.UUID) error

	CreateOverride(ctx context.Context, o *booking.Override) error
	ListOverrides(ctx context.Context, doctorID uuid.UUID) ([]booking.Override, error)
	DeleteOverride(ctx context.Context, id uuid.UUID) error

	UpsertPolicy(ctx context.Context, p *booking.SlotPolicy) error
	GetPolicy(ctx context.Context, doctorID, serviceID uuid.UUID) (*booking.SlotPolicy, error)
	DeletePolicy(ctx context.Context, doctorID, serviceID uuid.UUID) error
}
