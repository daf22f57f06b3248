package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinovia/clinic-api/internal/domain/booking"
)

type Service struct {
	doctors   DoctorRepository
	services  ServiceRepository
	schedules ScheduleAdminRepository
}

func NewService(doctors DoctorRepository, services ServiceRepository, schedules ScheduleAdminRepository) *Service {
	return &Service{doctors: doctors, services: services, schedules: schedules}
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.FullName == "" {
		return fmt.Errorf("full_name is required")
	}
	d.Active = true
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

// -- Medical service --

func (s *Service) CreateMedicalService(ctx context.Context, m *MedicalService) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	if m.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	m.Active = true
	return s.services.Create(ctx, m)
}

func (s *Service) GetMedicalService(ctx context.Context, id uuid.UUID) (*MedicalService, error) {
	return s.services.GetByID(ctx, id)
}

func (s *Service) UpdateMedicalService(ctx context.Context, m *MedicalService) error {
	if m.DurationMinutes <= 0 {
		return fmt.Errorf("duration_minutes must be positive")
	}
	return s.services.Update(ctx, m)
}

func (s *Service) DeleteMedicalService(ctx context.Context, id uuid.UUID) error {
	return s.services.Delete(ctx, id)
}

func (s *Service) ListMedicalServices(ctx context.Context, limit, offset int) ([]*MedicalService, int, error) {
	return s.services.List(ctx, limit, offset)
}

// -- Weekly schedule --

func (s *Service) AddWorkingWindow(ctx context.Context, w *booking.WorkingWindow) error {
	if w.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if w.Weekday < 0 || w.Weekday > 6 {
		return fmt.Errorf("weekday must be 0-6")
	}
	if w.StartMinute >= w.EndMinute {
		return fmt.Errorf("start_minute must be before end_minute")
	}
	w.Active = true
	return s.schedules.CreateWindow(ctx, w)
}

func (s *Service) ListWorkingWindows(ctx context.Context, doctorID uuid.UUID) ([]booking.WorkingWindow, error) {
	return s.schedules.ListWindows(ctx, doctorID)
}

func (s *Service) RemoveWorkingWindow(ctx context.Context, id uuid.UUID) error {
	return s.schedules.DeleteWindow(ctx, id)
}

// -- Overrides --

func (s *Service) AddOverride(ctx context.Context, o *booking.Override) error {
	if o.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if o.Weekday == nil && o.Date == nil {
		return fmt.Errorf("either weekday or date is required")
	}
	if o.Weekday != nil && (*o.Weekday < 0 || *o.Weekday > 6) {
		return fmt.Errorf("weekday must be 0-6")
	}
	if !o.FullDay && o.StartMinute >= o.EndMinute {
		return fmt.Errorf("start_minute must be before end_minute")
	}
	switch o.Kind {
	case booking.OverrideHidden, booking.OverrideStaffOnly:
	case "":
		o.Kind = booking.OverrideHidden
	default:
		return fmt.Errorf("invalid override kind: %s", o.Kind)
	}
	return s.schedules.CreateOverride(ctx, o)
}

func (s *Service) ListOverrides(ctx context.Context, doctorID uuid.UUID) ([]booking.Override, error) {
	return s.schedules.ListOverrides(ctx, doctorID)
}

func (s *Service) RemoveOverride(ctx context.Context, id uuid.UUID) error {
	return s.schedules.DeleteOverride(ctx, id)
}

// -- Slot policy --

// SetSlotPolicy creates or replaces the policy for a doctor/service pair.
// Pairs without a policy stay unbookable; there is no default.
func (s *Service) SetSlotPolicy(ctx context.Context, p *booking.SlotPolicy) error {
	if p.DoctorID == uuid.Nil || p.ServiceID == uuid.Nil {
		return fmt.Errorf("doctor_id and service_id are required")
	}
	if p.IntervalMinutes <= 0 {
		return fmt.Errorf("interval_minutes must be positive")
	}
	if p.BufferMinutes < 0 {
		return fmt.Errorf("buffer_minutes must not be negative")
	}
	if p.MinAdvanceHours < 0 || p.MaxAdvanceDays < 0 {
		return fmt.Errorf("advance bounds must not be negative")
	}
	return s.schedules.UpsertPolicy(ctx, p)
}

func (s *Service) GetSlotPolicy(ctx context.Context, doctorID, serviceID uuid.UUID) (*booking.SlotPolicy, error) {
	return s.schedules.GetPolicy(ctx, doctorID, serviceID)
}

func (s *Service) RemoveSlotPolicy(ctx context.Context, doctorID, serviceID uuid.UUID) error {
	return s.schedules.DeletePolicy(ctx, doctorID, serviceID)
}
