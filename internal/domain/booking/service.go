package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service is the query facade: the two operations the engine exposes, plus
// the booking lifecycle reads and the cancel transition. ListSlots is
// read-only and safe for any number of concurrent callers; CreateBooking is
// the single contended write.
type Service struct {
	loader    *Loader
	committer *Committer
	bookings  BookingRepository
}

func NewService(src ScheduleSource, bookings BookingRepository) *Service {
	loader := NewLoader(src)
	return &Service{
		loader:    loader,
		committer: NewCommitter(loader, bookings),
		bookings:  bookings,
	}
}

// ListSlots returns every classified candidate window for the doctor,
// service and date. No availability is not an error: a closed day or a
// fully blocked day returns an empty or fully-blocked list.
func (s *Service) ListSlots(ctx context.Context, doctorID, serviceID uuid.UUID, date time.Time, role ViewerRole) ([]SlotDescriptor, error) {
	cs, err := s.loader.Load(ctx, doctorID, serviceID, date)
	if err != nil {
		return nil, err
	}
	if cs.FullDayClosed || len(cs.Windows) == 0 {
		return []SlotDescriptor{}, nil
	}
	return Generate(cs, role), nil
}

// CreateBooking is the sole mutating entry point.
func (s *Service) CreateBooking(ctx context.Context, req BookingRequest) (*Booking, error) {
	return s.committer.Book(ctx, req)
}

// GetBooking resolves a booking by id.
func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// GetBookingByCode resolves a booking by its human-readable code.
func (s *Service) GetBookingByCode(ctx context.Context, code string) (*Booking, error) {
	return s.bookings.GetByCode(ctx, code)
}

// ListPatientBookings lists a patient's bookings, newest first.
func (s *Service) ListPatientBookings(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Booking, int, error) {
	return s.bookings.ListByPatient(ctx, patientID, limit, offset)
}

// ListDoctorBookings lists a doctor's bookings for one date.
func (s *Service) ListDoctorBookings(ctx context.Context, doctorID uuid.UUID, date time.Time, limit, offset int) ([]*Booking, int, error) {
	return s.bookings.ListByDoctorDate(ctx, doctorID, date, limit, offset)
}

// CancelBooking transitions a pending or confirmed booking to cancelled,
// freeing its window immediately.
func (s *Service) CancelBooking(ctx context.Context, id uuid.UUID) (*Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !Occupying(b.Status) {
		return nil, ErrInvalidTransition
	}
	if err := s.bookings.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled
	return b, nil
}
