package booking

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the caller-selected window to commit.
type BookingRequest struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	ServiceID uuid.UUID `json:"service_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Notes     string    `json:"notes,omitempty"`
}

// Committer validates a requested window against fresh state and performs
// the one write of the engine. The in-process overlap check is an
// optimization for a fast 409; the storage layer's exclusion constraint is
// the actual double-booking guarantee under concurrent writers.
type Committer struct {
	loader   *Loader
	bookings BookingRepository
	now      func() time.Time
}

func NewCommitter(loader *Loader, bookings BookingRepository) *Committer {
	return &Committer{loader: loader, bookings: bookings, now: time.Now}
}

// Book commits a booking or reports why it cannot.
func (c *Committer) Book(ctx context.Context, req BookingRequest) (*Booking, error) {
	if req.DoctorID == uuid.Nil {
		return nil, fmt.Errorf("%w: doctor_id is required", ErrValidation)
	}
	if req.PatientID == uuid.Nil {
		return nil, fmt.Errorf("%w: patient_id is required", ErrValidation)
	}
	if req.ServiceID == uuid.Nil {
		return nil, fmt.Errorf("%w: service_id is required", ErrValidation)
	}

	date, err := ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: start_time: %v", ErrValidation, err)
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: end_time: %v", ErrValidation, err)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: start_time must be before end_time", ErrValidation)
	}

	// Never trust a "slot is free" claim from an earlier query: state can
	// have changed, so re-load right before the write.
	cs, err := c.loader.Load(ctx, req.DoctorID, req.ServiceID, date)
	if err != nil {
		return nil, err
	}

	if err := c.checkAdvanceBounds(cs.Policy, date, start); err != nil {
		return nil, err
	}
	if cs.FullDayClosed {
		return nil, fmt.Errorf("%w: doctor is unavailable on %s", ErrConflict, req.Date)
	}
	for _, b := range cs.Bookings {
		if Overlaps(start, end, b.StartMinute, b.EndMinute) {
			return nil, ErrConflict
		}
	}

	booking := &Booking{
		ID:          uuid.New(),
		Code:        newBookingCode(date),
		DoctorID:    req.DoctorID,
		PatientID:   req.PatientID,
		ServiceID:   req.ServiceID,
		Date:        date,
		StartMinute: start,
		EndMinute:   end,
		Status:      StatusConfirmed,
		Notes:       req.Notes,
	}

	if err := c.bookings.Insert(ctx, booking); err != nil {
		return nil, err
	}
	return booking, nil
}

// checkAdvanceBounds enforces the policy's notice window: no booking in the
// past or closer than the minimum notice, none beyond the horizon.
func (c *Committer) checkAdvanceBounds(policy *SlotPolicy, date time.Time, start int) error {
	// Dates parse as UTC midnight, so UTC is the civil calendar reference
	// for both sides of the comparison regardless of the server zone.
	now := c.now().UTC()
	slotStart := date.Add(time.Duration(start) * time.Minute)

	if policy.MinAdvanceHours > 0 {
		earliest := now.Add(time.Duration(policy.MinAdvanceHours) * time.Hour)
		if slotStart.Before(earliest) {
			return fmt.Errorf("%w: bookings require %d hours notice", ErrValidation, policy.MinAdvanceHours)
		}
	} else if slotStart.Before(now) {
		return fmt.Errorf("%w: booking is in the past", ErrValidation)
	}

	if policy.MaxAdvanceDays > 0 {
		horizon := now.AddDate(0, 0, policy.MaxAdvanceDays)
		if slotStart.After(horizon) {
			return fmt.Errorf("%w: bookings open at most %d days ahead", ErrValidation, policy.MaxAdvanceDays)
		}
	}
	return nil
}

const codeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// newBookingCode builds the human-readable code, e.g. APT-20260901-K7PQ.
func newBookingCode(date time.Time) string {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// crypto/rand failing means the process is in a bad way; fall back
		// to the uuid source rather than panicking in the request path.
		copy(buf[:], uuid.New().String())
	}
	suffix := make([]byte, 4)
	for i, b := range buf {
		suffix[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return fmt.Sprintf("APT-%s-%s", date.Format("20060102"), suffix)
}
