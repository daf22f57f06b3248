package booking

import (
	"time"

	"github.com/google/uuid"
)

// ViewerRole determines which slot classifications a caller may see. The
// role is always passed explicitly; the engine never inspects ambient
// request state.
type ViewerRole string

const (
	ViewerPatient ViewerRole = "patient"
	ViewerStaff   ViewerRole = "staff"
)

// SlotStatus classifies a candidate window.
type SlotStatus string

const (
	SlotAvailable      SlotStatus = "available"
	SlotBooked         SlotStatus = "booked"
	SlotHidden         SlotStatus = "hidden"
	SlotStaffOnly      SlotStatus = "staff_only"
	SlotStaffAvailable SlotStatus = "staff_available"
	SlotBufferConflict SlotStatus = "buffer_conflict"
)

// Booking statuses. Only pending and confirmed occupy time on the calendar.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Occupying reports whether a booking in the given status blocks its window.
func Occupying(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// WorkingWindow is one contiguous availability window for a doctor on a
// weekday. A doctor may have several per weekday (morning and afternoon).
type WorkingWindow struct {
	ID          uuid.UUID `db:"id" json:"id"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Weekday     int       `db:"weekday" json:"weekday"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	Active      bool      `db:"active" json:"active"`
}

// OverrideKind distinguishes the two blocking behaviours of an override.
type OverrideKind string

const (
	// OverrideHidden blocks a range from every viewer.
	OverrideHidden OverrideKind = "hidden"
	// OverrideStaffOnly hides a range from patients but exposes it, with
	// its note, to staff viewers.
	OverrideStaffOnly OverrideKind = "staff_only"
)

// Override is a weekday-recurring or date-specific exception to the weekly
// template: a full-day closure or a partial blocked range.
type Override struct {
	ID          uuid.UUID    `db:"id" json:"id"`
	DoctorID    uuid.UUID    `db:"doctor_id" json:"doctor_id"`
	Weekday     *int         `db:"weekday" json:"weekday,omitempty"`
	Date        *time.Time   `db:"override_date" json:"date,omitempty"`
	FullDay     bool         `db:"full_day" json:"full_day"`
	StartMinute int          `db:"start_minute" json:"start_minute"`
	EndMinute   int          `db:"end_minute" json:"end_minute"`
	Kind        OverrideKind `db:"kind" json:"kind"`
	Reason      string       `db:"reason" json:"reason,omitempty"`
	StaffNote   string       `db:"staff_note" json:"staff_note,omitempty"`
}

// SlotPolicy is the per doctor/service generation configuration. A pair
// without a policy is not bookable.
type SlotPolicy struct {
	DoctorID        uuid.UUID `db:"doctor_id" json:"doctor_id"`
	ServiceID       uuid.UUID `db:"service_id" json:"service_id"`
	IntervalMinutes int       `db:"interval_minutes" json:"interval_minutes"`
	BufferMinutes   int       `db:"buffer_minutes" json:"buffer_minutes"`
	MinAdvanceHours int       `db:"min_advance_hours" json:"min_advance_hours"`
	MaxAdvanceDays  int       `db:"max_advance_days" json:"max_advance_days"`
}

// Booking is a committed reservation.
type Booking struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	DoctorID    uuid.UUID `db:"doctor_id" json:"doctor_id"`
	PatientID   uuid.UUID `db:"patient_id" json:"patient_id"`
	ServiceID   uuid.UUID `db:"service_id" json:"service_id"`
	Date        time.Time `db:"booking_date" json:"date"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	Status      string    `db:"status" json:"status"`
	Notes       string    `db:"notes" json:"notes,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// StartClock returns the booking start as "HH:MM".
func (b *Booking) StartClock() string { return FormatClock(b.StartMinute) }

// EndClock returns the booking end as "HH:MM".
func (b *Booking) EndClock() string { return FormatClock(b.EndMinute) }

// SlotDescriptor is the engine's output unit: one classified candidate
// window. Computed fresh on every query, never persisted. The full list is
// the contract; blocked slots are emitted too so staff views can render
// the reason.
type SlotDescriptor struct {
	Time        string     `json:"time"`
	Status      SlotStatus `json:"status"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	Duration    int        `json:"duration"`
	Interval    int        `json:"interval"`
	BufferTime  int        `json:"buffer_time"`
	BlockReason string     `json:"block_reason,omitempty"`
	StaffNotes  string     `json:"staff_notes,omitempty"`
}
