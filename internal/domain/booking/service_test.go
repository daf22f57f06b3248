package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

// liveSource layers the booking repository's state over a mockSource so the
// facade sees its own writes, the way the pg-backed source does.
type liveSource struct {
	*mockSource
	repo *mockBookingRepo
}

func (s *liveSource) ActiveBookings(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]Booking, error) {
	var out []Booking
	for _, b := range s.repo.byID {
		if b.DoctorID == doctorID && b.Date.Equal(date) && Occupying(b.Status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func newTestService(doctorID, serviceID uuid.UUID) (*Service, *mockBookingRepo) {
	repo := newMockBookingRepo()
	src := &liveSource{mockSource: fixtureSource(doctorID, serviceID), repo: repo}
	svc := NewService(src, repo)
	svc.committer.now = func() time.Time { return fixedNow }
	return svc, repo
}

func TestService_ListSlots_ClosedDayIsEmptyNotError(t *testing.T) {
	doctorID, serviceID := uuid.New(), uuid.New()
	svc, _ := newTestService(doctorID, serviceID)

	// A date with no working window.
	sunday := testDate.AddDate(0, 0, -1)
	slots, err := svc.ListSlots(context.Background(), doctorID, serviceID, sunday, ViewerPatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slots == nil || len(slots) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", slots)
	}
}

func TestService_ListSlots_FullDayOverrideIsEmpty(t *testing.T) {
	doctorID, serviceID := uuid.New(), uuid.New()
	svc, _ := newTestService(doctorID, serviceID)
	src := svc.loader.src.(*liveSource)
	src.overrides = append(src.overrides, Override{
		ID: uuid.New(), DoctorID: doctorID, Date: &testDate, FullDay: true, Reason: "holiday",
	})

	slots, err := svc.ListSlots(context.Background(), doctorID, serviceID, testDate, ViewerStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a closed day, got %d", len(slots))
	}
}

func TestService_BookThenRelist(t *testing.T) {
	doctorID, serviceID := uuid.New(), uuid.New()
	svc, _ := newTestService(doctorID, serviceID)
	ctx := context.Background()

	before, err := svc.ListSlots(ctx, doctorID, serviceID, testDate, ViewerPatient)
	if err != nil {
		t.Fatalf("list before: %v", err)
	}
	if got := slotByStart(t, before, "10:00").Status; got != SlotAvailable {
		t.Fatalf("10:00 should start available, got %s", got)
	}

	b, err := svc.CreateBooking(ctx, validRequest(doctorID, serviceID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	after, err := svc.ListSlots(ctx, doctorID, serviceID, testDate, ViewerPatient)
	if err != nil {
		t.Fatalf("list after: %v", err)
	}
	if got := slotByStart(t, after, "10:00").Status; got != SlotBooked {
		t.Errorf("10:00 should be booked after commit, got %s", got)
	}
	if len(after) != len(before) {
		t.Errorf("slot count changed across booking: %d vs %d", len(before), len(after))
	}

	// Double-booking the same window must be rejected.
	if _, err := svc.CreateBooking(ctx, validRequest(doctorID, serviceID)); !errors.Is(err, ErrConflict) {
		t.Errorf("expected ErrConflict on double booking, got %v", err)
	}

	// Cancelling frees the window.
	if _, err := svc.CancelBooking(ctx, b.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	freed, err := svc.ListSlots(ctx, doctorID, serviceID, testDate, ViewerPatient)
	if err != nil {
		t.Fatalf("list after cancel: %v", err)
	}
	if got := slotByStart(t, freed, "10:00").Status; got != SlotAvailable {
		t.Errorf("10:00 should be available after cancel, got %s", got)
	}
}

func TestService_CancelBooking_Transitions(t *testing.T) {
	doctorID, serviceID := uuid.New(), uuid.New()
	svc, _ := newTestService(doctorID, serviceID)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validRequest(doctorID, serviceID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	cancelled, err := svc.CancelBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Errorf("expected cancelled, got %s", cancelled.Status)
	}

	if _, err := svc.CancelBooking(ctx, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition on second cancel, got %v", err)
	}

	if _, err := svc.CancelBooking(ctx, uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
}

func TestService_GetBooking(t *testing.T) {
	doctorID, serviceID := uuid.New(), uuid.New()
	svc, _ := newTestService(doctorID, serviceID)
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, validRequest(doctorID, serviceID))
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}

	byID, err := svc.GetBooking(ctx, b.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Code != b.Code {
		t.Errorf("code mismatch: %s vs %s", byID.Code, b.Code)
	}

	byCode, err := svc.GetBookingByCode(ctx, b.Code)
	if err != nil {
		t.Fatalf("get by code: %v", err)
	}
	if byCode.ID != b.ID {
		t.Errorf("id mismatch: %s vs %s", byCode.ID, b.ID)
	}

	if _, err := svc.GetBooking(ctx, uuid.New()); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound, got %v", err)
	}
	if _, err := svc.GetBookingByCode(ctx, "APT-20260907-ZZZZ"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("expected ErrBookingNotFound by code, got %v", err)
	}
}

func TestService_ListBookings(t *testing.T) {
	doctorID, serviceID := uuid.New(), uuid.New()
	svc, _ := newTestService(doctorID, serviceID)
	ctx := context.Background()

	patientID := uuid.New()
	for _, slot := range []string{"09:00", "10:00", "11:00"} {
		req := validRequest(doctorID, serviceID)
		req.PatientID = patientID
		req.StartTime = slot
		end, _ := ParseClock(slot)
		req.EndTime = FormatClock(end + 30)
		if _, err := svc.CreateBooking(ctx, req); err != nil {
			t.Fatalf("create booking at %s: %v", slot, err)
		}
	}

	byPatient, total, err := svc.ListPatientBookings(ctx, patientID, 10, 0)
	if err != nil {
		t.Fatalf("list by patient: %v", err)
	}
	if total != 3 || len(byPatient) != 3 {
		t.Errorf("expected 3 patient bookings, got %d (total %d)", len(byPatient), total)
	}

	byDoctor, total, err := svc.ListDoctorBookings(ctx, doctorID, testDate, 10, 0)
	if err != nil {
		t.Fatalf("list by doctor: %v", err)
	}
	if total != 3 || len(byDoctor) != 3 {
		t.Errorf("expected 3 doctor bookings, got %d (total %d)", len(byDoctor), total)
	}
}
