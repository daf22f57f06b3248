package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Constraints is the read-only snapshot the generator and committer work
// from. It is assembled fresh per call; a caller must re-load immediately
// before any write because the booking set can change between read and
// write.
type Constraints struct {
	DoctorID        uuid.UUID
	ServiceID       uuid.UUID
	Date            time.Time
	Weekday         int
	ServiceDuration int
	Policy          *SlotPolicy
	Windows         []WorkingWindow
	Hidden          []Override
	StaffOnly       []Override
	Bookings        []Booking

	// FullDayClosed is set when a full-day override matches the date. The
	// loader empties Windows in that case so the generator is never reached
	// with a closed day; closure and "every slot individually blocked" are
	// the same fact and must not both be computed.
	FullDayClosed bool
	ClosureReason string
}

// Loader assembles generation inputs for a (doctor, service, date) triple.
type Loader struct {
	src ScheduleSource
}

func NewLoader(src ScheduleSource) *Loader {
	return &Loader{src: src}
}

// Load builds the constraint snapshot. It has no side effects.
func (l *Loader) Load(ctx context.Context, doctorID, serviceID uuid.UUID, date time.Time) (*Constraints, error) {
	duration, err := l.src.ServiceDuration(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	policy, err := l.src.SlotPolicy(ctx, doctorID, serviceID)
	if err != nil {
		return nil, err
	}

	weekday := WeekdayOf(date)
	cs := &Constraints{
		DoctorID:        doctorID,
		ServiceID:       serviceID,
		Date:            date,
		Weekday:         weekday,
		ServiceDuration: duration,
		Policy:          policy,
	}

	windows, err := l.src.WorkingWindows(ctx, doctorID, weekday)
	if err != nil {
		return nil, fmt.Errorf("load working windows: %w", err)
	}
	for _, w := range windows {
		if w.Active {
			cs.Windows = append(cs.Windows, w)
		}
	}

	overrides, err := l.src.Overrides(ctx, doctorID, weekday, date)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}
	for _, o := range overrides {
		if o.FullDay {
			cs.FullDayClosed = true
			cs.ClosureReason = o.Reason
			cs.Windows = nil
			break
		}
		switch o.Kind {
		case OverrideStaffOnly:
			cs.StaffOnly = append(cs.StaffOnly, o)
		default:
			cs.Hidden = append(cs.Hidden, o)
		}
	}

	if !cs.FullDayClosed {
		bookings, err := l.src.ActiveBookings(ctx, doctorID, date)
		if err != nil {
			return nil, fmt.Errorf("load bookings: %w", err)
		}
		for _, b := range bookings {
			if Occupying(b.Status) {
				cs.Bookings = append(cs.Bookings, b)
			}
		}
	}

	return cs, nil
}
