package booking

// The generator walks each working window at the policy interval and
// classifies every candidate. Precedence is encoded as an ordered rule
// list evaluated first-match-wins, so the order is explicit and each rule
// is testable on its own rather than buried in nested branching.

// candidate is one window under classification.
type candidate struct {
	start int
	end   int
}

// classification is a rule's verdict for a candidate.
type classification struct {
	status    SlotStatus
	reason    string
	staffNote string
}

// rule inspects a candidate and either claims it or passes.
type rule func(c candidate) (classification, bool)

// classifierFor builds the ordered rule chain for one generation pass.
func classifierFor(cs *Constraints, role ViewerRole) []rule {
	rules := []rule{
		// A staff viewer sees a staff-reserved range starting exactly at the
		// candidate as positively bookable, note attached. This overrides
		// every blocking check below, not merely the staff-only hiding.
		func(c candidate) (classification, bool) {
			if role != ViewerStaff {
				return classification{}, false
			}
			for _, o := range cs.StaffOnly {
				if o.StartMinute == c.start {
					return classification{status: SlotStaffAvailable, staffNote: o.StaffNote}, true
				}
			}
			return classification{}, false
		},

		func(c candidate) (classification, bool) {
			for _, o := range cs.Hidden {
				if Overlaps(c.start, c.end, o.StartMinute, o.EndMinute) {
					return classification{status: SlotHidden, reason: o.Reason}, true
				}
			}
			return classification{}, false
		},

		func(c candidate) (classification, bool) {
			if role != ViewerPatient {
				return classification{}, false
			}
			for _, o := range cs.StaffOnly {
				if Overlaps(c.start, c.end, o.StartMinute, o.EndMinute) {
					return classification{status: SlotStaffOnly}, true
				}
			}
			return classification{}, false
		},

		func(c candidate) (classification, bool) {
			for _, b := range cs.Bookings {
				if Overlaps(c.start, c.end, b.StartMinute, b.EndMinute) {
					return classification{status: SlotBooked}, true
				}
			}
			return classification{}, false
		},

		// Each booking and hidden range carries a trailing buffer
		// [end, end+buffer) that the next slot may not start inside. The
		// buffer is after-only; nothing guards the head of a blocked range.
		func(c candidate) (classification, bool) {
			buffer := cs.Policy.BufferMinutes
			if buffer <= 0 {
				return classification{}, false
			}
			for _, b := range cs.Bookings {
				if Overlaps(c.start, c.end, b.EndMinute, b.EndMinute+buffer) {
					return classification{status: SlotBufferConflict}, true
				}
			}
			for _, o := range cs.Hidden {
				if Overlaps(c.start, c.end, o.EndMinute, o.EndMinute+buffer) {
					return classification{status: SlotBufferConflict}, true
				}
			}
			return classification{}, false
		},
	}
	return rules
}

// Generate classifies every candidate window for the loaded constraints and
// returns them in ascending start order. Zero working windows yields an
// empty sequence, not an error.
func Generate(cs *Constraints, role ViewerRole) []SlotDescriptor {
	duration := cs.ServiceDuration
	interval := cs.Policy.IntervalMinutes

	// An interval shorter than the service would emit overlapping
	// candidates; step at whichever is longer.
	step := interval
	if duration > step {
		step = duration
	}

	rules := classifierFor(cs, role)

	// Always a non-nil slice: callers serialize the result directly and a
	// day with no fitting candidate must read as [] rather than null.
	out := []SlotDescriptor{}
	for _, w := range cs.Windows {
		for t := w.StartMinute; t+duration <= w.EndMinute; t += step {
			c := candidate{start: t, end: t + duration}

			verdict := classification{status: SlotAvailable}
			for _, r := range rules {
				if v, ok := r(c); ok {
					verdict = v
					break
				}
			}

			out = append(out, SlotDescriptor{
				Time:        FormatClock(c.start) + "-" + FormatClock(c.end),
				Status:      verdict.status,
				StartTime:   FormatClock(c.start),
				EndTime:     FormatClock(c.end),
				Duration:    duration,
				Interval:    interval,
				BufferTime:  cs.Policy.BufferMinutes,
				BlockReason: verdict.reason,
				StaffNotes:  verdict.staffNote,
			})
		}
	}
	return out
}
