package domain

import (
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// Interval is a half-open [Start, End) time range within a single day.
// All conflict and capacity decisions reduce to the one overlap rule below,
// whether capacity is 1 or higher.
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// NewInterval builds the interval [start, start+duration)
func NewInterval(start types.TimeString, durationMinutes int) (Interval, error) {
	end, err := start.AddMinutes(durationMinutes)
	if err != nil {
		return Interval{}, err
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Strict inequalities: intervals that merely touch at an endpoint
// (one ends exactly where the other starts) do not overlap.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

// CountOverlapping counts the active appointments whose occupied intervals
// overlap the candidate. Canceled appointments and the excluded id (the
// appointment being rescheduled) are skipped; appointments whose stored
// interval cannot be resolved are skipped rather than counted.
func CountOverlapping(candidate Interval, appointments []*Appointment, excludeID *int64) int {
	count := 0

	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}

		occupied, err := appt.Interval()
		if err != nil {
			continue
		}

		if candidate.Overlaps(occupied) {
			count++
		}
	}

	return count
}

// SlotAvailable applies the unified admission rule: a candidate interval is
// available iff the number of overlapping active appointments is strictly
// less than the capacity.
func SlotAvailable(candidate Interval, appointments []*Appointment, capacity int, excludeID *int64) bool {
	return CountOverlapping(candidate, appointments, excludeID) < capacity
}
