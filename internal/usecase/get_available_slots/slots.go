package get_available_slots

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// generateCandidateSlots produces the ordered candidate start times for one
// day: from the opening time, stepping by the policy's slot granularity,
// keeping every start whose service interval still ends at or before the
// closing time. A closed day produces no candidates.
//
// The sequence is regenerated on every call; policy or duration changes are
// reflected immediately.
func generateCandidateSlots(
	hours domain.DayHours,
	granularityMinutes int,
	serviceDurationMinutes int,
) ([]types.TimeString, error) {
	if !hours.IsOpen || hours.OpenTime.IsZero() || hours.CloseTime.IsZero() {
		return []types.TimeString{}, nil
	}

	if err := hours.OpenTime.Validate(); err != nil {
		return nil, err
	}
	if err := hours.CloseTime.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]types.TimeString, 0)
	current := hours.OpenTime

	for current.IsBefore(hours.CloseTime) {
		end, err := current.AddMinutes(serviceDurationMinutes)
		if err != nil {
			return nil, err
		}
		if end.IsAfter(hours.CloseTime) {
			break
		}

		candidates = append(candidates, current)

		current, err = current.AddMinutes(granularityMinutes)
		if err != nil {
			return nil, err
		}
	}

	return candidates, nil
}

// filterByNotice drops candidates that start before now plus the minimum
// booking notice. Each candidate is anchored to an absolute instant through
// the policy's local midnight, so the comparison holds no matter where the
// process runs.
func filterByNotice(
	candidates []types.TimeString,
	date time.Time,
	now time.Time,
	loc *time.Location,
	minNoticeMinutes int,
) ([]types.TimeString, error) {
	kept := make([]types.TimeString, 0, len(candidates))
	for _, candidate := range candidates {
		ok, err := satisfiesNotice(date, candidate, now, loc, minNoticeMinutes)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		kept = append(kept, candidate)
	}

	return kept, nil
}

// satisfiesNotice reports whether the slot start is at least the minimum
// booking notice away from now
func satisfiesNotice(
	date time.Time,
	start types.TimeString,
	now time.Time,
	loc *time.Location,
	minNoticeMinutes int,
) (bool, error) {
	instant, err := start.On(date, loc)
	if err != nil {
		return false, err
	}
	minAllowed := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	return !instant.Before(minAllowed), nil
}

// onGranularityGrid reports whether start sits on the granularity grid
// counted from the opening time. Starts the generator would never produce
// are not bookable.
func onGranularityGrid(start, open types.TimeString, granularityMinutes int) (bool, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return false, err
	}
	openMinutes, err := open.Minutes()
	if err != nil {
		return false, err
	}
	return (startMinutes-openMinutes)%granularityMinutes == 0, nil
}

// annotateSlots evaluates each candidate in order: lunch window first, then
// the capacity rule. The result is deterministic for identical inputs.
func annotateSlots(
	candidates []types.TimeString,
	serviceDurationMinutes int,
	policy *domain.CalendarPolicy,
	appointments []*domain.Appointment,
	excludeID *int64,
) ([]domain.Slot, error) {
	slots := make([]domain.Slot, 0, len(candidates))

	for _, start := range candidates {
		interval, err := domain.NewInterval(start, serviceDurationMinutes)
		if err != nil {
			return nil, err
		}

		slot := domain.Slot{
			StartTime:       start,
			DurationMinutes: serviceDurationMinutes,
			TotalSpots:      policy.AppointmentCapacity,
		}

		if policy.HasLunchWindow() && interval.Overlaps(policy.LunchInterval()) {
			slot.Available = false
			slot.Reason = domain.ReasonLunchBreak
			slot.AvailableSpots = 0
			slots = append(slots, slot)
			continue
		}

		overlapping := domain.CountOverlapping(interval, appointments, excludeID)
		spots := policy.AppointmentCapacity - overlapping
		if spots < 0 {
			spots = 0
		}

		slot.AvailableSpots = spots
		if overlapping < policy.AppointmentCapacity {
			slot.Available = true
		} else {
			slot.Available = false
			slot.Reason = domain.ReasonCapacityReached
		}

		slots = append(slots, slot)
	}

	return slots, nil
}

// isDateInPast reports whether date is before today in the given location
func isDateInPast(date time.Time, now time.Time, loc *time.Location) bool {
	nowLocal := now.In(loc)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	todayOnly := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	return dateOnly.Before(todayOnly)
}

// validateDate rejects past dates and dates beyond the advance booking limit
func validateDate(date time.Time, now time.Time, loc *time.Location, advanceBookingDays int) error {
	if isDateInPast(date, now, loc) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	nowLocal := now.In(loc)
	maxDate := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc).
		AddDate(0, 0, advanceBookingDays)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	if dateOnly.After(maxDate) {
		return ErrDateTooFarInFuture
	}

	return nil
}
