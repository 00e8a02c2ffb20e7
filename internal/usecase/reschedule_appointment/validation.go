package reschedule_appointment

import (
	"fmt"
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// validateRequest validates the request input
func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	return nil
}

// validateDate rejects past dates and dates beyond the advance booking limit
func validateDate(date time.Time, now time.Time, loc *time.Location, advanceBookingDays int) error {
	nowLocal := now.In(loc)
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	todayOnly := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)

	if dateOnly.Before(todayOnly) {
		return ErrInvalidDate
	}

	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := todayOnly.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

// validateSlotShape checks the candidate against the day's working window
func validateSlotShape(
	interval domain.Interval,
	hours domain.DayHours,
	policy *domain.CalendarPolicy,
) error {
	if interval.Start.IsBefore(hours.OpenTime) || interval.End.IsAfter(hours.CloseTime) {
		return fmt.Errorf("%w: outside working hours %s-%s", ErrInvalidTimeSlot, hours.OpenTime, hours.CloseTime)
	}

	startMinutes, err := interval.Start.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	openMinutes, err := hours.OpenTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if (startMinutes-openMinutes)%policy.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: start time is not aligned to the %d-minute grid",
			ErrInvalidTimeSlot, policy.SlotGranularityMinutes)
	}

	if policy.HasLunchWindow() && interval.Overlaps(policy.LunchInterval()) {
		return fmt.Errorf("%w: falls in the lunch break", ErrInvalidTimeSlot)
	}

	return nil
}

// validateBookingNotice checks the minimum lead time for the new slot
func validateBookingNotice(
	date time.Time,
	startTime types.TimeString,
	now time.Time,
	loc *time.Location,
	minNoticeMinutes int,
) error {
	slotInstant, err := startTime.On(date, loc)
	if err != nil {
		return fmt.Errorf("%w: failed to resolve slot instant: %v", ErrInternal, err)
	}

	minAllowed := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if slotInstant.Before(minAllowed) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minNoticeMinutes)
	}

	return nil
}
