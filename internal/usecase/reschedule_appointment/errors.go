package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAccessDenied is returned when the requester does not own the appointment
	ErrAccessDenied = errors.New("reschedule_appointment: access denied")

	// ErrCannotReschedule is returned for appointments that are not in the
	// scheduled status
	ErrCannotReschedule = errors.New("reschedule_appointment: appointment cannot be rescheduled")

	// ErrServiceNotFound is returned when the replacement service is not found
	ErrServiceNotFound = errors.New("reschedule_appointment: service not found")

	// ErrPolicyNotFound is returned when the tenant has no calendar policy
	ErrPolicyNotFound = errors.New("reschedule_appointment: calendar policy not found")

	// ErrInvalidDate is returned for a past or malformed date
	ErrInvalidDate = errors.New("reschedule_appointment: invalid appointment date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance booking limit
	ErrDateTooFarInFuture = errors.New("reschedule_appointment: date is too far in the future")

	// ErrTenantClosed is returned when the tenant is closed on the requested date
	ErrTenantClosed = errors.New("reschedule_appointment: tenant is closed on this date")

	// ErrSlotNotAvailable is returned when the target slot's capacity is taken
	ErrSlotNotAvailable = errors.New("reschedule_appointment: slot is not available")

	// ErrInvalidTimeSlot is returned when the start time is misaligned,
	// outside working hours or inside the lunch window
	ErrInvalidTimeSlot = errors.New("reschedule_appointment: invalid time slot")

	// ErrTooLateToBook is returned when the slot violates the minimum booking notice
	ErrTooLateToBook = errors.New("reschedule_appointment: too late to book this slot")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
