package create_appointment

import "errors"

var (
	// ErrTenantNotFound is returned when the tenant is not found
	ErrTenantNotFound = errors.New("create_appointment: tenant not found")

	// ErrServiceNotFound is returned when the service is not found
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrPetNotFound is returned when the pet does not exist for the client
	ErrPetNotFound = errors.New("create_appointment: pet not found")

	// ErrPolicyNotFound is returned when the tenant has no calendar policy
	ErrPolicyNotFound = errors.New("create_appointment: calendar policy not found")

	// ErrInvalidDate is returned for a past or malformed date
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance booking limit
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrTenantClosed is returned when the tenant is closed on the requested date
	ErrTenantClosed = errors.New("create_appointment: tenant is closed on this date")

	// ErrSlotNotAvailable is returned when the slot's capacity is already
	// taken. Surfaced to the caller as a rejected booking, never retried.
	ErrSlotNotAvailable = errors.New("create_appointment: slot is not available")

	// ErrInvalidTimeSlot is returned when the start time is misaligned,
	// outside working hours or inside the lunch window
	ErrInvalidTimeSlot = errors.New("create_appointment: invalid time slot")

	// ErrTooLateToBook is returned when the slot violates the minimum booking notice
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("create_appointment: internal error")
)
