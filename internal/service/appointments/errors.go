package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment is not found
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrTenantNotFound is returned when the tenant is not found
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrAccessDenied is returned when the user has no access to the appointment
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the appointment cannot be cancelled
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrInvalidStatus is returned for an unknown appointment status
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
