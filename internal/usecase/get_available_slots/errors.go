package get_available_slots

import "errors"

var (
	// ErrTenantNotFound is returned when the tenant is not found
	ErrTenantNotFound = errors.New("get_available_slots: tenant not found")

	// ErrServiceNotFound is returned when the service is not found
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrPolicyNotFound is returned when the tenant has no calendar policy.
	// Working hours are never defaulted; the caller must configure a policy.
	ErrPolicyNotFound = errors.New("get_available_slots: calendar policy not found")

	// ErrInvalidDate is returned for a past or malformed date
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance booking limit
	ErrDateTooFarInFuture = errors.New("get_available_slots: date is too far in the future")

	// ErrInvalidInput is returned for malformed request data
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("get_available_slots: internal error")
)
