package policy

import "errors"

var (
	// ErrPolicyNotFound is returned when the tenant has no calendar policy
	ErrPolicyNotFound = errors.New("calendar policy not found")

	// ErrTenantNotFound is returned when the tenant is not found
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrAccessDenied is returned when the user has no manager rights
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput is returned when the policy fails validation
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
