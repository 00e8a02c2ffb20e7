package catalogservice

import "errors"

var (
	// ErrTenantNotFound is returned when the tenant does not exist
	ErrTenantNotFound = errors.New("catalogservice client: tenant not found")

	// ErrServiceNotFound is returned when the service does not exist for the tenant
	ErrServiceNotFound = errors.New("catalogservice client: service not found")

	// ErrInvalidDuration is returned when CatalogService reports a non-positive
	// service duration; scheduling cannot proceed with it
	ErrInvalidDuration = errors.New("catalogservice client: service has non-positive duration")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse is returned when CatalogService responds unexpectedly
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
