package clientservice

import "errors"

var (
	// ErrPetNotFound is returned when the pet does not exist or does not
	// belong to the client
	ErrPetNotFound = errors.New("clientservice client: pet not found")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("clientservice client: internal error")

	// ErrInvalidResponse is returned when ClientService responds unexpectedly
	ErrInvalidResponse = errors.New("clientservice client: invalid response")

	// ErrServiceDegraded is returned in place of transport failures when the
	// caller opted into graceful degradation: the appointment can proceed
	// without the denormalized pet data
	ErrServiceDegraded = errors.New("clientservice unavailable: graceful degradation applied")
)
