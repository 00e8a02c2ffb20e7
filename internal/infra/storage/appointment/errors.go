package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute. The
	// driver error stays in the chain: serialization failures raised at
	// query time must remain visible to the transaction manager's retry.
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned. The
	// driver error stays in the chain, as with ErrExecQuery.
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
