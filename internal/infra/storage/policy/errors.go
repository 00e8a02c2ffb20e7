package policy

import "errors"

var (
	// ErrPolicyNotFound is returned when the tenant has no calendar policy.
	// Callers must propagate this; working hours are never guessed.
	ErrPolicyNotFound = errors.New("policy.repository: calendar policy not found")

	// ErrBuildQuery is returned when the SQL query cannot be built
	ErrBuildQuery = errors.New("policy.repository: failed to build query")

	// ErrExecQuery is returned when the SQL query fails to execute. The
	// driver error stays in the chain: serialization failures raised at
	// query time must remain visible to the transaction manager's retry.
	ErrExecQuery = errors.New("policy.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned. The
	// driver error stays in the chain, as with ErrExecQuery.
	ErrScanRow = errors.New("policy.repository: failed to scan row")

	// ErrCorruptWorkingHours is returned when the stored working hours do not
	// cover exactly the seven weekdays
	ErrCorruptWorkingHours = errors.New("policy.repository: working hours rows do not cover all weekdays")
)
