package domain

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
)

// Appointment represents a booked service visit for a client's pet.
// DurationMinutes is snapshotted from the service at admission time and
// never re-resolved, so later service edits cannot shift the occupied
// interval of existing appointments.
type Appointment struct {
	ID              int64
	TenantID        int64
	ClientID        int64
	PetID           int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	PetName      *string
	Notes        *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot.
// Completed appointments stay in the day's capacity accounting; only a
// canceled one frees its interval.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCanceled
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusScheduled
}

// CanBeRescheduled returns true if the appointment's date or service can change
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status == StatusScheduled
}

// Interval returns the half-open occupied interval [start, start+duration)
func (a *Appointment) Interval() (Interval, error) {
	return NewInterval(a.StartTime, a.DurationMinutes)
}

// TenantAppointmentsFilter describes a filtered tenant appointment query
type TenantAppointmentsFilter struct {
	TenantID        int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *AppointmentStatus
	IncludeCanceled bool
	ExcludeID       *int64 // self-exclusion when re-validating a reschedule
}
