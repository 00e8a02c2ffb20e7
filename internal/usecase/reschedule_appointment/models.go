package reschedule_appointment

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// Request asks to move an appointment to a new slot. ServiceID is optional:
// when set, the appointment switches to that service and its snapshot is
// refreshed; when nil, the existing service and duration are kept.
type Request struct {
	AppointmentID int64
	ClientID      int64
	Date          time.Time
	StartTime     types.TimeString
	ServiceID     *int64
}

// Response is the rescheduled appointment
type Response struct {
	ID              int64
	ClientID        int64
	TenantID        int64
	PetID           int64
	ServiceID       int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ServiceName  string
	ServicePrice float64
	PetName      *string
	Notes        *string
}
