package create_appointment

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// Request asks to book a service for a client's pet at a specific slot
type Request struct {
	ClientID  int64
	TenantID  int64
	PetID     int64
	ServiceID int64
	Date      time.Time
	StartTime types.TimeString
	Notes     *string
}

// Response is the created appointment
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

	CreatedAt time.Time
	UpdatedAt time.Time
}
