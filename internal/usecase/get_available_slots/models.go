package get_available_slots

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// Request asks for the annotated slot sequence of one day
type Request struct {
	TenantID  int64
	ServiceID int64
	Date      time.Time // calendar date, time-of-day ignored
}

// Response carries the full annotated slot sequence for the day.
// Closed days yield an empty sequence, not an error.
type Response struct {
	Date      time.Time
	TenantID  int64
	ServiceID int64
	Slots     []domain.Slot
}

// AvailableSlots returns the bookable subsequence in order
func (r *Response) AvailableSlots() []domain.Slot {
	return domain.FilterAvailable(r.Slots)
}

// CheckRequest asks whether one specific slot can be booked.
// ExcludeAppointmentID removes the caller's own appointment from the
// conflict set when pre-validating a reschedule.
type CheckRequest struct {
	TenantID             int64
	ServiceID            int64
	Date                 time.Time
	StartTime            types.TimeString
	ExcludeAppointmentID *int64
}

// CheckResponse is the pre-flight availability verdict. It is advisory:
// only the admission gate's transactional re-check is authoritative.
type CheckResponse struct {
	Available bool
	Reason    domain.UnavailableReason // empty when available or day closed
}
