package update_calendar_policy

import (
	"github.com/MBrunoS/ezpet-sub000/internal/service/policy/models"
)

// UpdateCalendarPolicyRequest HTTP request model. The whole policy is
// replaced on every update.
type UpdateCalendarPolicyRequest struct {
	Timezone                string                 `json:"timezone"`
	WorkingHours            []models.DayHoursInput `json:"workingHours"`
	LunchStart              *string                `json:"lunchStart,omitempty"`
	LunchEnd                *string                `json:"lunchEnd,omitempty"`
	AppointmentCapacity     int                    `json:"appointmentCapacity"`
	SlotGranularityMinutes  int                    `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int                    `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int                    `json:"minBookingNoticeMinutes"`
}

// ToServiceRequest converts the HTTP request into the service model
func (r *UpdateCalendarPolicyRequest) ToServiceRequest(userID int64) *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		UserID:                  userID,
		Timezone:                r.Timezone,
		WorkingHours:            r.WorkingHours,
		LunchStart:              r.LunchStart,
		LunchEnd:                r.LunchEnd,
		AppointmentCapacity:     r.AppointmentCapacity,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}
