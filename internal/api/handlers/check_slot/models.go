package check_slot

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	getAvailableSlots "github.com/MBrunoS/ezpet-sub000/internal/usecase/get_available_slots"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// SlotAvailabilityResponse HTTP response model. The verdict is advisory:
// the booking endpoint re-checks inside its transaction.
type SlotAvailabilityResponse struct {
	TenantID  int64   `json:"tenantId"`
	ServiceID int64   `json:"serviceId"`
	Date      string  `json:"date"`
	StartTime string  `json:"startTime"`
	Available bool    `json:"available"`
	Reason    *string `json:"reason,omitempty"`
}

// FromUseCaseResponse converts the use case verdict into the HTTP response
func FromUseCaseResponse(req *getAvailableSlots.CheckRequest, resp *getAvailableSlots.CheckResponse) *SlotAvailabilityResponse {
	out := &SlotAvailabilityResponse{
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		Date:      req.Date.Format(domain.DateFormat),
		StartTime: req.StartTime.String(),
		Available: resp.Available,
	}

	if resp.Reason != "" {
		reason := string(resp.Reason)
		out.Reason = &reason
	}

	return out
}

// ToUseCaseRequest builds the use case request from query parameters
func ToUseCaseRequest(tenantID, serviceID int64, dateStr, startTimeStr string, excludeAppointmentID *int64) (*getAvailableSlots.CheckRequest, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(startTimeStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.CheckRequest{
		TenantID:             tenantID,
		ServiceID:            serviceID,
		Date:                 date,
		StartTime:            startTime,
		ExcludeAppointmentID: excludeAppointmentID,
	}, nil
}
