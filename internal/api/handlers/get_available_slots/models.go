package get_available_slots

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	getAvailableSlots "github.com/MBrunoS/ezpet-sub000/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	TenantID  int64           `json:"tenantId"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot is one annotated slot of the day
type AvailableSlot struct {
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Available       bool    `json:"available"`
	Reason          *string `json:"reason,omitempty"`
	AvailableSpots  int     `json:"availableSpots"`
	TotalSpots      int     `json:"totalSpots"`
}

// FromUseCaseResponse converts the use case response into the HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		s := AvailableSlot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			AvailableSpots:  slot.AvailableSpots,
			TotalSpots:      slot.TotalSpots,
		}
		if slot.Reason != "" {
			reason := string(slot.Reason)
			s.Reason = &reason
		}
		slots[i] = s
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		TenantID:  resp.TenantID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

// ToUseCaseRequest builds the use case request from query parameters
func ToUseCaseRequest(tenantID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TenantID:  tenantID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}
