package reschedule_appointment

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	rescheduleAppointment "github.com/MBrunoS/ezpet-sub000/internal/usecase/reschedule_appointment"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// RescheduleAppointmentRequest HTTP request model. ServiceID switches the
// appointment to a different service when present.
type RescheduleAppointmentRequest struct {
	Date      string `json:"date"`      // "2026-03-15"
	StartTime string `json:"startTime"` // "10:00"
	ServiceID *int64 `json:"serviceId,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	TenantID        int64   `json:"tenantId"`
	PetID           int64   `json:"petId"`
	ServiceID       int64   `json:"serviceId"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	PetName         *string `json:"petName,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// ToUseCaseRequest converts the HTTP request into the use case model
func (r *RescheduleAppointmentRequest) ToUseCaseRequest(appointmentID, clientID int64) (*rescheduleAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleAppointment.Request{
		AppointmentID: appointmentID,
		ClientID:      clientID,
		Date:          date,
		StartTime:     startTime,
		ServiceID:     r.ServiceID,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP response
func FromUseCaseResponse(resp *rescheduleAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		TenantID:        resp.TenantID,
		PetID:           resp.PetID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		PetName:         resp.PetName,
		Notes:           resp.Notes,
	}
}
