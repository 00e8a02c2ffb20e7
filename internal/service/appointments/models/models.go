package models

import (
	"errors"
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown appointment status
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request models

// CancelAppointmentRequest asks to cancel an appointment
type CancelAppointmentRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest asks to move an appointment to a new status
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetClientAppointmentsRequest asks for a client's appointment history
type GetClientAppointmentsRequest struct {
	ClientID int64   `json:"clientId"`
	Status   *string `json:"status,omitempty"`
}

// GetTenantAppointmentsRequest asks for a tenant's appointments with
// optional filtering. Managers only.
type GetTenantAppointmentsRequest struct {
	UserID          int64      `json:"userId"`
	TenantID        int64      `json:"tenantId"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeCanceled bool       `json:"includeCanceled,omitempty"`
}

// ToDomainFilter converts the request into a domain filter
func (r *GetTenantAppointmentsRequest) ToDomainFilter() (domain.TenantAppointmentsFilter, error) {
	filter := domain.TenantAppointmentsFilter{
		TenantID:        r.TenantID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeCanceled: r.IncludeCanceled,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// AppointmentResponse is the API shape of an appointment
type AppointmentResponse struct {
	ID              int64  `json:"id"`
	ClientID        int64  `json:"clientId"`
	TenantID        int64  `json:"tenantId"`
	PetID           int64  `json:"petId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`      // "2026-03-15"
	StartTime       string `json:"startTime"` // "10:00"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Denormalized data for history
	ServiceName  string  `json:"serviceName"`
	ServicePrice float64 `json:"servicePrice"`
	PetName      *string `json:"petName,omitempty"`
	Notes        *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse wraps a list of appointments
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// FromDomainAppointment converts a domain model into a DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ClientID:           a.ClientID,
		TenantID:           a.TenantID,
		PetID:              a.PetID,
		ServiceID:          a.ServiceID,
		Date:               a.Date.Format(domain.DateFormat),
		StartTime:          a.StartTime.String(),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		ServiceName:        a.ServiceName,
		ServicePrice:       a.ServicePrice,
		PetName:            a.PetName,
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentList converts a list of domain models into a DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appt := range appointments {
		if apptResp := FromDomainAppointment(appt); apptResp != nil {
			resp.Appointments[i] = *apptResp
		}
	}

	return resp
}

// ToDomainAppointmentStatus converts a string into a validated status
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)

	validStatuses := []domain.AppointmentStatus{
		domain.StatusScheduled,
		domain.StatusCompleted,
		domain.StatusCanceled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
