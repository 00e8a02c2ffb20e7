package models

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// Request models

// DayHoursInput is one weekday's working window in a policy update.
// Weekday uses 0 = Sunday through 6 = Saturday.
type DayHoursInput struct {
	Weekday   int     `json:"weekday"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`  // "09:00", required when open
	CloseTime *string `json:"closeTime,omitempty"` // "18:00", required when open
}

// UpdatePolicyRequest replaces the tenant's calendar policy. The whole
// policy is sent on every update; there is no partial merge.
type UpdatePolicyRequest struct {
	UserID                  int64           `json:"userId"`
	Timezone                string          `json:"timezone"`
	WorkingHours            []DayHoursInput `json:"workingHours"`
	LunchStart              *string         `json:"lunchStart,omitempty"`
	LunchEnd                *string         `json:"lunchEnd,omitempty"`
	AppointmentCapacity     int             `json:"appointmentCapacity"`
	SlotGranularityMinutes  int             `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int             `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int             `json:"minBookingNoticeMinutes"`
}

// ToDomainPolicy converts the request into a domain policy for the tenant.
// Assumes the request already passed validation.
func (r *UpdatePolicyRequest) ToDomainPolicy(tenantID int64) *domain.CalendarPolicy {
	p := &domain.CalendarPolicy{
		TenantID:                tenantID,
		Timezone:                r.Timezone,
		AppointmentCapacity:     r.AppointmentCapacity,
		SlotGranularityMinutes:  r.SlotGranularityMinutes,
		AdvanceBookingDays:      r.AdvanceBookingDays,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}

	for i := range p.WorkingHours {
		p.WorkingHours[i] = domain.DayHours{
			Weekday: time.Weekday(i),
			IsOpen:  false,
		}
	}

	for _, day := range r.WorkingHours {
		if day.Weekday < 0 || day.Weekday > 6 {
			continue
		}
		hours := domain.DayHours{
			Weekday: time.Weekday(day.Weekday),
			IsOpen:  day.IsOpen,
		}
		if day.IsOpen && day.OpenTime != nil && day.CloseTime != nil {
			hours.OpenTime = types.TimeString(*day.OpenTime)
			hours.CloseTime = types.TimeString(*day.CloseTime)
		}
		p.WorkingHours[day.Weekday] = hours
	}

	if r.LunchStart != nil && r.LunchEnd != nil {
		start := types.TimeString(*r.LunchStart)
		end := types.TimeString(*r.LunchEnd)
		p.LunchStart = &start
		p.LunchEnd = &end
	}

	return p
}

// Response models

// DayHoursResponse is one weekday's working window
type DayHoursResponse struct {
	Weekday   int     `json:"weekday"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  *string `json:"openTime,omitempty"`
	CloseTime *string `json:"closeTime,omitempty"`
}

// PolicyResponse is the API shape of a calendar policy
type PolicyResponse struct {
	ID                      int64              `json:"id"`
	TenantID                int64              `json:"tenantId"`
	Timezone                string             `json:"timezone"`
	WorkingHours            []DayHoursResponse `json:"workingHours"`
	LunchStart              *string            `json:"lunchStart,omitempty"`
	LunchEnd                *string            `json:"lunchEnd,omitempty"`
	AppointmentCapacity     int                `json:"appointmentCapacity"`
	SlotGranularityMinutes  int                `json:"slotGranularityMinutes"`
	AdvanceBookingDays      int                `json:"advanceBookingDays"`
	MinBookingNoticeMinutes int                `json:"minBookingNoticeMinutes"`
	CreatedAt               time.Time          `json:"createdAt"`
	UpdatedAt               time.Time          `json:"updatedAt"`
}

// FromDomainPolicy converts a domain policy into a DTO
func FromDomainPolicy(p *domain.CalendarPolicy) *PolicyResponse {
	if p == nil {
		return nil
	}

	resp := &PolicyResponse{
		ID:                      p.ID,
		TenantID:                p.TenantID,
		Timezone:                p.Timezone,
		WorkingHours:            make([]DayHoursResponse, len(p.WorkingHours)),
		AppointmentCapacity:     p.AppointmentCapacity,
		SlotGranularityMinutes:  p.SlotGranularityMinutes,
		AdvanceBookingDays:      p.AdvanceBookingDays,
		MinBookingNoticeMinutes: p.MinBookingNoticeMinutes,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}

	for i, hours := range p.WorkingHours {
		day := DayHoursResponse{
			Weekday: int(hours.Weekday),
			IsOpen:  hours.IsOpen,
		}
		if hours.IsOpen {
			open := hours.OpenTime.String()
			close := hours.CloseTime.String()
			day.OpenTime = &open
			day.CloseTime = &close
		}
		resp.WorkingHours[i] = day
	}

	if p.LunchStart != nil {
		start := p.LunchStart.String()
		resp.LunchStart = &start
	}
	if p.LunchEnd != nil {
		end := p.LunchEnd.String()
		resp.LunchEnd = &end
	}

	return resp
}
