package domain

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// DayHours is the working window for one weekday.
// Invariant (enforced at policy write time): IsOpen implies OpenTime < CloseTime.
type DayHours struct {
	Weekday   time.Weekday
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// CalendarPolicy is a tenant's scheduling configuration: weekly working
// hours, an optional daily lunch window and the appointment capacity.
// The scheduling engine treats it as read-only; it is mutated only through
// explicit profile edits.
type CalendarPolicy struct {
	ID       int64
	TenantID int64

	// Timezone is the IANA name of the business's fixed local time.
	// All day-boundary and "now" comparisons happen in this zone,
	// never in the host environment's default.
	Timezone string

	// WorkingHours has exactly 7 entries indexed by time.Weekday (Sunday = 0)
	WorkingHours [7]DayHours

	// LunchStart/LunchEnd are both set or both nil; the window applies
	// identically to every open day
	LunchStart *types.TimeString
	LunchEnd   *types.TimeString

	// AppointmentCapacity is the maximum number of appointments whose
	// intervals may mutually overlap at any instant; always >= 1
	AppointmentCapacity int

	// SlotGranularityMinutes is the step between candidate slot starts
	SlotGranularityMinutes int

	// AdvanceBookingDays limits how far ahead clients can book; 0 = unlimited
	AdvanceBookingDays int

	// MinBookingNoticeMinutes is the minimum lead time for same-day slots
	MinBookingNoticeMinutes int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoursFor returns the working hours for the weekday of the given date
func (p *CalendarPolicy) HoursFor(date time.Time) DayHours {
	return p.WorkingHours[int(date.Weekday())]
}

// HasLunchWindow returns true if a lunch window is configured
func (p *CalendarPolicy) HasLunchWindow() bool {
	return p.LunchStart != nil && p.LunchEnd != nil
}

// LunchInterval returns the configured lunch window as a half-open interval.
// Only meaningful when HasLunchWindow is true.
func (p *CalendarPolicy) LunchInterval() Interval {
	if !p.HasLunchWindow() {
		return Interval{}
	}
	return Interval{Start: *p.LunchStart, End: *p.LunchEnd}
}

// HasAdvanceBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (p *CalendarPolicy) HasAdvanceBookingLimit() bool {
	return p.AdvanceBookingDays > 0
}

// Location resolves the policy timezone. Falls back to UTC only for a
// malformed stored name; policy validation rejects those at write time.
func (p *CalendarPolicy) Location() *time.Location {
	loc, err := time.LoadLocation(p.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
