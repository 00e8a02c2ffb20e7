package domain

// Default policy values used when a tenant has not configured scheduling yet
const (
	DefaultSlotGranularityMinutes  = 30
	DefaultAppointmentCapacity     = 1
	DefaultAdvanceBookingDays      = 0  // 0 = unlimited
	DefaultMinBookingNoticeMinutes = 0
	DefaultTimezone                = "America/Sao_Paulo"
)

// Business validation bounds for policy writes
const (
	MinSlotGranularityMinutes   = 5
	MaxSlotGranularityMinutes   = 240
	MinAppointmentCapacity      = 1
	MaxAppointmentCapacity      = 100
	MinAdvanceBookingDays       = 0
	MaxAdvanceBookingDays       = 365
	MinNoticeMinutes            = 0
	MaxNoticeMinutes            = 10080 // 1 week
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CanceledStatuses lists the statuses excluded from capacity accounting
var CanceledStatuses = []AppointmentStatus{
	StatusCanceled,
}

// ActiveStatuses lists the statuses that occupy their slot
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusCompleted,
}
