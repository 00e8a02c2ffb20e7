package domain

import "github.com/MBrunoS/ezpet-sub000/pkg/types"

// UnavailableReason explains why a candidate slot cannot be booked
type UnavailableReason string

const (
	ReasonLunchBreak      UnavailableReason = "lunch_break"
	ReasonCapacityReached UnavailableReason = "capacity_reached"
)

// Slot is an ephemeral candidate start time annotated with availability.
// Slots are recomputed on every evaluation and never persisted.
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
	Reason          UnavailableReason // empty when Available
	AvailableSpots  int
	TotalSpots      int
}

// IsFull returns true if the slot has no free spots left
func (s *Slot) IsFull() bool {
	return s.AvailableSpots <= 0
}

// IsPartiallyBooked returns true if some but not all spots are taken
func (s *Slot) IsPartiallyBooked() bool {
	return s.AvailableSpots > 0 && s.AvailableSpots < s.TotalSpots
}

// OccupancyRate returns the occupancy rate as a percentage (0-100)
func (s *Slot) OccupancyRate() float64 {
	if s.TotalSpots == 0 {
		return 0
	}
	occupied := s.TotalSpots - s.AvailableSpots
	return float64(occupied) / float64(s.TotalSpots) * 100
}

// FilterAvailable returns the available-only subsequence, preserving order
func FilterAvailable(slots []Slot) []Slot {
	available := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Available {
			available = append(available, s)
		}
	}
	return available
}
