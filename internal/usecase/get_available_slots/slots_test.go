package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/pkg/ptr"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

func openHours(open, close types.TimeString) domain.DayHours {
	return domain.DayHours{IsOpen: true, OpenTime: open, CloseTime: close}
}

func startTimes(candidates []types.TimeString) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.String())
	}
	return out
}

func TestGenerateCandidateSlots(t *testing.T) {
	tests := []struct {
		name        string
		hours       domain.DayHours
		granularity int
		duration    int
		want        []string
	}{
		{
			name:        "hourly grid, duration fills the step",
			hours:       openHours("08:00", "12:00"),
			granularity: 60,
			duration:    60,
			want:        []string{"08:00", "09:00", "10:00", "11:00"},
		},
		{
			name:        "last start drops when the interval would cross closing",
			hours:       openHours("08:00", "12:00"),
			granularity: 60,
			duration:    90,
			want:        []string{"08:00", "09:00", "10:00"},
		},
		{
			name:        "granularity finer than duration overlaps candidates",
			hours:       openHours("09:00", "11:00"),
			granularity: 30,
			duration:    60,
			want:        []string{"09:00", "09:30", "10:00"},
		},
		{
			name:        "half-hour grid over a four-hour morning",
			hours:       openHours("08:00", "12:00"),
			granularity: 30,
			duration:    60,
			want: []string{
				"08:00", "08:30", "09:00", "09:30",
				"10:00", "10:30", "11:00",
			},
		},
		{
			name:        "interval may end exactly at closing",
			hours:       openHours("09:00", "10:00"),
			granularity: 30,
			duration:    60,
			want:        []string{"09:00"},
		},
		{
			name:        "duration longer than the whole day",
			hours:       openHours("09:00", "10:00"),
			granularity: 30,
			duration:    120,
			want:        []string{},
		},
		{
			name:        "closed day yields nothing",
			hours:       domain.DayHours{IsOpen: false},
			granularity: 30,
			duration:    60,
			want:        []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := generateCandidateSlots(tt.hours, tt.granularity, tt.duration)
			require.NoError(t, err)
			assert.Equal(t, tt.want, startTimes(got))
		})
	}
}

func TestGenerateCandidateSlots_Deterministic(t *testing.T) {
	hours := openHours("08:00", "18:00")

	first, err := generateCandidateSlots(hours, 30, 45)
	require.NoError(t, err)
	second, err := generateCandidateSlots(hours, 30, 45)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFilterByNotice(t *testing.T) {
	loc := time.UTC
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, loc) // Monday
	candidates := []types.TimeString{"09:00", "10:00", "11:00", "12:00"}

	t.Run("notice cuts same-day candidates", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 9, 30, 0, 0, loc)
		kept, err := filterByNotice(candidates, date, now, loc, 60)
		require.NoError(t, err)
		// 10:30 is the earliest allowed start
		assert.Equal(t, []string{"11:00", "12:00"}, startTimes(kept))
	})

	t.Run("boundary start equal to now plus notice is kept", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 10, 0, 0, 0, loc)
		kept, err := filterByNotice(candidates, date, now, loc, 60)
		require.NoError(t, err)
		assert.Equal(t, []string{"11:00", "12:00"}, startTimes(kept))
	})

	t.Run("future day unaffected by same-day notice", func(t *testing.T) {
		now := time.Date(2026, 9, 6, 23, 0, 0, 0, loc)
		kept, err := filterByNotice(candidates, date, now, loc, 120)
		require.NoError(t, err)
		assert.Equal(t, []string{"09:00", "10:00", "11:00", "12:00"}, startTimes(kept))
	})

	t.Run("zero notice keeps everything still ahead of now", func(t *testing.T) {
		now := time.Date(2026, 9, 7, 10, 30, 0, 0, loc)
		kept, err := filterByNotice(candidates, date, now, loc, 0)
		require.NoError(t, err)
		assert.Equal(t, []string{"11:00", "12:00"}, startTimes(kept))
	})
}

func TestAnnotateSlots(t *testing.T) {
	policy := &domain.CalendarPolicy{
		Timezone:               "UTC",
		AppointmentCapacity:    1,
		SlotGranularityMinutes: 30,
	}

	booked := &domain.Appointment{
		ID:              1,
		StartTime:       "09:00",
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}

	t.Run("one booking blocks every overlapping candidate at capacity 1", func(t *testing.T) {
		candidates := []types.TimeString{"08:00", "08:30", "09:00", "09:30", "10:00"}
		slots, err := annotateSlots(candidates, 60, policy, []*domain.Appointment{booked}, nil)
		require.NoError(t, err)
		require.Len(t, slots, 5)

		byStart := map[string]domain.Slot{}
		for _, s := range slots {
			byStart[s.StartTime.String()] = s
		}

		assert.True(t, byStart["08:00"].Available, "08:00-09:00 only touches the booking")
		assert.False(t, byStart["08:30"].Available)
		assert.False(t, byStart["09:00"].Available)
		assert.False(t, byStart["09:30"].Available)
		assert.True(t, byStart["10:00"].Available, "10:00-11:00 only touches the booking")

		assert.Equal(t, domain.ReasonCapacityReached, byStart["09:00"].Reason)
		assert.Equal(t, 0, byStart["09:00"].AvailableSpots)
		assert.Equal(t, 1, byStart["08:00"].AvailableSpots)
	})

	t.Run("lunch window excludes overlapping candidates first", func(t *testing.T) {
		lunchPolicy := &domain.CalendarPolicy{
			Timezone:               "UTC",
			AppointmentCapacity:    2,
			SlotGranularityMinutes: 60,
			LunchStart:             ptr.Ptr(types.TimeString("12:00")),
			LunchEnd:               ptr.Ptr(types.TimeString("13:00")),
		}

		candidates := []types.TimeString{"11:00", "11:30", "12:00", "13:00"}
		slots, err := annotateSlots(candidates, 60, lunchPolicy, nil, nil)
		require.NoError(t, err)

		byStart := map[string]domain.Slot{}
		for _, s := range slots {
			byStart[s.StartTime.String()] = s
		}

		assert.True(t, byStart["11:00"].Available, "ends exactly at lunch start")
		assert.False(t, byStart["11:30"].Available)
		assert.Equal(t, domain.ReasonLunchBreak, byStart["11:30"].Reason)
		assert.False(t, byStart["12:00"].Available)
		assert.Equal(t, domain.ReasonLunchBreak, byStart["12:00"].Reason)
		assert.True(t, byStart["13:00"].Available, "starts exactly at lunch end")
	})

	t.Run("capacity above one leaves spots open", func(t *testing.T) {
		capPolicy := &domain.CalendarPolicy{
			Timezone:               "UTC",
			AppointmentCapacity:    3,
			SlotGranularityMinutes: 60,
		}

		appointments := []*domain.Appointment{
			booked,
			{ID: 2, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusScheduled},
		}

		slots, err := annotateSlots([]types.TimeString{"09:00"}, 60, capPolicy, appointments, nil)
		require.NoError(t, err)
		require.Len(t, slots, 1)

		assert.True(t, slots[0].Available)
		assert.Equal(t, 1, slots[0].AvailableSpots)
		assert.Equal(t, 3, slots[0].TotalSpots)
		assert.True(t, slots[0].IsPartiallyBooked())
	})

	t.Run("excluded appointment does not block its own slot", func(t *testing.T) {
		slots, err := annotateSlots([]types.TimeString{"09:00"}, 60, policy,
			[]*domain.Appointment{booked}, ptr.Ptr(booked.ID))
		require.NoError(t, err)
		require.Len(t, slots, 1)
		assert.True(t, slots[0].Available)
	})
}

func TestValidateDate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 9, 7, 15, 0, 0, 0, loc)

	day := func(offset int) time.Time {
		return time.Date(2026, 9, 7, 0, 0, 0, 0, loc).AddDate(0, 0, offset)
	}

	tests := []struct {
		name    string
		date    time.Time
		advance int
		wantErr error
	}{
		{name: "today is valid", date: day(0), advance: 30},
		{name: "yesterday is in the past", date: day(-1), advance: 30, wantErr: ErrInvalidDate},
		{name: "last allowed day", date: day(30), advance: 30},
		{name: "one past the advance limit", date: day(31), advance: 30, wantErr: ErrDateTooFarInFuture},
		{name: "zero advance means unlimited", date: day(400), advance: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDate(tt.date, now, loc, tt.advance)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
