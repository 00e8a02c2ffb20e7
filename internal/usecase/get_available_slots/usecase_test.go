package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	policyRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/policy"
	catalogClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
	"github.com/MBrunoS/ezpet-sub000/pkg/ptr"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeCatalogClient struct {
	tenant     *catalogClient.Tenant
	tenantErr  error
	service    *catalogClient.Service
	serviceErr error
}

func (c *fakeCatalogClient) GetTenant(ctx context.Context, tenantID int64) (*catalogClient.Tenant, error) {
	if c.tenantErr != nil {
		return nil, c.tenantErr
	}
	return c.tenant, nil
}

func (c *fakeCatalogClient) GetService(ctx context.Context, tenantID, serviceID int64) (*catalogClient.Service, error) {
	if c.serviceErr != nil {
		return nil, c.serviceErr
	}
	return c.service, nil
}

type fakePolicyRepo struct {
	policy *domain.CalendarPolicy
	err    error
}

func (r *fakePolicyRepo) GetByTenantID(ctx context.Context, tenantID int64) (*domain.CalendarPolicy, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.policy, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (r *fakeAppointmentRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.appointments, nil
}

// mondayPolicy is open Monday 08:00-12:00; every other day closed.
func mondayPolicy() *domain.CalendarPolicy {
	p := &domain.CalendarPolicy{
		ID:                     1,
		TenantID:               10,
		Timezone:               "UTC",
		AppointmentCapacity:    1,
		SlotGranularityMinutes: 60,
		AdvanceBookingDays:     30,
	}
	for i := range p.WorkingHours {
		p.WorkingHours[i] = domain.DayHours{Weekday: time.Weekday(i), IsOpen: false}
	}
	p.WorkingHours[time.Monday] = domain.DayHours{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  "08:00",
		CloseTime: "12:00",
	}
	return p
}

func groomingService() *catalogClient.Service {
	return &catalogClient.Service{
		ID:              5,
		TenantID:        10,
		Name:            "Full Grooming",
		DurationMinutes: 60,
		Active:          true,
	}
}

func newTestUseCase(
	appointments *fakeAppointmentRepo,
	policies *fakePolicyRepo,
	catalog *fakeCatalogClient,
	now time.Time,
) *UseCase {
	uc := NewUseCase(appointments, policies, catalog, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

var (
	// Monday 7 Sep 2026
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	// Sunday evening before, so booking notice does not interfere
	testNow = time.Date(2026, 9, 6, 18, 0, 0, 0, time.UTC)
)

func TestExecute_OpenDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakePolicyRepo{policy: mondayPolicy()},
		&fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 10, ServiceID: 5, Date: testMonday})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	wantStarts := []string{"08:00", "09:00", "10:00", "11:00"}
	for i, slot := range resp.Slots {
		assert.Equal(t, wantStarts[i], slot.StartTime.String())
		assert.True(t, slot.Available)
		assert.Equal(t, 60, slot.DurationMinutes)
		assert.Equal(t, 1, slot.AvailableSpots)
	}
	assert.Len(t, resp.AvailableSlots(), 4)
}

func TestExecute_BookingBlocksOverlaps(t *testing.T) {
	policy := mondayPolicy()
	policy.SlotGranularityMinutes = 30

	booked := &domain.Appointment{
		ID:              1,
		TenantID:        10,
		StartTime:       "09:00",
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}

	uc := newTestUseCase(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{booked}},
		&fakePolicyRepo{policy: policy},
		&fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
		testNow,
	)

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 10, ServiceID: 5, Date: testMonday})
	require.NoError(t, err)

	blocked := map[string]bool{"08:30": true, "09:00": true, "09:30": true}
	for _, slot := range resp.Slots {
		if blocked[slot.StartTime.String()] {
			assert.False(t, slot.Available, "slot %s overlaps the booking", slot.StartTime)
			assert.Equal(t, domain.ReasonCapacityReached, slot.Reason)
		} else {
			assert.True(t, slot.Available, "slot %s does not overlap", slot.StartTime)
		}
	}
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{},
		&fakePolicyRepo{policy: mondayPolicy()},
		&fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
		testNow,
	)

	sunday := testMonday.AddDate(0, 0, -1)
	// Request a closed day from a vantage where it is still in the future
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{TenantID: 10, ServiceID: 5, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		catalog *fakeCatalogClient
		policy  *fakePolicyRepo
		req     *Request
		wantErr error
	}{
		{
			name:    "tenant not found",
			catalog: &fakeCatalogClient{tenantErr: catalogClient.ErrTenantNotFound},
			policy:  &fakePolicyRepo{policy: mondayPolicy()},
			req:     &Request{TenantID: 99, ServiceID: 5, Date: testMonday},
			wantErr: ErrTenantNotFound,
		},
		{
			name: "service not found",
			catalog: &fakeCatalogClient{
				tenant:     &catalogClient.Tenant{ID: 10},
				serviceErr: catalogClient.ErrServiceNotFound,
			},
			policy:  &fakePolicyRepo{policy: mondayPolicy()},
			req:     &Request{TenantID: 10, ServiceID: 99, Date: testMonday},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "no calendar policy",
			catalog: &fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
			policy:  &fakePolicyRepo{err: policyRepo.ErrPolicyNotFound},
			req:     &Request{TenantID: 10, ServiceID: 5, Date: testMonday},
			wantErr: ErrPolicyNotFound,
		},
		{
			name:    "past date",
			catalog: &fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
			policy:  &fakePolicyRepo{policy: mondayPolicy()},
			req:     &Request{TenantID: 10, ServiceID: 5, Date: testMonday.AddDate(0, 0, -7)},
			wantErr: ErrInvalidDate,
		},
		{
			name:    "beyond advance booking limit",
			catalog: &fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
			policy:  &fakePolicyRepo{policy: mondayPolicy()},
			req:     &Request{TenantID: 10, ServiceID: 5, Date: testMonday.AddDate(0, 0, 70)},
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name:    "invalid tenant id",
			catalog: &fakeCatalogClient{},
			policy:  &fakePolicyRepo{},
			req:     &Request{TenantID: 0, ServiceID: 5, Date: testMonday},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(&fakeAppointmentRepo{}, tt.policy, tt.catalog, testNow)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_Idempotent(t *testing.T) {
	uc := newTestUseCase(
		&fakeAppointmentRepo{appointments: []*domain.Appointment{
			{ID: 1, StartTime: "09:00", DurationMinutes: 60, Status: domain.StatusScheduled},
		}},
		&fakePolicyRepo{policy: mondayPolicy()},
		&fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
		testNow,
	)

	req := &Request{TenantID: 10, ServiceID: 5, Date: testMonday}
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestCheckSlot(t *testing.T) {
	policy := mondayPolicy()
	policy.LunchStart = ptr.Ptr(types.TimeString("10:00"))
	policy.LunchEnd = ptr.Ptr(types.TimeString("11:00"))

	booked := &domain.Appointment{
		ID:              1,
		StartTime:       "08:00",
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
	}

	newUC := func() *UseCase {
		return newTestUseCase(
			&fakeAppointmentRepo{appointments: []*domain.Appointment{booked}},
			&fakePolicyRepo{policy: policy},
			&fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
			testNow,
		)
	}

	check := func(t *testing.T, req *CheckRequest) *CheckResponse {
		t.Helper()
		resp, err := newUC().CheckSlot(context.Background(), req)
		require.NoError(t, err)
		return resp
	}

	t.Run("free slot is available", func(t *testing.T) {
		resp := check(t, &CheckRequest{TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "09:00"})
		assert.True(t, resp.Available)
		assert.Empty(t, resp.Reason)
	})

	t.Run("occupied slot reports capacity", func(t *testing.T) {
		resp := check(t, &CheckRequest{TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "08:00"})
		assert.False(t, resp.Available)
		assert.Equal(t, domain.ReasonCapacityReached, resp.Reason)
	})

	t.Run("lunch overlap reports lunch break", func(t *testing.T) {
		resp := check(t, &CheckRequest{TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "10:00"})
		assert.False(t, resp.Available)
		assert.Equal(t, domain.ReasonLunchBreak, resp.Reason)
	})

	t.Run("outside working hours", func(t *testing.T) {
		resp := check(t, &CheckRequest{TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "07:00"})
		assert.False(t, resp.Available)

		// Interval would cross closing
		resp = check(t, &CheckRequest{TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "11:30"})
		assert.False(t, resp.Available)
	})

	t.Run("closed day", func(t *testing.T) {
		uc := newUC()
		uc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)}
		resp, err := uc.CheckSlot(context.Background(), &CheckRequest{
			TenantID: 10, ServiceID: 5, Date: testMonday.AddDate(0, 0, -1), StartTime: "09:00",
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Empty(t, resp.Reason)
	})

	t.Run("excluding own appointment frees the slot", func(t *testing.T) {
		resp := check(t, &CheckRequest{
			TenantID:             10,
			ServiceID:            5,
			Date:                 testMonday,
			StartTime:            "08:00",
			ExcludeAppointmentID: ptr.Ptr(booked.ID),
		})
		assert.True(t, resp.Available)
	})

	t.Run("misaligned start is not bookable", func(t *testing.T) {
		// 08:30 is free and inside hours, but off the 60-minute grid;
		// the admission gate would reject it
		resp := check(t, &CheckRequest{TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "08:30"})
		assert.False(t, resp.Available)
		assert.Empty(t, resp.Reason)
	})

	t.Run("inside booking notice is not bookable", func(t *testing.T) {
		noticePolicy := mondayPolicy()
		noticePolicy.MinBookingNoticeMinutes = 60
		uc := newTestUseCase(
			&fakeAppointmentRepo{},
			&fakePolicyRepo{policy: noticePolicy},
			&fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: groomingService()},
			time.Date(2026, 9, 7, 8, 30, 0, 0, time.UTC),
		)

		resp, err := uc.CheckSlot(context.Background(), &CheckRequest{
			TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "09:00",
		})
		require.NoError(t, err)
		assert.False(t, resp.Available)
		assert.Empty(t, resp.Reason)

		// Far enough ahead the same day stays bookable
		resp, err = uc.CheckSlot(context.Background(), &CheckRequest{
			TenantID: 10, ServiceID: 5, Date: testMonday, StartTime: "11:00",
		})
		require.NoError(t, err)
		assert.True(t, resp.Available)
	})

	t.Run("missing start time", func(t *testing.T) {
		_, err := newUC().CheckSlot(context.Background(), &CheckRequest{
			TenantID: 10, ServiceID: 5, Date: testMonday,
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}
