package reschedule_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	apptRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/appointment"
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

type memoryAppointmentRepo struct {
	appointments map[int64]*domain.Appointment
}

func newMemoryAppointmentRepo(appointments ...*domain.Appointment) *memoryAppointmentRepo {
	repo := &memoryAppointmentRepo{appointments: map[int64]*domain.Appointment{}}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (r *memoryAppointmentRepo) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a, ok := r.appointments[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memoryAppointmentRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range r.appointments {
		if a.TenantID != filter.TenantID {
			continue
		}
		if !filter.IncludeCanceled && a.Status == domain.StatusCanceled {
			continue
		}
		if filter.StartDate != nil {
			d, f := a.Date, *filter.StartDate
			if d.Year() != f.Year() || d.YearDay() != f.YearDay() {
				continue
			}
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func (r *memoryAppointmentRepo) Reschedule(ctx context.Context, id int64, params apptRepo.RescheduleParams) error {
	a, ok := r.appointments[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	a.Date = params.Date
	a.StartTime = params.StartTime
	a.DurationMinutes = params.DurationMinutes
	a.ServiceID = params.ServiceID
	a.ServiceName = params.ServiceName
	a.ServicePrice = params.ServicePrice
	a.UpdatedAt = time.Now()
	return nil
}

type fakePolicyRepo struct {
	policy *domain.CalendarPolicy
}

func (r *fakePolicyRepo) GetByTenantID(ctx context.Context, tenantID int64) (*domain.CalendarPolicy, error) {
	return r.policy, nil
}

type fakeCatalogClient struct {
	service    *catalogClient.Service
	serviceErr error
}

func (c *fakeCatalogClient) GetService(ctx context.Context, tenantID, serviceID int64) (*catalogClient.Service, error) {
	if c.serviceErr != nil {
		return nil, c.serviceErr
	}
	return c.service, nil
}

type passthroughTxManager struct{}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var (
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow    = time.Date(2026, 9, 6, 18, 0, 0, 0, time.UTC)
)

func testPolicy() *domain.CalendarPolicy {
	p := &domain.CalendarPolicy{
		ID:                     1,
		TenantID:               10,
		Timezone:               "UTC",
		AppointmentCapacity:    1,
		SlotGranularityMinutes: 30,
		AdvanceBookingDays:     30,
	}
	for i := range p.WorkingHours {
		p.WorkingHours[i] = domain.DayHours{Weekday: time.Weekday(i), IsOpen: false}
	}
	p.WorkingHours[time.Monday] = domain.DayHours{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  "08:00",
		CloseTime: "18:00",
	}
	return p
}

func scheduledAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		TenantID:        10,
		ClientID:        2,
		PetID:           3,
		ServiceID:       5,
		Date:            testMonday,
		StartTime:       "09:00",
		DurationMinutes: 60,
		Status:          domain.StatusScheduled,
		ServiceName:     "Full Grooming",
		ServicePrice:    120.0,
	}
}

func newTestUseCase(repo *memoryAppointmentRepo, catalog *fakeCatalogClient) *UseCase {
	uc := NewUseCase(repo, &fakePolicyRepo{policy: testPolicy()}, catalog, &passthroughTxManager{}, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func validRequest() *Request {
	return &Request{
		AppointmentID: 1,
		ClientID:      2,
		Date:          testMonday,
		StartTime:     "14:00",
	}
}

func TestExecute_MoveToFreeSlot(t *testing.T) {
	repo := newMemoryAppointmentRepo(scheduledAppointment())
	uc := newTestUseCase(repo, &fakeCatalogClient{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("14:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "scheduled", resp.Status)
	// Unchanged snapshot when no service switch is requested
	assert.Equal(t, int64(5), resp.ServiceID)
	assert.Equal(t, "Full Grooming", resp.ServiceName)

	stored, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("14:00"), stored.StartTime)
}

func TestExecute_SelfExclusion(t *testing.T) {
	repo := newMemoryAppointmentRepo(scheduledAppointment())
	uc := newTestUseCase(repo, &fakeCatalogClient{})

	// Target overlaps the appointment's own current interval; with
	// capacity 1 this only passes because the mover is excluded
	req := validRequest()
	req.StartTime = "09:30"

	_, err := uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_TargetSlotTaken(t *testing.T) {
	other := scheduledAppointment()
	other.ID = 2
	other.ClientID = 99
	other.StartTime = "14:00"

	repo := newMemoryAppointmentRepo(scheduledAppointment(), other)
	uc := newTestUseCase(repo, &fakeCatalogClient{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// The original slot is untouched after the rejection
	stored, getErr := repo.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, types.TimeString("09:00"), stored.StartTime)
}

func TestExecute_ServiceSwitchRefreshesSnapshot(t *testing.T) {
	repo := newMemoryAppointmentRepo(scheduledAppointment())
	uc := newTestUseCase(repo, &fakeCatalogClient{service: &catalogClient.Service{
		ID:              8,
		TenantID:        10,
		Name:            "Nail Trim",
		DurationMinutes: 30,
		Price:           ptr.Ptr(45.0),
		Active:          true,
	}})

	req := validRequest()
	req.ServiceID = ptr.Ptr(int64(8))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(8), resp.ServiceID)
	assert.Equal(t, "Nail Trim", resp.ServiceName)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, 45.0, resp.ServicePrice)
}

func TestExecute_SameServiceIDSkipsLookup(t *testing.T) {
	repo := newMemoryAppointmentRepo(scheduledAppointment())
	// The catalog fake would fail any lookup; passing the current service
	// id must not trigger one
	uc := newTestUseCase(repo, &fakeCatalogClient{serviceErr: catalogClient.ErrServiceNotFound})

	req := validRequest()
	req.ServiceID = ptr.Ptr(int64(5))

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		appointment *domain.Appointment
		req         *Request
		serviceErr  error
		wantErr     error
	}{
		{
			name:        "appointment not found",
			appointment: scheduledAppointment(),
			req: &Request{
				AppointmentID: 99, ClientID: 2, Date: testMonday, StartTime: "14:00",
			},
			wantErr: ErrAppointmentNotFound,
		},
		{
			name:        "not the owner",
			appointment: scheduledAppointment(),
			req: &Request{
				AppointmentID: 1, ClientID: 77, Date: testMonday, StartTime: "14:00",
			},
			wantErr: ErrAccessDenied,
		},
		{
			name: "canceled appointment",
			appointment: func() *domain.Appointment {
				a := scheduledAppointment()
				a.Status = domain.StatusCanceled
				return a
			}(),
			req:     validRequest(),
			wantErr: ErrCannotReschedule,
		},
		{
			name: "completed appointment",
			appointment: func() *domain.Appointment {
				a := scheduledAppointment()
				a.Status = domain.StatusCompleted
				return a
			}(),
			req:     validRequest(),
			wantErr: ErrCannotReschedule,
		},
		{
			name:        "replacement service not found",
			appointment: scheduledAppointment(),
			req: &Request{
				AppointmentID: 1, ClientID: 2, Date: testMonday, StartTime: "14:00",
				ServiceID: ptr.Ptr(int64(404)),
			},
			serviceErr: catalogClient.ErrServiceNotFound,
			wantErr:    ErrServiceNotFound,
		},
		{
			name:        "closed day",
			appointment: scheduledAppointment(),
			req: &Request{
				AppointmentID: 1, ClientID: 2, Date: testMonday.AddDate(0, 0, 1), StartTime: "14:00",
			},
			wantErr: ErrTenantClosed,
		},
		{
			name:        "misaligned target",
			appointment: scheduledAppointment(),
			req: &Request{
				AppointmentID: 1, ClientID: 2, Date: testMonday, StartTime: "14:10",
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name:        "missing start time",
			appointment: scheduledAppointment(),
			req: &Request{
				AppointmentID: 1, ClientID: 2, Date: testMonday,
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMemoryAppointmentRepo(tt.appointment)
			uc := newTestUseCase(repo, &fakeCatalogClient{serviceErr: tt.serviceErr})

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
