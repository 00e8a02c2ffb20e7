package create_appointment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	apptRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/appointment"
	catalogClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
	clientClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/clientservice"
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

// memoryAppointmentRepo is a mutex-guarded in-memory store. Combined with
// serialTxManager below it mimics the locking the real repository gets from
// a serializable transaction: reads and the subsequent insert are atomic.
type memoryAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments []*domain.Appointment
}

func newMemoryAppointmentRepo() *memoryAppointmentRepo {
	return &memoryAppointmentRepo{nextID: 1}
}

func (r *memoryAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *appt
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.nextID++
	r.appointments = append(r.appointments, &stored)

	out := stored
	return &out, nil
}

func (r *memoryAppointmentRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.Appointment
	for _, a := range r.appointments {
		if a.TenantID != filter.TenantID {
			continue
		}
		if !filter.IncludeCanceled && a.Status == domain.StatusCanceled {
			continue
		}
		if filter.StartDate != nil && !sameDay(a.Date, *filter.StartDate) {
			continue
		}
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
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

type fakeClientClient struct {
	pet *clientClient.Pet
	err error
}

func (c *fakeClientClient) GetPetWithGracefulDegradation(ctx context.Context, clientID, petID int64) (*clientClient.Pet, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.pet, nil
}

// serialTxManager runs transaction bodies one at a time, the way
// serializable isolation with day-level locks behaves for a single slot.
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// Fixtures: tenant 10, Monday 7 Sep 2026 open 08:00-18:00 with lunch 12:00-13:00

var (
	testMonday = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	testNow    = time.Date(2026, 9, 6, 18, 0, 0, 0, time.UTC)
)

func testPolicy() *domain.CalendarPolicy {
	p := &domain.CalendarPolicy{
		ID:                      1,
		TenantID:                10,
		Timezone:                "UTC",
		AppointmentCapacity:     1,
		SlotGranularityMinutes:  30,
		AdvanceBookingDays:      30,
		MinBookingNoticeMinutes: 0,
		LunchStart:              ptr.Ptr(types.TimeString("12:00")),
		LunchEnd:                ptr.Ptr(types.TimeString("13:00")),
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

func testService() *catalogClient.Service {
	return &catalogClient.Service{
		ID:              5,
		TenantID:        10,
		Name:            "Full Grooming",
		DurationMinutes: 60,
		Price:           ptr.Ptr(120.0),
		Active:          true,
	}
}

type testEnv struct {
	uc      *UseCase
	repo    *memoryAppointmentRepo
	catalog *fakeCatalogClient
	clients *fakeClientClient
	policy  *fakePolicyRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		repo:    newMemoryAppointmentRepo(),
		catalog: &fakeCatalogClient{tenant: &catalogClient.Tenant{ID: 10}, service: testService()},
		clients: &fakeClientClient{pet: &clientClient.Pet{ID: 3, ClientID: 2, Name: "Rex"}},
		policy:  &fakePolicyRepo{policy: testPolicy()},
	}
	env.uc = NewUseCase(env.repo, env.policy, env.catalog, env.clients, &serialTxManager{}, &noopLogger{})
	env.uc.timeProvider = &fixedTimeProvider{now: testNow}
	return env
}

func validRequest() *Request {
	return &Request{
		ClientID:  2,
		TenantID:  10,
		PetID:     3,
		ServiceID: 5,
		Date:      testMonday,
		StartTime: "09:00",
	}
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Equal(t, types.TimeString("09:00"), resp.StartTime)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Full Grooming", resp.ServiceName)
	assert.Equal(t, 120.0, resp.ServicePrice)
	require.NotNil(t, resp.PetName)
	assert.Equal(t, "Rex", *resp.PetName)
}

func TestExecute_DurationSnapshot(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 60, resp.DurationMinutes)

	// A later service edit must not move the stored interval
	env.catalog.service = testService()
	env.catalog.service.DurationMinutes = 90

	stored, err := env.repo.GetByTenantWithFilter(context.Background(), domain.TenantAppointmentsFilter{
		TenantID: 10, StartDate: &testMonday, EndDate: &testMonday,
	})
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 60, stored[0].DurationMinutes)
}

func TestExecute_SlotTaken(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Same slot again at capacity 1
	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// An overlapping but not identical start is rejected too
	req := validRequest()
	req.StartTime = "09:30"
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)

	// Back to back slots only touch and are admitted
	req = validRequest()
	req.StartTime = "10:00"
	_, err = env.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CapacityAboveOne(t *testing.T) {
	env := newTestEnv()
	env.policy.policy.AppointmentCapacity = 2

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CanceledFreesTheSlot(t *testing.T) {
	env := newTestEnv()

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	env.repo.mu.Lock()
	for _, a := range env.repo.appointments {
		if a.ID == resp.ID {
			a.Status = domain.StatusCanceled
		}
	}
	env.repo.mu.Unlock()

	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_PetServiceDegraded(t *testing.T) {
	env := newTestEnv()
	env.clients.err = clientClient.ErrServiceDegraded

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Nil(t, resp.PetName, "booking proceeds without denormalized pet data")
}

func TestExecute_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(env *testEnv, req *Request)
		wantErr error
	}{
		{
			name: "tenant not found",
			mutate: func(env *testEnv, req *Request) {
				env.catalog.tenantErr = catalogClient.ErrTenantNotFound
			},
			wantErr: ErrTenantNotFound,
		},
		{
			name: "service not found",
			mutate: func(env *testEnv, req *Request) {
				env.catalog.serviceErr = catalogClient.ErrServiceNotFound
			},
			wantErr: ErrServiceNotFound,
		},
		{
			name: "pet not found",
			mutate: func(env *testEnv, req *Request) {
				env.clients.err = clientClient.ErrPetNotFound
			},
			wantErr: ErrPetNotFound,
		},
		{
			name: "closed day",
			mutate: func(env *testEnv, req *Request) {
				req.Date = testMonday.AddDate(0, 0, 1) // Tuesday, closed
			},
			wantErr: ErrTenantClosed,
		},
		{
			name: "past date",
			mutate: func(env *testEnv, req *Request) {
				req.Date = testMonday.AddDate(0, 0, -7)
			},
			wantErr: ErrInvalidDate,
		},
		{
			name: "beyond advance limit",
			mutate: func(env *testEnv, req *Request) {
				req.Date = testMonday.AddDate(0, 0, 70)
			},
			wantErr: ErrDateTooFarInFuture,
		},
		{
			name: "before opening",
			mutate: func(env *testEnv, req *Request) {
				req.StartTime = "07:00"
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "interval crosses closing",
			mutate: func(env *testEnv, req *Request) {
				req.StartTime = "17:30"
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "misaligned with the slot grid",
			mutate: func(env *testEnv, req *Request) {
				req.StartTime = "09:17"
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "overlaps the lunch window",
			mutate: func(env *testEnv, req *Request) {
				req.StartTime = "12:30"
			},
			wantErr: ErrInvalidTimeSlot,
		},
		{
			name: "violates booking notice",
			mutate: func(env *testEnv, req *Request) {
				env.policy.policy.MinBookingNoticeMinutes = 120
				env.uc.timeProvider = &fixedTimeProvider{
					now: time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC),
				}
			},
			wantErr: ErrTooLateToBook,
		},
		{
			name: "non-positive client id",
			mutate: func(env *testEnv, req *Request) {
				req.ClientID = 0
			},
			wantErr: ErrInvalidInput,
		},
		{
			name: "notes too long",
			mutate: func(env *testEnv, req *Request) {
				long := make([]byte, domain.MaxNotesLength+1)
				for i := range long {
					long[i] = 'a'
				}
				req.Notes = ptr.Ptr(string(long))
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv()
			req := validRequest()
			tt.mutate(env, req)

			_, err := env.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)

			appointments, listErr := env.repo.GetByTenantWithFilter(context.Background(), domain.TenantAppointmentsFilter{
				TenantID: 10, IncludeCanceled: true,
			})
			require.NoError(t, listErr)
			assert.Empty(t, appointments, "rejected booking must leave no partial state")
		})
	}
}

func TestExecute_ConcurrentLastSpot(t *testing.T) {
	env := newTestEnv()

	const attempts = 8
	errs := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.Execute(context.Background(), validRequest())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var succeeded, rejected int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		default:
			assert.ErrorIs(t, err, ErrSlotNotAvailable)
			rejected++
		}
	}

	assert.Equal(t, 1, succeeded, "exactly one request wins the last spot")
	assert.Equal(t, attempts-1, rejected)

	stored, err := env.repo.GetByTenantWithFilter(context.Background(), domain.TenantAppointmentsFilter{
		TenantID: 10, StartDate: &testMonday, EndDate: &testMonday,
	})
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

// failingAppointmentRepo makes the day read fail the way the real
// repository does when the driver reports an error.
type failingAppointmentRepo struct {
	*memoryAppointmentRepo
	filterErr error
}

func (r *failingAppointmentRepo) GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error) {
	if r.filterErr != nil {
		return nil, r.filterErr
	}
	return r.memoryAppointmentRepo.GetByTenantWithFilter(ctx, filter)
}

func TestExecute_SerializationFailureStaysRetryable(t *testing.T) {
	driverErr := &pq.Error{Code: "40001", Message: "could not serialize access"}
	repo := &failingAppointmentRepo{
		memoryAppointmentRepo: newMemoryAppointmentRepo(),
		filterErr:             fmt.Errorf("%w: GetByTenantWithFilter - execute query: %w", apptRepo.ErrExecQuery, driverErr),
	}

	env := newTestEnv()
	uc := NewUseCase(repo, env.policy, env.catalog, env.clients, &serialTxManager{}, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternal)

	// The pq error must survive both the storage and the gate wraps so the
	// transaction manager can retry the attempt
	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}
