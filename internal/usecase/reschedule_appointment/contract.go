package reschedule_appointment

import (
	"context"
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/internal/infra/storage/appointment"
	"github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
)

// AppointmentRepository reads and updates appointments
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
	Reschedule(ctx context.Context, id int64, params appointment.RescheduleParams) error
}

// PolicyRepository loads a tenant's calendar policy
type PolicyRepository interface {
	GetByTenantID(ctx context.Context, tenantID int64) (*domain.CalendarPolicy, error)
}

// CatalogServiceClient resolves services when the reschedule changes one
type CatalogServiceClient interface {
	GetService(ctx context.Context, tenantID, serviceID int64) (*catalogservice.Service, error)
}

// TransactionManager serializes the admission check with the update
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swappable in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface needed by the use case
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
