package create_appointment

import (
	"context"
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
	"github.com/MBrunoS/ezpet-sub000/internal/integrations/clientservice"
)

// AppointmentRepository persists and lists appointments
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
}

// PolicyRepository loads a tenant's calendar policy
type PolicyRepository interface {
	GetByTenantID(ctx context.Context, tenantID int64) (*domain.CalendarPolicy, error)
}

// CatalogServiceClient resolves tenants and services
type CatalogServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*catalogservice.Tenant, error)
	GetService(ctx context.Context, tenantID, serviceID int64) (*catalogservice.Service, error)
}

// ClientServiceClient resolves the client's pet
type ClientServiceClient interface {
	GetPetWithGracefulDegradation(ctx context.Context, clientID, petID int64) (*clientservice.Pet, error)
}

// TransactionManager serializes the admission check with the insert
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
