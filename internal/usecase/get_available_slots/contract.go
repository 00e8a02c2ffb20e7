package get_available_slots

import (
	"context"
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
)

// AppointmentRepository lists a tenant's appointments for a day
type AppointmentRepository interface {
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
