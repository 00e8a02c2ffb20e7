package appointments

import (
	"context"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
)

// AppointmentRepository is the appointment storage interface
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetByTenantWithFilter(ctx context.Context, filter domain.TenantAppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// CatalogServiceClient resolves tenants for manager access checks
type CatalogServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*catalogservice.Tenant, error)
}

// Logger is the logging interface needed by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
