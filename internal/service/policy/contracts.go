package policy

import (
	"context"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
)

// PolicyRepository is the calendar policy storage interface
type PolicyRepository interface {
	GetByTenantID(ctx context.Context, tenantID int64) (*domain.CalendarPolicy, error)
	Upsert(ctx context.Context, p *domain.CalendarPolicy) (*domain.CalendarPolicy, error)
}

// CatalogServiceClient resolves tenants for manager access checks
type CatalogServiceClient interface {
	GetTenant(ctx context.Context, tenantID int64) (*catalogservice.Tenant, error)
}

// TransactionManager keeps the policy row and its weekday rows consistent
// during an update
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface needed by the service
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
