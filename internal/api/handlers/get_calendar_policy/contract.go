package get_calendar_policy

import (
	"context"

	"github.com/MBrunoS/ezpet-sub000/internal/service/policy/models"
)

type PolicyService interface {
	Get(ctx context.Context, tenantID int64) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
