package update_calendar_policy

import (
	"context"

	"github.com/MBrunoS/ezpet-sub000/internal/service/policy/models"
)

type PolicyService interface {
	Update(ctx context.Context, tenantID int64, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
