package get_tenant_appointments

import (
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	"github.com/MBrunoS/ezpet-sub000/internal/service/appointments/models"
)

// ToServiceRequest builds the service request from query parameters.
// startDate and endDate must come together or not at all.
func ToServiceRequest(tenantID, userID int64, startDateStr, endDateStr, status string, includeCanceled bool) (*models.GetTenantAppointmentsRequest, error) {
	req := &models.GetTenantAppointmentsRequest{
		UserID:          userID,
		TenantID:        tenantID,
		IncludeCanceled: includeCanceled,
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if status != "" {
		req.Status = &status
	}

	return req, nil
}
