package get_tenant_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MBrunoS/ezpet-sub000/internal/api/handlers"
	"github.com/MBrunoS/ezpet-sub000/internal/api/middleware"
	"github.com/MBrunoS/ezpet-sub000/internal/service/appointments"
)

const (
	msgInvalidTenantID = "invalid tenant ID"
	msgInvalidDate     = "invalid date format, expected YYYY-MM-DD"
	msgMissingUserID   = "missing user ID"
	msgTenantNotFound  = "tenant not found"
	msgForbidden       = "access denied"
	msgInvalidFilter   = "invalid filter parameters"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/appointments
// Query params: startDate, endDate, status, includeCanceled (all optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{tenantId}/appointments - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /tenants/{tenantId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	query := r.URL.Query()
	includeCanceled := query.Get("includeCanceled") == "true"

	serviceReq, err := ToServiceRequest(tenantID, userID,
		query.Get("startDate"), query.Get("endDate"), query.Get("status"), includeCanceled)
	if err != nil {
		h.logger.Warn("GET /tenants/{tenantId}/appointments - Invalid date: tenant_id=%d, error=%v", tenantID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetTenantAppointments(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{tenantId}/appointments - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /tenants/{tenantId}/appointments - Access denied: tenant_id=%d, user_id=%d",
				tenantID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{tenantId}/appointments - Invalid filter: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /tenants/{tenantId}/appointments - Failed to get appointments: tenant_id=%d, error=%v",
				tenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{tenantId}/appointments - Appointments retrieved successfully: tenant_id=%d, user_id=%d, count=%d",
		tenantID, userID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result.Appointments)
}
