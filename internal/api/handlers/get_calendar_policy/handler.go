package get_calendar_policy

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MBrunoS/ezpet-sub000/internal/api/handlers"
	"github.com/MBrunoS/ezpet-sub000/internal/service/policy"
)

const (
	msgInvalidTenantID = "invalid tenant ID"
	msgNotFound        = "calendar policy not found"
)

type Handler struct {
	service PolicyService
	logger  Logger
}

func NewHandler(service PolicyService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/calendar-policy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantIDStr := vars["tenantId"]

	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/calendar-policy - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	result, err := h.service.Get(r.Context(), tenantID)
	if err != nil {
		if errors.Is(err, policy.ErrPolicyNotFound) {
			h.logger.Warn("GET /tenants/{id}/calendar-policy - Policy not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("GET /tenants/{id}/calendar-policy - Failed to get policy: tenant_id=%d, error=%v",
			tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/calendar-policy - Policy retrieved successfully: tenant_id=%d", tenantID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
