package check_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MBrunoS/ezpet-sub000/internal/api/handlers"
	getAvailableSlots "github.com/MBrunoS/ezpet-sub000/internal/usecase/get_available_slots"
)

const (
	msgInvalidTenantID      = "invalid tenant ID"
	msgInvalidServiceID     = "invalid service ID"
	msgMissingServiceID     = "service ID is required"
	msgMissingDate          = "date is required"
	msgMissingStartTime     = "start time is required"
	msgInvalidParams        = "invalid date or start time format"
	msgInvalidExcludeID     = "invalid exclude appointment ID"
	msgTenantNotFound       = "tenant not found"
	msgServiceNotFound      = "service not found"
	msgPolicyNotFound       = "tenant has no calendar policy"
	msgInvalidDateValue     = "invalid date"
	msgDateTooFar           = "date is too far in the future"
)

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/slot-availability
// Query params: serviceId, date, startTime (all required),
// excludeAppointmentId (optional, for reschedule pre-checks)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tenantIDStr := vars["tenantId"]
	tenantID, err := strconv.ParseInt(tenantIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slot-availability - Invalid tenant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTenantID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /tenants/{id}/slot-availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slot-availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/slot-availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	startTimeStr := r.URL.Query().Get("startTime")
	if startTimeStr == "" {
		h.logger.Warn("GET /tenants/{id}/slot-availability - Missing start time")
		handlers.RespondBadRequest(w, msgMissingStartTime)
		return
	}

	var excludeID *int64
	if excludeStr := r.URL.Query().Get("excludeAppointmentId"); excludeStr != "" {
		id, err := strconv.ParseInt(excludeStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /tenants/{id}/slot-availability - Invalid exclude appointment ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidExcludeID)
			return
		}
		excludeID = &id
	}

	useCaseReq, err := ToUseCaseRequest(tenantID, serviceID, dateStr, startTimeStr, excludeID)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/slot-availability - Invalid params: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.CheckSlot(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrTenantNotFound):
			h.logger.Warn("GET /tenants/{id}/slot-availability - Tenant not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /tenants/{id}/slot-availability - Service not found: tenant_id=%d, service_id=%d",
				tenantID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrPolicyNotFound):
			h.logger.Warn("GET /tenants/{id}/slot-availability - Policy not found: tenant_id=%d", tenantID)
			handlers.RespondNotFound(w, msgPolicyNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /tenants/{id}/slot-availability - Invalid date: tenant_id=%d, date=%s",
				tenantID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDateValue)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /tenants/{id}/slot-availability - Date too far in future: tenant_id=%d, date=%s",
				tenantID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /tenants/{id}/slot-availability - Failed to check slot: tenant_id=%d, service_id=%d, error=%v",
				tenantID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(useCaseReq, result)

	h.logger.Info("GET /tenants/{id}/slot-availability - Slot checked: tenant_id=%d, service_id=%d, date=%s, time=%s, available=%t",
		tenantID, serviceID, dateStr, startTimeStr, result.Available)
	handlers.RespondJSON(w, http.StatusOK, response)
}
