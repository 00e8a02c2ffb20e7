package create_appointment

import (
	"errors"
	"net/http"

	"github.com/MBrunoS/ezpet-sub000/internal/api/handlers"
	createAppointment "github.com/MBrunoS/ezpet-sub000/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateFormat  = "invalid date or start time format, expected YYYY-MM-DD and HH:MM"
	msgSlotNotAvailable   = "the selected time slot is not available"
	msgTenantNotFound     = "tenant not found"
	msgServiceNotFound    = "service not found"
	msgPetNotFound        = "pet not found"
	msgPolicyNotFound     = "tenant has no calendar policy"
	msgTenantClosed       = "tenant is closed on the selected date"
	msgInvalidDate        = "invalid appointment date"
	msgDateTooFar         = "appointment date is too far in the future"
	msgInvalidTimeSlot    = "invalid time slot"
	msgTooLateToBook      = "too late to book this slot"
	msgInvalidInput       = "invalid input data"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: client_id=%d, tenant_id=%d", req.ClientID, req.TenantID)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrTenantNotFound):
			h.logger.Warn("POST /appointments - Tenant not found: tenant_id=%d", req.TenantID)
			handlers.RespondNotFound(w, msgTenantNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: tenant_id=%d, service_id=%d", req.TenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrPetNotFound):
			h.logger.Warn("POST /appointments - Pet not found: client_id=%d, pet_id=%d", req.ClientID, req.PetID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, createAppointment.ErrPolicyNotFound):
			h.logger.Warn("POST /appointments - Policy not found: tenant_id=%d", req.TenantID)
			handlers.RespondNotFound(w, msgPolicyNotFound)

		case errors.Is(err, createAppointment.ErrTenantClosed):
			h.logger.Warn("POST /appointments - Tenant closed: tenant_id=%d, date=%s", req.TenantID, req.Date)
			handlers.RespondBadRequest(w, msgTenantClosed)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: client_id=%d, date=%s", req.ClientID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: client_id=%d, date=%s", req.ClientID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: client_id=%d, tenant_id=%d, time=%s",
				req.ClientID, req.TenantID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: client_id=%d, tenant_id=%d", req.ClientID, req.TenantID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: client_id=%d, error=%v", req.ClientID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: client_id=%d, tenant_id=%d, error=%v",
				req.ClientID, req.TenantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, client_id=%d, tenant_id=%d",
		result.ID, req.ClientID, req.TenantID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
