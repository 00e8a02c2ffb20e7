package reschedule_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	apptRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/appointment"
	policyRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/policy"
	catalogClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
)

// UseCase moves an existing appointment to a new slot through the same
// serializable admission gate as a fresh booking. The appointment being
// moved is excluded from the capacity count, so moving within a full slot's
// own footprint (same time, different service of equal length) still works.
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyRepo      PolicyRepository
	catalogClient   CatalogServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the reschedule use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policyRepo PolicyRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policyRepo:      policyRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute validates and applies the schedule change
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RescheduleAppointment: id=%d, client=%d, date=%s, time=%s",
		req.AppointmentID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("RescheduleAppointment: appointment id=%d not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if appt.ClientID != req.ClientID {
			uc.logger.Warn("RescheduleAppointment: client id=%d does not own appointment id=%d",
				req.ClientID, req.AppointmentID)
			return ErrAccessDenied
		}

		if !appt.CanBeRescheduled() {
			uc.logger.Warn("RescheduleAppointment: appointment id=%d has status %s", appt.ID, appt.Status)
			return ErrCannotReschedule
		}

		// Defaults to the current snapshot; replaced below when the
		// reschedule also changes the service
		params := apptRepo.RescheduleParams{
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: appt.DurationMinutes,
			ServiceID:       appt.ServiceID,
			ServiceName:     appt.ServiceName,
			ServicePrice:    appt.ServicePrice,
		}

		if req.ServiceID != nil && *req.ServiceID != appt.ServiceID {
			service, err := uc.catalogClient.GetService(txCtx, appt.TenantID, *req.ServiceID)
			if err != nil {
				if errors.Is(err, catalogClient.ErrServiceNotFound) {
					uc.logger.Warn("RescheduleAppointment: service id=%d not found", *req.ServiceID)
					return ErrServiceNotFound
				}
				uc.logger.Error("RescheduleAppointment: failed to get service id=%d: %v", *req.ServiceID, err)
				return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
			}

			params.ServiceID = service.ID
			params.ServiceName = service.Name
			params.DurationMinutes = service.DurationMinutes
			if service.Price != nil {
				params.ServicePrice = *service.Price
			} else {
				params.ServicePrice = 0.0
			}
		}

		policy, err := uc.policyRepo.GetByTenantID(txCtx, appt.TenantID)
		if err != nil {
			if errors.Is(err, policyRepo.ErrPolicyNotFound) {
				uc.logger.Warn("RescheduleAppointment: no calendar policy for tenant id=%d", appt.TenantID)
				return ErrPolicyNotFound
			}
			uc.logger.Error("RescheduleAppointment: failed to get calendar policy: %v", err)
			return fmt.Errorf("%w: failed to get calendar policy: %w", ErrInternal, err)
		}

		loc := policy.Location()

		if err := validateDate(req.Date, now, loc, policy.AdvanceBookingDays); err != nil {
			uc.logger.Warn("RescheduleAppointment: date validation failed: %v", err)
			return err
		}

		hours := policy.HoursFor(req.Date)
		if !hours.IsOpen {
			uc.logger.Warn("RescheduleAppointment: tenant is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrTenantClosed
		}

		interval, err := domain.NewInterval(req.StartTime, params.DurationMinutes)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to build candidate interval: %v", err)
			return fmt.Errorf("%w: failed to build candidate interval: %v", ErrInternal, err)
		}

		if err := validateSlotShape(interval, hours, policy); err != nil {
			uc.logger.Warn("RescheduleAppointment: slot validation failed: %v", err)
			return err
		}

		if err := validateBookingNotice(req.Date, req.StartTime, now, loc, policy.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("RescheduleAppointment: booking notice validation failed: %v", err)
			return err
		}

		filter := domain.TenantAppointmentsFilter{
			TenantID:        appt.TenantID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeCanceled: false,
		}

		appointments, err := uc.appointmentRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("RescheduleAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		// The moving appointment never blocks its own target slot
		overlapping := domain.CountOverlapping(interval, appointments, &appt.ID)
		if overlapping >= policy.AppointmentCapacity {
			uc.logger.Warn("RescheduleAppointment: slot not available, %d/%d spots taken",
				overlapping, policy.AppointmentCapacity)
			return ErrSlotNotAvailable
		}

		if err := uc.appointmentRepo.Reschedule(txCtx, appt.ID, params); err != nil {
			uc.logger.Error("RescheduleAppointment: failed to reschedule appointment id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to reschedule appointment: %w", ErrInternal, err)
		}

		appt.Date = req.Date
		appt.StartTime = req.StartTime
		appt.DurationMinutes = params.DurationMinutes
		appt.ServiceID = params.ServiceID
		appt.ServiceName = params.ServiceName
		appt.ServicePrice = params.ServicePrice
		result = appt

		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("RescheduleAppointment: successfully rescheduled appointment id=%d", result.ID)

	return &Response{
		ID:              result.ID,
		ClientID:        result.ClientID,
		TenantID:        result.TenantID,
		PetID:           result.PetID,
		ServiceID:       result.ServiceID,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ServiceName:     result.ServiceName,
		ServicePrice:    result.ServicePrice,
		PetName:         result.PetName,
		Notes:           result.Notes,
	}, nil
}
