package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	policyRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/policy"
	catalogClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
	clientClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/clientservice"
)

// UseCase is the booking admission gate for new appointments. The capacity
// check and the insert run inside one serializable transaction with the
// day's rows locked, so two concurrent requests for the last free spot
// cannot both pass validation: one commits, the other is rejected.
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyRepo      PolicyRepository
	catalogClient   CatalogServiceClient
	clientClient    ClientServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the admission gate use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policyRepo PolicyRepository,
	catalogClient CatalogServiceClient,
	clientClient ClientServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policyRepo:      policyRepo,
		catalogClient:   catalogClient,
		clientClient:    clientClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute admits and persists a new appointment, or rejects the write.
// Failure never leaves partial state: either the record is committed in
// full or nothing changes.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: client=%d, tenant=%d, pet=%d, service=%d, date=%s, time=%s",
		req.ClientID, req.TenantID, req.PetID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	if _, err := uc.catalogClient.GetTenant(ctx, req.TenantID); err != nil {
		if errors.Is(err, catalogClient.ErrTenantNotFound) {
			uc.logger.Warn("CreateAppointment: tenant id=%d not found", req.TenantID)
			return nil, ErrTenantNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get tenant id=%d: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	service, err := uc.catalogClient.GetService(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// The pet only contributes denormalized display data; an unreachable
	// ClientService does not block the booking
	var petName *string
	pet, err := uc.clientClient.GetPetWithGracefulDegradation(ctx, req.ClientID, req.PetID)
	switch {
	case err == nil:
		petName = &pet.Name
	case errors.Is(err, clientClient.ErrPetNotFound):
		uc.logger.Warn("CreateAppointment: pet id=%d not found for client id=%d", req.PetID, req.ClientID)
		return nil, ErrPetNotFound
	case errors.Is(err, clientClient.ErrServiceDegraded):
		uc.logger.Warn("CreateAppointment: proceeding without pet data for pet id=%d: %v", req.PetID, err)
	default:
		uc.logger.Error("CreateAppointment: failed to get pet id=%d: %v", req.PetID, err)
		return nil, fmt.Errorf("%w: failed to get pet: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		policy, err := uc.policyRepo.GetByTenantID(txCtx, req.TenantID)
		if err != nil {
			if errors.Is(err, policyRepo.ErrPolicyNotFound) {
				uc.logger.Warn("CreateAppointment: no calendar policy for tenant id=%d", req.TenantID)
				return ErrPolicyNotFound
			}
			uc.logger.Error("CreateAppointment: failed to get calendar policy: %v", err)
			return fmt.Errorf("%w: failed to get calendar policy: %w", ErrInternal, err)
		}

		loc := policy.Location()

		if err := validateDate(req.Date, now, loc, policy.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		hours := policy.HoursFor(req.Date)
		if !hours.IsOpen {
			uc.logger.Warn("CreateAppointment: tenant is closed on %s", req.Date.Format(domain.DateFormat))
			return ErrTenantClosed
		}

		interval, err := domain.NewInterval(req.StartTime, service.DurationMinutes)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to build candidate interval: %v", err)
			return fmt.Errorf("%w: failed to build candidate interval: %v", ErrInternal, err)
		}

		if err := validateSlotShape(interval, hours, policy); err != nil {
			uc.logger.Warn("CreateAppointment: slot validation failed: %v", err)
			return err
		}

		if err := validateBookingNotice(req.Date, req.StartTime, now, loc, policy.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: booking notice validation failed: %v", err)
			return err
		}

		// Locks the day's active appointments (FOR UPDATE) so the count
		// below stays true until commit
		filter := domain.TenantAppointmentsFilter{
			TenantID:        req.TenantID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeCanceled: false,
		}

		appointments, err := uc.appointmentRepo.GetByTenantWithFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %w", ErrInternal, err)
		}

		overlapping := domain.CountOverlapping(interval, appointments, nil)
		if overlapping >= policy.AppointmentCapacity {
			uc.logger.Warn("CreateAppointment: slot not available, %d/%d spots taken",
				overlapping, policy.AppointmentCapacity)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateAppointment: slot available, %d/%d spots taken",
			overlapping, policy.AppointmentCapacity)

		appt := &domain.Appointment{
			TenantID:  req.TenantID,
			ClientID:  req.ClientID,
			PetID:     req.PetID,
			ServiceID: req.ServiceID,
			Date:      req.Date,
			StartTime: req.StartTime,
			// Snapshot: later service edits must not move this interval
			DurationMinutes: service.DurationMinutes,
			Status:          domain.StatusScheduled,
			ServiceName:     service.Name,
			ServicePrice:    servicePrice(service),
			PetName:         petName,
			Notes:           req.Notes,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

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
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// servicePrice extracts the price, defaulting to 0 when unset
func servicePrice(service *catalogClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
