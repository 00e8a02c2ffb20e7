package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	policyRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/policy"
	catalogClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
)

// UseCase computes the annotated availability of a tenant's day: generated
// candidate slots, lunch-window exclusion and the capacity verdict per slot.
// It is strictly read-only; the admission gate owns all writes.
type UseCase struct {
	appointmentRepo AppointmentRepository
	policyRepo      PolicyRepository
	catalogClient   CatalogServiceClient
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the availability use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	policyRepo PolicyRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		policyRepo:      policyRepo,
		catalogClient:   catalogClient,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute returns the full annotated slot sequence for the requested day
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%d, service=%d, date=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	service, policy, err := uc.loadContext(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	loc := policy.Location()

	if err := validateDate(req.Date, now, loc, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	hours := policy.HoursFor(req.Date)
	if !hours.IsOpen {
		uc.logger.Info("GetAvailableSlots: tenant=%d is closed on %s",
			req.TenantID, req.Date.Format(domain.DateFormat))
		return &Response{
			Date:      req.Date,
			TenantID:  req.TenantID,
			ServiceID: req.ServiceID,
			Slots:     []domain.Slot{},
		}, nil
	}

	candidates, err := generateCandidateSlots(hours, policy.SlotGranularityMinutes, service.DurationMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidate slots: %v", ErrInternal, err)
	}

	candidates, err = filterByNotice(candidates, req.Date, now, loc, policy.MinBookingNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to apply booking notice: %v", err)
		return nil, fmt.Errorf("%w: failed to apply booking notice: %v", ErrInternal, err)
	}

	appointments, err := uc.loadDayAppointments(ctx, req.TenantID, req.Date)
	if err != nil {
		return nil, err
	}

	slots, err := annotateSlots(candidates, service.DurationMinutes, policy, appointments, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to annotate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to annotate slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for tenant=%d, service=%d, date=%s",
		len(slots), req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		TenantID:  req.TenantID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

// CheckSlot answers whether one specific slot could be booked right now.
// It is a read-side pre-flight; the admission gate re-validates inside its
// transaction before any write.
func (uc *UseCase) CheckSlot(ctx context.Context, req *CheckRequest) (*CheckResponse, error) {
	uc.logger.Info("CheckSlot: tenant=%d, service=%d, date=%s, time=%s",
		req.TenantID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateCheckRequest(req); err != nil {
		uc.logger.Warn("CheckSlot: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	service, policy, err := uc.loadContext(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		return nil, err
	}

	loc := policy.Location()

	if err := validateDate(req.Date, now, loc, policy.AdvanceBookingDays); err != nil {
		uc.logger.Warn("CheckSlot: date validation failed: %v", err)
		return nil, err
	}

	hours := policy.HoursFor(req.Date)
	if !hours.IsOpen {
		return &CheckResponse{Available: false}, nil
	}

	interval, err := domain.NewInterval(req.StartTime, service.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to build candidate interval: %v", ErrInternal, err)
	}

	// Outside working hours: not bookable, independent of occupancy
	if req.StartTime.IsBefore(hours.OpenTime) || interval.End.IsAfter(hours.CloseTime) {
		return &CheckResponse{Available: false}, nil
	}

	// The verdict must agree with the admission gate: starts off the grid
	// or inside the booking notice would be rejected there
	aligned, err := onGranularityGrid(req.StartTime, hours.OpenTime, policy.SlotGranularityMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check grid alignment: %v", ErrInternal, err)
	}
	if !aligned {
		return &CheckResponse{Available: false}, nil
	}

	noticeOK, err := satisfiesNotice(req.Date, req.StartTime, now, loc, policy.MinBookingNoticeMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check booking notice: %v", ErrInternal, err)
	}
	if !noticeOK {
		return &CheckResponse{Available: false}, nil
	}

	if policy.HasLunchWindow() && interval.Overlaps(policy.LunchInterval()) {
		return &CheckResponse{Available: false, Reason: domain.ReasonLunchBreak}, nil
	}

	appointments, err := uc.loadDayAppointments(ctx, req.TenantID, req.Date)
	if err != nil {
		return nil, err
	}

	if !domain.SlotAvailable(interval, appointments, policy.AppointmentCapacity, req.ExcludeAppointmentID) {
		return &CheckResponse{Available: false, Reason: domain.ReasonCapacityReached}, nil
	}

	return &CheckResponse{Available: true}, nil
}

func (uc *UseCase) loadContext(ctx context.Context, tenantID, serviceID int64) (*catalogClient.Service, *domain.CalendarPolicy, error) {
	if _, err := uc.catalogClient.GetTenant(ctx, tenantID); err != nil {
		if errors.Is(err, catalogClient.ErrTenantNotFound) {
			uc.logger.Warn("GetAvailableSlots: tenant id=%d not found", tenantID)
			return nil, nil, ErrTenantNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get tenant id=%d: %v", tenantID, err)
		return nil, nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	service, err := uc.catalogClient.GetService(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", serviceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", serviceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	policy, err := uc.policyRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Warn("GetAvailableSlots: no calendar policy for tenant id=%d", tenantID)
			return nil, nil, ErrPolicyNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get calendar policy for tenant id=%d: %v", tenantID, err)
		return nil, nil, fmt.Errorf("%w: failed to get calendar policy: %v", ErrInternal, err)
	}

	return service, policy, nil
}

func (uc *UseCase) loadDayAppointments(ctx context.Context, tenantID int64, date time.Time) ([]*domain.Appointment, error) {
	filter := domain.TenantAppointmentsFilter{
		TenantID:        tenantID,
		StartDate:       &date,
		EndDate:         &date,
		IncludeCanceled: false,
	}

	appointments, err := uc.appointmentRepo.GetByTenantWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments for tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	return appointments, nil
}
