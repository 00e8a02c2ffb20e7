package policy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MBrunoS/ezpet-sub000/internal/domain"
	policyRepo "github.com/MBrunoS/ezpet-sub000/internal/infra/storage/policy"
	catalogClient "github.com/MBrunoS/ezpet-sub000/internal/integrations/catalogservice"
	"github.com/MBrunoS/ezpet-sub000/internal/service/policy/models"
	"github.com/MBrunoS/ezpet-sub000/pkg/types"
)

// Service manages tenant calendar policies. A policy is replaced whole on
// every update; validation is fail-fast so a rejected update leaves the
// stored policy untouched.
type Service struct {
	policyRepo    PolicyRepository
	catalogClient CatalogServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewService creates a new policy service
func NewService(
	policyRepo PolicyRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		policyRepo:    policyRepo,
		catalogClient: catalogClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Get fetches the tenant's calendar policy. Public method.
func (s *Service) Get(ctx context.Context, tenantID int64) (*models.PolicyResponse, error) {
	s.logger.Info("Get: fetching calendar policy for tenant=%d", tenantID)

	policy, err := s.policyRepo.GetByTenantID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, policyRepo.ErrPolicyNotFound) {
			s.logger.Warn("Get: calendar policy for tenant=%d not found", tenantID)
			return nil, ErrPolicyNotFound
		}
		s.logger.Error("Get: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Get: successfully fetched calendar policy for tenant=%d", tenantID)
	return models.FromDomainPolicy(policy), nil
}

// Update replaces the tenant's calendar policy. Managers only.
func (s *Service) Update(ctx context.Context, tenantID int64, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("Update: updating calendar policy for tenant=%d by user=%d", tenantID, req.UserID)

	if err := s.validatePolicy(req); err != nil {
		s.logger.Warn("Update: validation failed for tenant=%d: %v", tenantID, err)
		return nil, err
	}

	tenant, err := s.catalogClient.GetTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrTenantNotFound) {
			s.logger.Warn("Update: tenant id=%d not found", tenantID)
			return nil, ErrTenantNotFound
		}
		s.logger.Error("Update: failed to get tenant id=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: failed to get tenant: %v", ErrInternal, err)
	}

	if !s.isManager(tenant, req.UserID) {
		s.logger.Warn("Update: user=%d is not a manager of tenant=%d", req.UserID, tenantID)
		return nil, ErrAccessDenied
	}

	var updated *domain.CalendarPolicy
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var upsertErr error
		updated, upsertErr = s.policyRepo.Upsert(txCtx, req.ToDomainPolicy(tenantID))
		return upsertErr
	})
	if err != nil {
		s.logger.Error("Update: repository error for tenant=%d: %v", tenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated calendar policy for tenant=%d", tenantID)
	return models.FromDomainPolicy(updated), nil
}

// Helpers

// isManager checks the user against the tenant's manager list
func (s *Service) isManager(tenant *catalogClient.Tenant, userID int64) bool {
	for _, managerID := range tenant.ManagerIDs {
		if managerID == userID {
			return true
		}
	}
	return false
}

// validatePolicy rejects the whole update on the first invalid field
func (s *Service) validatePolicy(req *models.UpdatePolicyRequest) error {
	if req.Timezone == "" {
		return fmt.Errorf("%w: timezone is required", ErrInvalidInput)
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	if req.SlotGranularityMinutes < domain.MinSlotGranularityMinutes ||
		req.SlotGranularityMinutes > domain.MaxSlotGranularityMinutes {
		return fmt.Errorf("%w: slotGranularityMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotGranularityMinutes, domain.MaxSlotGranularityMinutes)
	}

	if req.AppointmentCapacity < domain.MinAppointmentCapacity ||
		req.AppointmentCapacity > domain.MaxAppointmentCapacity {
		return fmt.Errorf("%w: appointmentCapacity must be between %d and %d",
			ErrInvalidInput, domain.MinAppointmentCapacity, domain.MaxAppointmentCapacity)
	}

	if req.AdvanceBookingDays < domain.MinAdvanceBookingDays ||
		req.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	if req.MinBookingNoticeMinutes < domain.MinNoticeMinutes ||
		req.MinBookingNoticeMinutes > domain.MaxNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinNoticeMinutes, domain.MaxNoticeMinutes)
	}

	if err := s.validateWorkingHours(req.WorkingHours); err != nil {
		return err
	}

	return s.validateLunchWindow(req.LunchStart, req.LunchEnd)
}

// validateWorkingHours checks each open day has a well-formed window
func (s *Service) validateWorkingHours(days []models.DayHoursInput) error {
	seen := [7]bool{}

	for _, day := range days {
		if day.Weekday < 0 || day.Weekday > 6 {
			return fmt.Errorf("%w: weekday must be between 0 and 6", ErrInvalidInput)
		}
		if seen[day.Weekday] {
			return fmt.Errorf("%w: duplicate weekday %d", ErrInvalidInput, day.Weekday)
		}
		seen[day.Weekday] = true

		if !day.IsOpen {
			continue
		}

		if day.OpenTime == nil || day.CloseTime == nil {
			return fmt.Errorf("%w: open day %d requires openTime and closeTime", ErrInvalidInput, day.Weekday)
		}

		open := types.TimeString(*day.OpenTime)
		close := types.TimeString(*day.CloseTime)

		if err := open.Validate(); err != nil {
			return fmt.Errorf("%w: invalid openTime for weekday %d: %v", ErrInvalidInput, day.Weekday, err)
		}
		if err := close.Validate(); err != nil {
			return fmt.Errorf("%w: invalid closeTime for weekday %d: %v", ErrInvalidInput, day.Weekday, err)
		}

		if !open.IsBefore(close) {
			return fmt.Errorf("%w: openTime must be before closeTime for weekday %d", ErrInvalidInput, day.Weekday)
		}
	}

	return nil
}

// validateLunchWindow enforces both-or-neither and a positive window
func (s *Service) validateLunchWindow(lunchStart, lunchEnd *string) error {
	if lunchStart == nil && lunchEnd == nil {
		return nil
	}

	if lunchStart == nil || lunchEnd == nil {
		return fmt.Errorf("%w: lunchStart and lunchEnd must be set together", ErrInvalidInput)
	}

	start := types.TimeString(*lunchStart)
	end := types.TimeString(*lunchEnd)

	if err := start.Validate(); err != nil {
		return fmt.Errorf("%w: invalid lunchStart: %v", ErrInvalidInput, err)
	}
	if err := end.Validate(); err != nil {
		return fmt.Errorf("%w: invalid lunchEnd: %v", ErrInvalidInput, err)
	}

	if !start.IsBefore(end) {
		return fmt.Errorf("%w: lunchStart must be before lunchEnd", ErrInvalidInput)
	}

	return nil
}
