package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/MBrunoS/ezpet-sub000/internal/usecase/get_available_slots"
)

// AvailabilityUseCase computes the annotated slot sequence for one tenant day
type AvailabilityUseCase interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
