package catalogservice

// Tenant is the business profile from CatalogService
type Tenant struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"managerIds"`
}

// Service is a bookable pet-care service from CatalogService.
// DurationMinutes is the source of a candidate interval's length; admitted
// appointments snapshot it and never look it up again.
type Service struct {
	ID              int64    `json:"id"`
	TenantID        int64    `json:"tenantId"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"durationMinutes"`
	Price           *float64 `json:"price,omitempty"`
	Active          bool     `json:"active"`
}

// Logger is the logging interface needed by the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
