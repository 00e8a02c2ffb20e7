package create_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createAppointment "github.com/MBrunoS/ezpet-sub000/internal/usecase/create_appointment"
)

type noopLogger struct{}

func (l *noopLogger) Info(format string, v ...interface{})  {}
func (l *noopLogger) Warn(format string, v ...interface{})  {}
func (l *noopLogger) Error(format string, v ...interface{}) {}

type fakeUseCase struct {
	gotReq *createAppointment.Request
	resp   *createAppointment.Response
	err    error
}

func (uc *fakeUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	uc.gotReq = req
	if uc.err != nil {
		return nil, uc.err
	}
	return uc.resp, nil
}

const validBody = `{
	"clientId": 2,
	"tenantId": 10,
	"petId": 3,
	"serviceId": 5,
	"date": "2026-09-07",
	"startTime": "09:00"
}`

func doRequest(t *testing.T, uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, &noopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	now := time.Date(2026, 9, 6, 18, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &createAppointment.Response{
		ID:              7,
		ClientID:        2,
		TenantID:        10,
		PetID:           3,
		ServiceID:       5,
		Date:            time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime:       "09:00",
		DurationMinutes: 60,
		Status:          "scheduled",
		ServiceName:     "Full Grooming",
		ServicePrice:    120.0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}}

	rec := doRequest(t, uc, validBody)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "2026-09-07", resp.Date)
	assert.Equal(t, "09:00", resp.StartTime)
	assert.Equal(t, "scheduled", resp.Status)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(2), uc.gotReq.ClientID)
	assert.Equal(t, "09:00", uc.gotReq.StartTime.String())
}

func TestHandle_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"clientId":`},
		{name: "unknown field", body: `{"clientId": 2, "color": "brown"}`},
		{name: "bad date format", body: `{"clientId": 2, "tenantId": 10, "petId": 3, "serviceId": 5, "date": "07.09.2026", "startTime": "09:00"}`},
		{name: "bad start time", body: `{"clientId": 2, "tenantId": 10, "petId": 3, "serviceId": 5, "date": "2026-09-07", "startTime": "9am"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			rec := doRequest(t, uc, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.gotReq, "use case must not run for an unparseable request")
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "slot taken", err: createAppointment.ErrSlotNotAvailable, wantStatus: http.StatusConflict},
		{name: "tenant missing", err: createAppointment.ErrTenantNotFound, wantStatus: http.StatusNotFound},
		{name: "service missing", err: createAppointment.ErrServiceNotFound, wantStatus: http.StatusNotFound},
		{name: "pet missing", err: createAppointment.ErrPetNotFound, wantStatus: http.StatusNotFound},
		{name: "policy missing", err: createAppointment.ErrPolicyNotFound, wantStatus: http.StatusNotFound},
		{name: "tenant closed", err: createAppointment.ErrTenantClosed, wantStatus: http.StatusBadRequest},
		{name: "invalid date", err: createAppointment.ErrInvalidDate, wantStatus: http.StatusBadRequest},
		{name: "too far ahead", err: createAppointment.ErrDateTooFarInFuture, wantStatus: http.StatusBadRequest},
		{name: "bad slot", err: createAppointment.ErrInvalidTimeSlot, wantStatus: http.StatusBadRequest},
		{name: "too late", err: createAppointment.ErrTooLateToBook, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createAppointment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &fakeUseCase{err: tt.err}, validBody)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}
