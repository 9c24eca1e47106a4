package get_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	getAvailability "github.com/klmnv/Salon-BookingService/internal/usecase/get_availability"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

const testLocationID = "5f0c2c1a-9a10-4e9e-b8a3-1a2b3c4d5e6f"

type stubUseCase struct {
	gotReq *getAvailability.Request
	resp   *getAvailability.Response
	err    error
}

func (s *stubUseCase) Execute(_ context.Context, req *getAvailability.Request) (*getAvailability.Response, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func doRequest(t *testing.T, useCase *stubUseCase, url string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(useCase, nopLogger{})

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/locations/{locationId}/availability", handler.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, url, nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestHandle_Success(t *testing.T) {
	useCase := &stubUseCase{resp: &getAvailability.Response{
		Date:       time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC),
		LocationID: testLocationID,
		AvailableSlots: []types.TimeOfDay{
			types.MustTimeOfDay(9, 0),
			types.MustTimeOfDay(10, 0),
			types.MustTimeOfDay(13, 0),
		},
		BestFitSlots: []types.TimeOfDay{
			types.MustTimeOfDay(10, 0),
			types.MustTimeOfDay(13, 0),
		},
		Hours: domain.DefaultHoursFor(time.Tuesday),
	}}

	recorder := doRequest(t, useCase,
		"/api/v1/locations/"+testLocationID+"/availability?date=2026-09-08&durationMinutes=30&serviceIds=a,b&staffIds=c")

	require.Equal(t, http.StatusOK, recorder.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))

	assert.Equal(t, "2026-09-08", resp.Date)
	assert.Equal(t, testLocationID, resp.LocationID)
	assert.Equal(t, []string{"9:00 AM", "10:00 AM", "1:00 PM"}, resp.AvailableSlots)
	assert.Equal(t, []string{"10:00 AM", "1:00 PM"}, resp.BestFitSlots)
	assert.Equal(t, "09:00", resp.LocationHours.Open)
	assert.Equal(t, "19:00", resp.LocationHours.Close)

	// Query параметры дошли до use case
	require.NotNil(t, useCase.gotReq)
	assert.Equal(t, 30, useCase.gotReq.DurationMinutes)
	assert.Equal(t, []string{"a", "b"}, useCase.gotReq.ServiceIDs)
	assert.Equal(t, []string{"c"}, useCase.gotReq.StaffIDs)
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"invalid location id", "/api/v1/locations/not-a-uuid/availability?date=2026-09-08&durationMinutes=30"},
		{"missing date", "/api/v1/locations/" + testLocationID + "/availability?durationMinutes=30"},
		{"malformed date", "/api/v1/locations/" + testLocationID + "/availability?date=08.09.2026&durationMinutes=30"},
		{"missing duration", "/api/v1/locations/" + testLocationID + "/availability?date=2026-09-08"},
		{"negative duration", "/api/v1/locations/" + testLocationID + "/availability?date=2026-09-08&durationMinutes=-30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &stubUseCase{}
			recorder := doRequest(t, useCase, tt.url)

			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			// До use case запрос не дошел
			assert.Nil(t, useCase.gotReq)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"location not found", getAvailability.ErrLocationNotFound, http.StatusNotFound},
		{"service not found", getAvailability.ErrServiceNotFound, http.StatusNotFound},
		{"date in past", getAvailability.ErrInvalidDate, http.StatusBadRequest},
		{"invalid input", getAvailability.ErrInvalidInput, http.StatusBadRequest},
		{"internal error", getAvailability.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			useCase := &stubUseCase{err: tt.err}
			recorder := doRequest(t, useCase,
				"/api/v1/locations/"+testLocationID+"/availability?date=2026-09-08&durationMinutes=30")

			assert.Equal(t, tt.wantStatus, recorder.Code)
		})
	}
}
