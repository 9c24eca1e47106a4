package create_booking

import (
	"time"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	createBooking "github.com/klmnv/Salon-BookingService/internal/usecase/create_booking"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

// ItemRequest одна услуга в теле запроса
type ItemRequest struct {
	ServiceID string  `json:"serviceId"`
	StaffID   *string `json:"staffId,omitempty"`
}

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	LocationID string        `json:"locationId"`
	Date       string        `json:"date"`      // "2026-09-08"
	StartTime  string        `json:"startTime"` // "10:00 AM" или "10:00"
	Items      []ItemRequest `json:"items"`
	Notes      *string       `json:"notes,omitempty"`
}

// AssignmentResponse назначение мастера на услугу в ответе
type AssignmentResponse struct {
	StaffID   string `json:"staffId"`
	ServiceID string `json:"serviceId"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	ID              string               `json:"id"`
	CustomerID      string               `json:"customerId"`
	LocationID      string               `json:"locationId"`
	BookingDate     string               `json:"bookingDate"`
	StartTime       string               `json:"startTime"`
	DurationMinutes int                  `json:"durationMinutes"`
	Status          string               `json:"status"`
	Assignments     []AssignmentResponse `json:"assignments"`
	Notes           *string              `json:"notes,omitempty"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в запрос use case.
// Время начала принимается и в 12-часовом ("10:00 AM"), и в 24-часовом
// ("10:00") формате.
func (r *CreateBookingRequest) ToUseCaseRequest(customerID string) (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.ParseClock(r.StartTime)
	if err != nil {
		startTime, err = types.ParseMilitary(r.StartTime)
		if err != nil {
			return nil, err
		}
	}

	items := make([]createBooking.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, createBooking.Item{
			ServiceID: item.ServiceID,
			StaffID:   item.StaffID,
		})
	}

	return &createBooking.Request{
		CustomerID: customerID,
		LocationID: r.LocationID,
		Date:       date,
		StartTime:  startTime,
		Items:      items,
		Notes:      r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	assignments := make([]AssignmentResponse, 0, len(resp.Assignments))
	for _, a := range resp.Assignments {
		assignments = append(assignments, AssignmentResponse{StaffID: a.StaffID, ServiceID: a.ServiceID})
	}

	return &CreateBookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		LocationID:      resp.LocationID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Assignments:     assignments,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt,
		UpdatedAt:       resp.UpdatedAt,
	}
}
