package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/pkg/ptr"
	"github.com/klmnv/Salon-BookingService/pkg/types"
)

const (
	testBookingID  = "e1111111-1111-1111-1111-111111111111"
	testCustomerID = "c1111111-1111-1111-1111-111111111111"
	testLocationID = "5f0c2c1a-9a10-4e9e-b8a3-1a2b3c4d5e6f"
	testStaffID    = "b1111111-1111-1111-1111-111111111111"
	testServiceID  = "a1111111-1111-1111-1111-111111111111"
)

var testDate = time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "customer_id", "location_id", "booking_date", "start_time",
		"duration_minutes", "status", "notes", "cancellation_reason",
		"cancelled_at", "created_at", "updated_at",
	})
}

func addBookingRow(rows *sqlmock.Rows, id string, startMinutes int64, status string) *sqlmock.Rows {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, testCustomerID, testLocationID, testDate, startMinutes,
		60, status, nil, nil, nil, now, now,
	)
}

func TestCreate(t *testing.T) {
	repo, mock := newMock(t)

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(testBookingID, testCustomerID, testLocationID, testDate,
			types.MustTimeOfDay(10, 0), 60, domain.StatusConfirmed, nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO booking_staff")).
		WithArgs(testBookingID, testStaffID, testServiceID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking := &domain.Booking{
		ID:              testBookingID,
		CustomerID:      testCustomerID,
		LocationID:      testLocationID,
		BookingDate:     testDate,
		StartTime:       types.MustTimeOfDay(10, 0),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		Assignments:     []domain.StaffAssignment{{StaffID: testStaffID, ServiceID: testServiceID}},
	}

	created, err := repo.Create(context.Background(), booking)
	require.NoError(t, err)

	assert.Equal(t, now, created.CreatedAt)
	assert.Equal(t, now, created.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, customer_id, location_id, booking_date, start_time, duration_minutes, status, notes, cancellation_reason, cancelled_at, created_at, updated_at FROM bookings WHERE id = $1")).
			WithArgs(testBookingID).
			WillReturnRows(addBookingRow(bookingRows(), testBookingID, 600, "confirmed"))

		mock.ExpectQuery(regexp.QuoteMeta("SELECT booking_id, staff_id, service_id FROM booking_staff")).
			WithArgs(testBookingID).
			WillReturnRows(sqlmock.NewRows([]string{"booking_id", "staff_id", "service_id"}).
				AddRow(testBookingID, testStaffID, testServiceID))

		booking, err := repo.GetByID(context.Background(), testBookingID)
		require.NoError(t, err)

		assert.Equal(t, testBookingID, booking.ID)
		assert.Equal(t, "10:00 AM", booking.StartTime.String())
		assert.Equal(t, domain.StatusConfirmed, booking.Status)
		require.Len(t, booking.Assignments, 1)
		assert.Equal(t, testStaffID, booking.Assignments[0].StaffID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectQuery(regexp.QuoteMeta("SELECT")).
			WithArgs(testBookingID).
			WillReturnRows(bookingRows())

		_, err := repo.GetByID(context.Background(), testBookingID)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetByCustomerID(t *testing.T) {
	repo, mock := newMock(t)

	status := domain.StatusConfirmed

	rows := addBookingRow(bookingRows(), testBookingID, 600, "confirmed")
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE customer_id = $1 AND status = $2 ORDER BY booking_date DESC, start_time DESC")).
		WithArgs(testCustomerID, status).
		WillReturnRows(rows)

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_staff")).
		WithArgs(testBookingID).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "staff_id", "service_id"}))

	bookings, err := repo.GetByCustomerID(context.Background(), testCustomerID, &status)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByLocationWithFilter(t *testing.T) {
	repo, mock := newMock(t)

	// Фильтр по дате без неактивных: статус ограничен активным набором
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE location_id = $1 AND booking_date = $2 AND status IN ($3,$4,$5,$6)")).
		WithArgs(testLocationID, testDate,
			domain.StatusPending, domain.StatusConfirmed, domain.StatusInProgress, domain.StatusCompleted).
		WillReturnRows(addBookingRow(bookingRows(), testBookingID, 630, "pending"))

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_staff")).
		WithArgs(testBookingID).
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "staff_id", "service_id"}).
			AddRow(testBookingID, testStaffID, testServiceID))

	bookings, err := repo.GetByLocationWithFilter(context.Background(), domain.LocationBookingsFilter{
		LocationID: testLocationID,
		Date:       ptr.Ptr(testDate),
	})
	require.NoError(t, err)

	require.Len(t, bookings, 1)
	assert.Equal(t, "10:30 AM", bookings[0].StartTime.String())
	require.Len(t, bookings[0].Assignments, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	t.Run("updated", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2")).
			WithArgs(domain.StatusCompleted, testBookingID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), testBookingID, domain.StatusCompleted)
		assert.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
			WithArgs(domain.StatusCompleted, testBookingID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(context.Background(), testBookingID, domain.StatusCompleted)
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestCancel(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
			WithArgs(domain.StatusCancelledByCustomer, "передумал", testBookingID,
				domain.StatusPending, domain.StatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Cancel(context.Background(), testBookingID, domain.StatusCancelledByCustomer, "передумал")
		assert.NoError(t, err)
	})

	t.Run("already cancelled or completed", func(t *testing.T) {
		repo, mock := newMock(t)

		mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
			WithArgs(domain.StatusCancelledBySalon, "", testBookingID,
				domain.StatusPending, domain.StatusConfirmed).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Cancel(context.Background(), testBookingID, domain.StatusCancelledBySalon, "")
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}
