package hours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/pkg/dbmetrics"
	"github.com/klmnv/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий конфигурации рабочих часов локаций.
// Часы хранятся построчно: (location_id, weekday) -> is_open, open, close.
// Для дней без конфигурации применяются дефолты (domain.DefaultHoursFor).
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория рабочих часов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByLocationAndWeekday получает конфигурацию часов локации на день недели
func (r *Repository) GetByLocationAndWeekday(ctx context.Context, locationID string, weekday time.Weekday) (*domain.LocationDayHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"weekday",
		"is_open",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("location_hours").
		Where(squirrel.Eq{
			"location_id": locationID,
			"weekday":     int(weekday),
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByLocationAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	row, err := scanDayHours(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByLocationAndWeekday - scan hours: %v", ErrScanRow, err)
	}

	return row, nil
}

// ListByLocation возвращает все строки конфигурации часов локации,
// упорядоченные по дню недели
func (r *Repository) ListByLocation(ctx context.Context, locationID string) ([]*domain.LocationDayHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"weekday",
		"is_open",
		"open_time",
		"close_time",
		"created_at",
		"updated_at",
	).
		From("location_hours").
		Where(squirrel.Eq{"location_id": locationID}).
		OrderBy("weekday ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.LocationDayHours, 0)
	for rows.Next() {
		row, err := scanDayHours(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByLocation - scan hours: %v", ErrScanRow, err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByLocation - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}

// Upsert создает или обновляет конфигурацию часов локации на день недели
func (r *Repository) Upsert(ctx context.Context, row *domain.LocationDayHours) (*domain.LocationDayHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("location_hours").
		Columns("location_id", "weekday", "is_open", "open_time", "close_time").
		Values(row.LocationID, int(row.Weekday), row.IsOpen, row.Open, row.Close).
		Suffix(`ON CONFLICT (location_id, weekday) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&row.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	row.CreatedAt = createdAt.Time
	row.UpdatedAt = updatedAt.Time

	return row, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDayHours(row rowScanner) (*domain.LocationDayHours, error) {
	var hours domain.LocationDayHours
	var weekday int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&hours.ID,
		&hours.LocationID,
		&weekday,
		&hours.IsOpen,
		&hours.Open,
		&hours.Close,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	hours.Weekday = time.Weekday(weekday)
	hours.CreatedAt = createdAt.Time
	hours.UpdatedAt = updatedAt.Time

	return &hours, nil
}
