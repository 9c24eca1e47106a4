package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/klmnv/Salon-BookingService/internal/domain"
	"github.com/klmnv/Salon-BookingService/pkg/dbmetrics"
	"github.com/klmnv/Salon-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс исполнителя запросов (см. pkg/dbmetrics)
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с мастерами локации
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActiveByLocation возвращает активных мастеров локации вместе со списками
// разрешённых услуг. Пустой список услуг означает открытую квалификацию -
// мастер может выполнять любую услугу локации.
// Порядок детерминированный (по имени, затем по ID) - от него зависит
// автоназначение мастера при создании бронирования.
func (r *Repository) ListActiveByLocation(ctx context.Context, locationID string) ([]*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{
			"location_id": locationID,
			"is_active":   true,
		}).
		OrderBy("name ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByLocation - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByLocation - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	members := make([]*domain.StaffMember, 0)
	ids := make([]string, 0)

	for rows.Next() {
		var member domain.StaffMember
		var createdAt, updatedAt sql.NullTime

		if err := rows.Scan(
			&member.ID,
			&member.LocationID,
			&member.Name,
			&member.IsActive,
			&createdAt,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListActiveByLocation - scan staff: %v", ErrScanRow, err)
		}

		member.CreatedAt = createdAt.Time
		member.UpdatedAt = updatedAt.Time
		members = append(members, &member)
		ids = append(ids, member.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByLocation - iterate rows: %v", ErrScanRow, err)
	}

	if len(members) == 0 {
		return members, nil
	}

	services, err := r.loadServiceIDs(ctx, executor, ids)
	if err != nil {
		return nil, err
	}

	for _, member := range members {
		member.ServiceIDs = services[member.ID]
	}

	return members, nil
}

// GetByID получает мастера по ID вместе со списком разрешённых услуг
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.StaffMember, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"location_id",
		"name",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var member domain.StaffMember
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&member.ID,
		&member.LocationID,
		&member.Name,
		&member.IsActive,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	member.CreatedAt = createdAt.Time
	member.UpdatedAt = updatedAt.Time

	services, err := r.loadServiceIDs(ctx, executor, []string{member.ID})
	if err != nil {
		return nil, err
	}
	member.ServiceIDs = services[member.ID]

	return &member, nil
}

// loadServiceIDs загружает разрешённые услуги для набора мастеров
func (r *Repository) loadServiceIDs(ctx context.Context, executor DBExecutor, staffIDs []string) (map[string][]string, error) {
	query, args, err := psqlbuilder.Select("staff_id", "service_id").
		From("staff_services").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		OrderBy("staff_id, service_id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadServiceIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadServiceIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var staffID, serviceID string
		if err := rows.Scan(&staffID, &serviceID); err != nil {
			return nil, fmt.Errorf("%w: loadServiceIDs - scan row: %v", ErrScanRow, err)
		}
		result[staffID] = append(result[staffID], serviceID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadServiceIDs - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}
