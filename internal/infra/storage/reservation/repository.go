package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

const tableName = "reservations"

// exclusionViolation SQLSTATE нарушения EXCLUDE constraint
const exclusionViolation = "23P01"

var columns = []string{
	"id",
	"tenant_id",
	"resource_id",
	"user_id",
	"start_at",
	"end_at",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с активным бронированием на уровне БД возвращает ErrOverlap.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"id",
			"tenant_id",
			"resource_id",
			"user_id",
			"start_at",
			"end_at",
			"status",
		).
		Values(
			res.ID(),
			res.TenantID(),
			res.ResourceID(),
			res.UserID(),
			res.Range().Start(),
			res.Range().End(),
			string(res.Status()),
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: Create - %v", ErrOverlap, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return domain.RestoreReservation(
		res.ID(), res.TenantID(), res.ResourceID(), res.UserID(),
		res.Range().Start(), res.Range().End(),
		res.Status(), createdAt, updatedAt,
	)
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// Update сохраняет интервал и статус бронирования
func (r *Repository) Update(ctx context.Context, res *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("start_at", res.Range().Start()).
		Set("end_at", res.Range().End()).
		Set("status", string(res.Status())).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": res.ID(), "tenant_id": res.TenantID()}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: Update - %v", ErrOverlap, err)
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "Update")
}

// UpdateStatus обновляет только статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isExclusionViolation(err) {
			return fmt.Errorf("%w: UpdateStatus - %v", ErrOverlap, err)
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return checkAffected(result, "UpdateStatus")
}

// ExistsOverlapping проверяет наличие блокирующего бронирования ресурса,
// пересекающегося с интервалом. excludeID исключает само обновляемое бронирование.
// Внутри транзакции найденная строка блокируется (FOR UPDATE).
func (r *Repository) ExistsOverlapping(
	ctx context.Context,
	tenantID, resourceID uuid.UUID,
	rng domain.TimeRange,
	excludeID *uuid.UUID,
) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{
			"tenant_id":   tenantID,
			"resource_id": resourceID,
			"status":      statusStrings(domain.BlockingStatuses),
		}).
		Where(squirrel.Lt{"start_at": rng.End()}).
		Where(squirrel.Gt{"end_at": rng.Start()}).
		Limit(1)

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	var id uuid.UUID
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsOverlapping - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// ListByFilter получает бронирования тенанта с фильтрацией
// Поддерживает фильтрацию по:
// - ресурсу (ResourceID)
// - пользователю (UserID)
// - пересечению с окном (Window)
// - статусам (Statuses)
func (r *Repository) ListByFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"tenant_id": filter.TenantID})

	if filter.ResourceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"resource_id": *filter.ResourceID})
	}
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.Window != nil {
		selectBuilder = selectBuilder.
			Where(squirrel.Lt{"start_at": filter.Window.End()}).
			Where(squirrel.Gt{"end_at": filter.Window.Start()})
	}
	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	if filter.OrderDesc {
		selectBuilder = selectBuilder.OrderBy("start_at DESC", "id ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_at ASC", "id ASC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByFilter - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByFilter - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanReservation сканирует строку в доменный объект
func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		id, tenantID, resourceID, userID uuid.UUID
		startAt, endAt                   time.Time
		status                           string
		createdAt, updatedAt             time.Time
	)

	if err := row.Scan(&id, &tenantID, &resourceID, &userID, &startAt, &endAt, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return domain.RestoreReservation(
		id, tenantID, resourceID, userID,
		startAt, endAt,
		domain.ReservationStatus(status),
		createdAt, updatedAt,
	)
}

func checkAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == exclusionViolation
}
