package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

// Repository read-only доступ к платежам тенанта
// Таблица payments принадлежит платёжному сервису
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByTenant получает все платежи тенанта
// Если reservationIDs не nil, выборка ограничивается этими бронированиями
func (r *Repository) ListByTenant(ctx context.Context, tenantID uuid.UUID, reservationIDs []uuid.UUID) ([]domain.PaymentRecord, error) {
	if reservationIDs != nil && len(reservationIDs) == 0 {
		return []domain.PaymentRecord{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"reservation_id",
		"tenant_id",
		"amount",
		"status",
		"processed_at",
		"created_at",
		"updated_at",
	).
		From("payments").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at ASC")

	if reservationIDs != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_id": reservationIDs})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	payments := make([]domain.PaymentRecord, 0)
	for rows.Next() {
		var (
			p           domain.PaymentRecord
			amount      decimal.Decimal
			status      string
			processedAt sql.NullTime
			updatedAt   sql.NullTime
		)

		if err := rows.Scan(&p.ID, &p.ReservationID, &p.TenantID, &amount, &status, &processedAt, &p.CreatedAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByTenant - scan row: %v", ErrScanRow, err)
		}

		p.Amount = amount
		p.Status = domain.PaymentStatus(status)
		if processedAt.Valid {
			t := processedAt.Time
			p.ProcessedAt = &t
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			p.UpdatedAt = &t
		}

		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByTenant - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}
