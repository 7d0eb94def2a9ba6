package migrations

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
)

// ErrApply возвращается при ошибке применения схемы
var ErrApply = errors.New("migrations: failed to apply schema")

//go:embed schema.sql
var schema string

// Schema возвращает DDL схемы сервиса
func Schema() string {
	return schema
}

// Apply применяет схему. Все выражения идемпотентны (IF NOT EXISTS).
func Apply(ctx context.Context, db dbmetrics.DBExecutor) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: %v", ErrApply, err)
	}
	return nil
}
