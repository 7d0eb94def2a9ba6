package create_reservation

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest проверяет обязательные поля запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.TenantID == uuid.Nil {
		return fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	if req.ResourceID == uuid.Nil {
		return fmt.Errorf("%w: resource id is required", ErrInvalidInput)
	}
	if req.UserID == uuid.Nil {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}
	return nil
}
