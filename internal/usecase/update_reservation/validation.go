package update_reservation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// changes разобранные изменения запроса
type changes struct {
	rng    *domain.TimeRange
	status *domain.ReservationStatus
}

// parseRequest проверяет запрос и разбирает изменения
func parseRequest(req *Request) (*changes, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is nil", ErrInvalidRequest)
	}
	if req.ReservationID == uuid.Nil || req.TenantID == uuid.Nil {
		return nil, fmt.Errorf("%w: reservation and tenant ids are required", ErrInvalidRequest)
	}

	// start и end: оба или ни одного
	if (req.Start == nil) != (req.End == nil) {
		return nil, fmt.Errorf("%w: start and end must be provided together", ErrInvalidRequest)
	}

	c := &changes{}

	if req.Start != nil {
		rng, err := domain.NewTimeRange(*req.Start, *req.End)
		if err != nil {
			return nil, ErrInvalidTimeRange
		}
		c.rng = &rng
	}

	if req.Status != nil {
		status, err := domain.ParseReservationStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, *req.Status)
		}
		c.status = &status
	}

	return c, nil
}
