package get_user_reservations

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
)

// ParseRequest разбирает опциональные границы окна в формате RFC3339
func ParseRequest(tenantID, userID uuid.UUID, start, end string) (*models.GetForUserRequest, error) {
	req := &models.GetForUserRequest{
		TenantID: tenantID,
		UserID:   userID,
	}

	if start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return nil, err
		}
		req.Start = ptr.Ptr(t)
	}

	if end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return nil, err
		}
		req.End = ptr.Ptr(t)
	}

	return req, nil
}
