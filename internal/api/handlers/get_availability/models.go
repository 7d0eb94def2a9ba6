package get_availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/reservations/models"
)

// ParseRequest разбирает период в формате YYYY-MM-DD
// Если endDate не передан, период состоит из одного дня startDate
func ParseRequest(tenantID, resourceID uuid.UUID, startDate, endDate string) (*models.GetAvailabilityRequest, error) {
	start, err := time.Parse(domain.DateFormat, startDate)
	if err != nil {
		return nil, err
	}

	end := start
	if endDate != "" {
		end, err = time.Parse(domain.DateFormat, endDate)
		if err != nil {
			return nil, err
		}
	}

	return &models.GetAvailabilityRequest{
		TenantID:   tenantID,
		ResourceID: resourceID,
		StartDate:  start,
		EndDate:    end,
	}, nil
}
