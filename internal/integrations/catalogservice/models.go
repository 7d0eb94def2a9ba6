package catalogservice

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Resource модель ресурса из каталога
type Resource struct {
	ID       uuid.UUID `json:"id"`
	TenantID uuid.UUID `json:"tenant_id"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"` // room, equipment, seat
}

// ToDomain конвертирует ресурс каталога в доменную проекцию
func (r Resource) ToDomain() domain.ResourceRef {
	return domain.ResourceRef{
		ID:       r.ID,
		TenantID: r.TenantID,
		Name:     r.Name,
	}
}
