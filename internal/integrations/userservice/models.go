package userservice

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// User модель пользователя из UserService
type User struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
}

// DisplayName возвращает имя для отображения
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Email
	}
}

// ToDomain конвертирует пользователя в доменную проекцию
func (u User) ToDomain() domain.UserRef {
	return domain.UserRef{ID: u.ID, Name: u.DisplayName()}
}
