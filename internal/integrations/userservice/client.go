package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/circuit"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]User]
	log        Logger
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, breaker circuit.Settings, log Logger) *Client {
	breaker.Name = "userservice"

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: circuit.New[[]User](breaker, log),
		log:     log,
	}
}

// ListUsers получает пользователей тенанта
func (c *Client) ListUsers(ctx context.Context, tenantID uuid.UUID) ([]domain.UserRef, error) {
	users, err := c.breaker.Execute(func() ([]User, error) {
		return c.fetchUsers(ctx, tenantID)
	})
	if err != nil {
		return nil, err
	}

	refs := make([]domain.UserRef, 0, len(users))
	for _, u := range users {
		refs = append(refs, u.ToDomain())
	}
	return refs, nil
}

// ListUsersWithGracefulDegradation получает пользователей тенанта с graceful degradation
// При недоступности UserService возвращает пустой список и ErrServiceDegraded,
// аналитика в этом случае подставляет имя-заглушку
func (c *Client) ListUsersWithGracefulDegradation(ctx context.Context, tenantID uuid.UUID) ([]domain.UserRef, error) {
	users, err := c.ListUsers(ctx, tenantID)
	if err != nil {
		c.log.Error("UserService unavailable, applying graceful degradation for tenant=%s: %v", tenantID, err)
		return []domain.UserRef{}, fmt.Errorf("%w: tenant=%s, error=%v", ErrServiceDegraded, tenantID, err)
	}

	c.log.Info("Successfully fetched %d users for tenant=%s", len(users), tenantID)
	return users, nil
}

func (c *Client) fetchUsers(ctx context.Context, tenantID uuid.UUID) ([]User, error) {
	url := fmt.Sprintf("%s/internal/tenants/%s/users", c.baseURL, tenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		// У тенанта нет пользователей
		return []User{}, nil
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid tenant ID format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var users []User
	if err := json.NewDecoder(resp.Body).Decode(&users); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return users, nil
}
