package catalogservice

import (
	"context"
	"encoding/json"
	"errors"
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

// Client клиент для работы с каталогом ресурсов
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, breaker circuit.Settings, log Logger) *Client {
	breaker.Name = "catalogservice"
	breaker.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, ErrResourceNotFound)
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		breaker: circuit.New[[]byte](breaker, log),
		log:     log,
	}
}

// GetResource получает ресурс тенанта по ID
func (c *Client) GetResource(ctx context.Context, tenantID, resourceID uuid.UUID) (*domain.ResourceRef, error) {
	url := fmt.Sprintf("%s/internal/tenants/%s/resources/%s", c.baseURL, tenantID, resourceID)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resource Resource
	if err := json.Unmarshal(body, &resource); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if resource.TenantID != uuid.Nil && resource.TenantID != tenantID {
		return nil, ErrResourceNotFound
	}

	ref := resource.ToDomain()
	ref.TenantID = tenantID
	return &ref, nil
}

// ListResources получает все ресурсы тенанта
func (c *Client) ListResources(ctx context.Context, tenantID uuid.UUID) ([]domain.ResourceRef, error) {
	url := fmt.Sprintf("%s/internal/tenants/%s/resources", c.baseURL, tenantID)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resources []Resource
	if err := json.Unmarshal(body, &resources); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	refs := make([]domain.ResourceRef, 0, len(resources))
	for _, r := range resources {
		refs = append(refs, r.ToDomain())
	}
	return refs, nil
}

// get выполняет GET запрос через circuit breaker и возвращает тело ответа
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	body, err := c.breaker.Execute(func() ([]byte, error) {
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
			return nil, ErrResourceNotFound
		default:
			raw, _ := io.ReadAll(resp.Body)
			return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
		}

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read response: %v", ErrInvalidResponse, err)
		}
		return raw, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		c.log.Error("CatalogService unavailable: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return body, err
}
