package locationdirectory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент каталога локаций и услуг.
// Внедряется зависимостью во все потребители - глобального экземпляра нет.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента каталога
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetLocation получает локацию по ID
func (c *Client) GetLocation(ctx context.Context, locationID string) (*Location, error) {
	url := fmt.Sprintf("%s/internal/locations/%s", c.baseURL, locationID)

	var location Location
	if err := c.getJSON(ctx, url, &location, ErrLocationNotFound); err != nil {
		return nil, err
	}

	return &location, nil
}

// GetService получает услугу локации по ID
func (c *Client) GetService(ctx context.Context, locationID, serviceID string) (*Service, error) {
	url := fmt.Sprintf("%s/internal/locations/%s/services/%s", c.baseURL, locationID, serviceID)

	var service Service
	if err := c.getJSON(ctx, url, &service, ErrServiceNotFound); err != nil {
		return nil, err
	}

	return &service, nil
}

// ListServices получает все услуги локации
func (c *Client) ListServices(ctx context.Context, locationID string) ([]*Service, error) {
	url := fmt.Sprintf("%s/internal/locations/%s/services", c.baseURL, locationID)

	var services []*Service
	if err := c.getJSON(ctx, url, &services, ErrLocationNotFound); err != nil {
		return nil, err
	}

	return services, nil
}

// getJSON выполняет GET запрос и декодирует JSON ответ.
// notFoundErr возвращается при статусе 404.
func (c *Client) getJSON(ctx context.Context, url string, dest interface{}, notFoundErr error) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return notFoundErr
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
