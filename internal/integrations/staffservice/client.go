package staffservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы со StaffService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента StaffService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetWorker получает работника по ID
func (c *Client) GetWorker(ctx context.Context, workerID int64) (*Worker, error) {
	url := fmt.Sprintf("%s/internal/workers/%d", c.baseURL, workerID)

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
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid worker ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrWorkerNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var worker Worker
	if err := json.NewDecoder(resp.Body).Decode(&worker); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &worker, nil
}

// CanManage проверяет, что caller управляет расписанием работника.
// Сам работник всегда управляет своим расписанием; менеджеры салона —
// расписаниями работников своего салона.
//
// При недоступности StaffService применяется graceful degradation:
// для caller == workerID доступ разрешается без обращения к сервису,
// для менеджерских проверок возвращается ErrServiceDegraded (доступ
// в этом случае не расширяется).
func (c *Client) CanManage(ctx context.Context, callerID, workerID int64) (bool, error) {
	if callerID == workerID {
		return true, nil
	}

	worker, err := c.GetWorker(ctx, workerID)
	if err != nil {
		if err == ErrWorkerNotFound {
			return false, err
		}
		c.log.Error("StaffService unavailable, cannot verify manager access for caller=%d worker=%d: %v",
			callerID, workerID, err)
		return false, fmt.Errorf("%w: caller=%d, worker=%d, error=%v", ErrServiceDegraded, callerID, workerID, err)
	}

	for _, managerID := range worker.ManagerIDs {
		if managerID == callerID {
			return true, nil
		}
	}

	return false, nil
}
