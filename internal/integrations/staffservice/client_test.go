package staffservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 2*time.Second, noopLogger{})
}

func TestGetWorker_OK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/internal/workers/42", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": 42, "salon_id": 7, "name": "Анна", "manager_ids": [100, 101], "is_active": true}`))
	})

	worker, err := client.GetWorker(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), worker.ID)
	assert.Equal(t, int64(7), worker.SalonID)
	assert.Equal(t, []int64{100, 101}, worker.ManagerIDs)
	assert.True(t, worker.IsActive)
}

func TestGetWorker_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetWorker(context.Background(), 42)
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestGetWorker_BadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	_, err := client.GetWorker(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestGetWorker_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.GetWorker(context.Background(), 42)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestCanManage_Self(t *testing.T) {
	// Сам работник управляет своим расписанием без обращения к сервису
	called := false
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	allowed, err := client.CanManage(context.Background(), 42, 42)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.False(t, called)
}

func TestCanManage_Manager(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 42, "salon_id": 7, "manager_ids": [100], "is_active": true}`))
	})

	allowed, err := client.CanManage(context.Background(), 100, 42)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = client.CanManage(context.Background(), 999, 42)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestCanManage_WorkerNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	allowed, err := client.CanManage(context.Background(), 100, 42)
	assert.ErrorIs(t, err, ErrWorkerNotFound)
	assert.False(t, allowed)
}

func TestCanManage_ServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()
	client := NewClient(server.URL, time.Second, noopLogger{})

	// Свой доступ сохраняется при недоступном сервисе
	allowed, err := client.CanManage(context.Background(), 42, 42)
	require.NoError(t, err)
	assert.True(t, allowed)

	// Менеджерская проверка деградирует в отказ, доступ не расширяется
	allowed, err = client.CanManage(context.Background(), 100, 42)
	assert.ErrorIs(t, err, ErrServiceDegraded)
	assert.False(t, allowed)
}
