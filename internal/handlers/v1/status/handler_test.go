package status

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockPinger struct {
	mock.Mock
}

func (m *mockPinger) PingContext(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func newTestAPI(t *testing.T, db pinger) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewHandler(db).Register(api)
	return api
}

func TestHandler_GoodMethod(t *testing.T) {
	db := new(mockPinger)
	db.On("PingContext", mock.Anything).Return(nil)

	resp := newTestAPI(t, db).Get("/status")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"status":"ok"`)
}

func TestHandler_BadMethod(t *testing.T) {
	db := new(mockPinger)

	resp := newTestAPI(t, db).Post("/status", map[string]any{})

	assert.NotEqual(t, http.StatusOK, resp.Code)
	db.AssertNotCalled(t, "PingContext")
}

func TestHandler_DatabaseDown(t *testing.T) {
	db := new(mockPinger)
	db.On("PingContext", mock.Anything).Return(errors.New("database is closed"))

	resp := newTestAPI(t, db).Get("/status")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
