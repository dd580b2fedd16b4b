package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/expense-tracker/internal/logging"
	"github.com/carson-networks/expense-tracker/internal/operator"
	"github.com/carson-networks/expense-tracker/internal/service"
	"github.com/carson-networks/expense-tracker/internal/storage"
)

func newTestServer(t *testing.T) (*http.ServeMux, *operator.OperatorDelegator) {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	d := operator.NewOperatorDelegator(s, 64)
	d.Start()
	t.Cleanup(func() {
		d.Stop()
		_ = s.Close()
	})

	now := func() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }
	rest := &Rest{
		Logger:  logging.SetupLogging("error"),
		Service: service.NewService(context.Background(), s.Reader.Slots, d, service.WithClock(now)),
		DB:      s.DB,
	}
	mux := http.NewServeMux()
	rest.NewAPI(mux)
	return mux, d
}

func do(t *testing.T, mux http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAPI_BudgetScenario(t *testing.T) {
	mux, _ := newTestServer(t)

	resp := do(t, mux, http.MethodPost, "/v1/transaction", map[string]any{
		"amount": "450", "category": "Food", "date": "2024-03-10", "type": "expense",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = do(t, mux, http.MethodPost, "/v1/transaction", map[string]any{
		"amount": "2000", "date": "2024-03-11", "type": "income",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	var contribution struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &contribution))

	resp = do(t, mux, http.MethodGet, "/v1/summary/current", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"baseline":"12000"`)
	assert.Contains(t, resp.Body.String(), `"available":"13550"`)

	resp = do(t, mux, http.MethodDelete, "/v1/transaction/"+contribution.ID, nil)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, mux, http.MethodGet, "/v1/summary/2024-03", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"baseline":"10000"`)
	assert.Contains(t, resp.Body.String(), `"available":"9550"`)
}

func TestAPI_FutureDateRejected(t *testing.T) {
	mux, _ := newTestServer(t)

	resp := do(t, mux, http.MethodPost, "/v1/transaction", map[string]any{
		"amount": "10", "date": "2024-03-16", "type": "expense",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestAPI_ExportHasNoSchemaLink(t *testing.T) {
	mux, _ := newTestServer(t)

	resp := do(t, mux, http.MethodGet, "/v1/snapshot", nil)

	require.Equal(t, http.StatusOK, resp.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &raw))
	assert.NotContains(t, raw, "$schema")
	assert.Contains(t, raw, "transactions")
	assert.Contains(t, raw, "exportDate")
}

func TestAPI_EmptyImportRejected(t *testing.T) {
	mux, _ := newTestServer(t)

	resp := do(t, mux, http.MethodPost, "/v1/snapshot", map[string]any{})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestAPI_StatusAndNotices(t *testing.T) {
	mux, d := newTestServer(t)

	resp := do(t, mux, http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusOK, resp.Code)

	resp = do(t, mux, http.MethodPut, "/v1/budget", map[string]any{"budget": "8000"})
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, d.Flush(context.Background()))

	resp = do(t, mux, http.MethodGet, "/v1/notices", nil)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"notices":[]`)
}
