package transaction

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newDeleteTestAPI(t *testing.T, svc transactionDeleter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewDeleteTransactionHandler(svc).Register(api)
	return api
}

func TestHTTP_DeleteTransaction(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("DeleteTransaction", mock.Anything, "tx-1").Return(true)

	resp := newDeleteTestAPI(t, mockSvc).Delete("/v1/transaction/tx-1")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"deleted":true`)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_DeleteTransaction_UnknownIsNoop(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("DeleteTransaction", mock.Anything, "missing").Return(false)

	resp := newDeleteTestAPI(t, mockSvc).Delete("/v1/transaction/missing")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"deleted":false`)
}
