package baseline

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/expense-tracker/internal/ledger"
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) SetBudget(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, value)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func newTestAPI(t *testing.T, svc budgetSetter) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewSetBudgetHandler(svc).Register(api)
	return api
}

func TestHTTP_SetBudget(t *testing.T) {
	mockSvc := new(mockBudgetService)
	mockSvc.On("SetBudget", mock.Anything, mock.MatchedBy(func(v decimal.Decimal) bool {
		return v.Equal(decimal.NewFromInt(15000))
	})).Return(decimal.NewFromInt(15000), nil)

	resp := newTestAPI(t, mockSvc).Put("/v1/budget", SetBudgetBody{Budget: "15000"})

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"budget":"15000"`)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SetBudget_NotANumber(t *testing.T) {
	mockSvc := new(mockBudgetService)

	resp := newTestAPI(t, mockSvc).Put("/v1/budget", SetBudgetBody{Budget: "lots"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "SetBudget")
}

func TestHTTP_SetBudget_Negative(t *testing.T) {
	mockSvc := new(mockBudgetService)
	mockSvc.On("SetBudget", mock.Anything, mock.Anything).
		Return(decimal.Zero, &ledger.ValidationError{Field: "budget", Reason: "must not be negative"})

	resp := newTestAPI(t, mockSvc).Put("/v1/budget", SetBudgetBody{Budget: "-1"})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "must not be negative")
}
