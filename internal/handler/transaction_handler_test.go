package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunowerneck/payflow/internal/api"
	"github.com/brunowerneck/payflow/internal/handler"
	"github.com/brunowerneck/payflow/internal/models"
	service "github.com/brunowerneck/payflow/internal/services"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

type stubTransactionService struct {
	createResult *models.Transaction
	createErr    error
	createInput  service.CreateTransactionInput

	getResult *models.Transaction
	getErr    error

	findResult *models.PaginatedTransactions
	findErr    error
	findPage   int
	findLimit  int
}

func (s *stubTransactionService) Create(_ context.Context, input service.CreateTransactionInput) (*models.Transaction, error) {
	s.createInput = input
	return s.createResult, s.createErr
}

func (s *stubTransactionService) GetByID(_ context.Context, _ string) (*models.Transaction, error) {
	return s.getResult, s.getErr
}

func (s *stubTransactionService) FindByUser(_ context.Context, _ string, page, limit int) (*models.PaginatedTransactions, error) {
	s.findPage = page
	s.findLimit = limit
	return s.findResult, s.findErr
}

func newTransactionsServer(svc service.TransactionService) *httptest.Server {
	return httptest.NewServer(api.NewTransactionsRouter(handler.NewTransactionHandler(svc)))
}

const createBody = `{
	"senderUserId": "7d272680-61f1-4752-93c1-57c72a8b7f4b",
	"receiverUserId": "b7a2a5c5-1f0e-4f2e-9d0e-9ab6cf2a3f11",
	"amount": 100.50,
	"description": "lunch"
}`

func TestTransactionHandler_Create(t *testing.T) {
	t.Run("returns 201 with the created transaction", func(t *testing.T) {
		svc := &stubTransactionService{
			createResult: &models.Transaction{ID: "tx-1", Status: models.StatusSuccess},
		}
		server := newTransactionsServer(svc)
		defer server.Close()

		resp, err := http.Post(server.URL+"/api/transactions", "application/json", strings.NewReader(createBody))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var tx models.Transaction
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tx))
		assert.Equal(t, "tx-1", tx.ID)
		assert.Equal(t, models.StatusSuccess, tx.Status)
		assert.Equal(t, "lunch", svc.createInput.Description)
	})

	t.Run("rejects non-uuid sender before touching the service", func(t *testing.T) {
		svc := &stubTransactionService{}
		server := newTransactionsServer(svc)
		defer server.Close()

		body := strings.Replace(createBody, "7d272680-61f1-4752-93c1-57c72a8b7f4b", "not-a-uuid", 1)
		resp, err := http.Post(server.URL+"/api/transactions", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var envelope map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, float64(400), envelope["statusCode"])
		assert.Equal(t, "/api/transactions", envelope["path"])
		assert.Contains(t, envelope["message"], "senderUserId")
		assert.Empty(t, svc.createInput.SenderUserID)
	})

	t.Run("maps service errors to 400 with the error envelope", func(t *testing.T) {
		svc := &stubTransactionService{createErr: pkgerrors.ErrSameUserTransfer}
		server := newTransactionsServer(svc)
		defer server.Close()

		body := strings.Replace(createBody, "b7a2a5c5-1f0e-4f2e-9d0e-9ab6cf2a3f11", "7d272680-61f1-4752-93c1-57c72a8b7f4b", 1)
		resp, err := http.Post(server.URL+"/api/transactions", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var envelope map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
		assert.Equal(t, pkgerrors.ErrSameUserTransfer.Error(), envelope["message"])
		assert.NotEmpty(t, envelope["timestamp"])
	})
}

func TestTransactionHandler_GetByID(t *testing.T) {
	t.Run("unknown id returns 404", func(t *testing.T) {
		svc := &stubTransactionService{getErr: pkgerrors.ErrTransactionNotFound}
		server := newTransactionsServer(svc)
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/transactions/missing")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("found returns the transaction", func(t *testing.T) {
		svc := &stubTransactionService{getResult: &models.Transaction{ID: "tx-1"}}
		server := newTransactionsServer(svc)
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/transactions/tx-1")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestTransactionHandler_FindByUser(t *testing.T) {
	t.Run("omitted pagination uses page 1 and limit 10", func(t *testing.T) {
		svc := &stubTransactionService{findResult: &models.PaginatedTransactions{Data: []models.Transaction{}}}
		server := newTransactionsServer(svc)
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/transactions/user/user-1")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, svc.findPage)
		assert.Equal(t, 10, svc.findLimit)
	})

	t.Run("pagination query parameters are forwarded", func(t *testing.T) {
		svc := &stubTransactionService{findResult: &models.PaginatedTransactions{}}
		server := newTransactionsServer(svc)
		defer server.Close()

		resp, err := http.Get(server.URL + "/api/transactions/user/user-1?page=3&limit=5")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, 3, svc.findPage)
		assert.Equal(t, 5, svc.findLimit)
	})
}
