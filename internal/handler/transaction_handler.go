package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	service "github.com/brunowerneck/payflow/internal/services"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

type TransactionHandler struct {
	service service.TransactionService
}

func NewTransactionHandler(s service.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

type createTransactionRequest struct {
	SenderUserID   string          `json:"senderUserId" validate:"required,uuid4"`
	ReceiverUserID string          `json:"receiverUserId" validate:"required,uuid4"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Description    string          `json:"description" validate:"omitempty,max=255"`
}

// transactionErrorResponse is this service's error envelope.
type transactionErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

func (h *TransactionHandler) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(transactionErrorResponse{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Message:    err.Error(),
	})
}

func (h *TransactionHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/transactions", h.Create).Methods("POST")
	r.HandleFunc("/api/transactions/{id}", h.GetByID).Methods("GET")
	r.HandleFunc("/api/transactions/user/{userId}", h.FindByUser).Methods("GET")
}

func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		h.writeError(w, r, http.StatusBadRequest, errors.New(validationMessage(err)))
		return
	}

	transaction, err := h.service.Create(r.Context(), service.CreateTransactionInput{
		SenderUserID:   req.SenderUserID,
		ReceiverUserID: req.ReceiverUserID,
		Amount:         req.Amount,
		Description:    req.Description,
	})
	if err != nil {
		// Every creation failure is a client-facing 400; the underlying
		// cause was already logged by the service.
		h.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(transaction)
}

func (h *TransactionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	transaction, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrTransactionNotFound) {
			h.writeError(w, r, http.StatusNotFound, err)
		} else {
			h.writeError(w, r, http.StatusInternalServerError, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(transaction)
}

func (h *TransactionHandler) FindByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.service.FindByUser(r.Context(), userID, page, limit)
	if err != nil {
		h.writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// queryInt falls back to the default on missing or malformed values.
func queryInt(r *http.Request, name string, fallback int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}
