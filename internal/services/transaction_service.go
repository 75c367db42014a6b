package service

import (
	"context"
	"log/slog"

	stderrors "errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/brunowerneck/payflow/internal/events"
	"github.com/brunowerneck/payflow/internal/infrastructure/usersclient"
	"github.com/brunowerneck/payflow/internal/models"
	"github.com/brunowerneck/payflow/internal/repository"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

var minAmount = decimal.NewFromFloat(0.01)

type CreateTransactionInput struct {
	SenderUserID   string
	ReceiverUserID string
	Amount         decimal.Decimal
	Description    string
}

type TransactionService interface {
	Create(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error)
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	FindByUser(ctx context.Context, userID string, page, limit int) (*models.PaginatedTransactions, error)
}

type transactionService struct {
	transactionRepo repository.TransactionRepository
	users           usersclient.ExistenceChecker
	publisher       events.Publisher
}

func NewTransactionService(
	transactionRepo repository.TransactionRepository,
	users usersclient.ExistenceChecker,
	publisher events.Publisher,
) *transactionService {
	return &transactionService{
		transactionRepo: transactionRepo,
		users:           users,
		publisher:       publisher,
	}
}

// validateUsers checks sender and receiver existence with one round trip:
// both lookups run concurrently and both must come back before deciding.
func (s *transactionService) validateUsers(ctx context.Context, senderID, receiverID string) error {
	receiverErrCh := make(chan error, 1)
	go func() {
		receiverErrCh <- s.users.CheckUser(ctx, receiverID)
	}()
	senderErr := s.users.CheckUser(ctx, senderID)
	receiverErr := <-receiverErrCh

	if stderrors.Is(senderErr, usersclient.ErrNotFound) {
		return pkgerrors.ErrSenderNotFound
	}
	if stderrors.Is(receiverErr, usersclient.ErrNotFound) {
		return pkgerrors.ErrReceiverNotFound
	}
	for _, err := range []error{senderErr, receiverErr} {
		if err == nil {
			continue
		}
		var upstream *usersclient.UpstreamError
		if stderrors.As(err, &upstream) {
			slog.Error("users service rejected validation", "status_code", upstream.StatusCode, "message", upstream.Message)
			return &pkgerrors.UpstreamMessageError{Message: upstream.Message}
		}
		slog.Error("failed to validate users", "error", err)
		return pkgerrors.ErrUsersServiceUnavailable
	}
	return nil
}

func (s *transactionService) Create(ctx context.Context, input CreateTransactionInput) (*models.Transaction, error) {
	tracer := otel.Tracer("transactions-service")
	ctx, span := tracer.Start(ctx, "CreateTransaction")
	defer span.End()

	if input.SenderUserID == input.ReceiverUserID {
		span.SetStatus(codes.Error, "same-user transfer")
		return nil, pkgerrors.ErrSameUserTransfer
	}

	if input.Amount.Cmp(minAmount) < 0 || input.Amount.Exponent() < -2 {
		span.SetStatus(codes.Error, "invalid amount")
		return nil, pkgerrors.ErrInvalidAmount
	}

	slog.Info("creating transaction",
		"sender_user_id", input.SenderUserID,
		"receiver_user_id", input.ReceiverUserID,
		"amount", input.Amount)

	if err := s.validateUsers(ctx, input.SenderUserID, input.ReceiverUserID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "user validation failed")
		return nil, err
	}

	transaction := &models.Transaction{
		SenderUserID:   input.SenderUserID,
		ReceiverUserID: input.ReceiverUserID,
		Amount:         input.Amount,
		Description:    input.Description,
		Status:         models.StatusSuccess,
	}
	if err := s.transactionRepo.Create(ctx, transaction); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction persistence failed")
		slog.Error("failed to persist transaction",
			"sender_user_id", input.SenderUserID,
			"receiver_user_id", input.ReceiverUserID,
			"error", err)
		return nil, pkgerrors.ErrTransactionCreationFailed
	}

	if err := s.publisher.PublishTransactionCreated(ctx, transaction.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "event publish failed")
		slog.Error("failed to publish transaction.created event",
			"transaction_id", transaction.ID,
			"error", err)
		return nil, pkgerrors.ErrTransactionCreationFailed
	}

	slog.Info("transaction created", "transaction_id", transaction.ID)
	return transaction, nil
}

func (s *transactionService) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	tracer := otel.Tracer("transactions-service")
	ctx, span := tracer.Start(ctx, "GetTransaction")
	defer span.End()

	transaction, err := s.transactionRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, pkgerrors.ErrTransactionNotFound) {
			slog.Warn("transaction not found", "transaction_id", id)
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction lookup failed")
		slog.Error("failed to get transaction", "transaction_id", id, "error", err)
		return nil, err
	}
	return transaction, nil
}

func (s *transactionService) FindByUser(ctx context.Context, userID string, page, limit int) (*models.PaginatedTransactions, error) {
	tracer := otel.Tracer("transactions-service")
	ctx, span := tracer.Start(ctx, "FindTransactionsByUser")
	defer span.End()

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	transactions, total, err := s.transactionRepo.FindByUser(ctx, userID, page, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transaction listing failed")
		slog.Error("failed to find transactions by user", "user_id", userID, "error", err)
		return nil, err
	}

	return &models.PaginatedTransactions{
		Data: transactions,
		Meta: models.PaginationMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: models.TotalPages(total, limit),
		},
	}, nil
}
