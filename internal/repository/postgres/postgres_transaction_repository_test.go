package repository_test

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunowerneck/payflow/internal/models"
	repository "github.com/brunowerneck/payflow/internal/repository/postgres"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

const transactionColumns = "id, sender_user_id, receiver_user_id, amount, description, status, created_at"

func TestPostgresTransactionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresTransactionRepository(db)
	ctx := context.Background()

	t.Run("NilTransaction", func(t *testing.T) {
		err := repo.Create(ctx, nil)
		assert.Error(t, err)
	})

	t.Run("InvalidStatus", func(t *testing.T) {
		tx := &models.Transaction{
			SenderUserID:   "sender",
			ReceiverUserID: "receiver",
			Amount:         decimal.RequireFromString("10.00"),
			Status:         "invalid",
		}
		err := repo.Create(ctx, tx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid transaction status")
	})

	t.Run("Success", func(t *testing.T) {
		tx := &models.Transaction{
			SenderUserID:   "sender",
			ReceiverUserID: "receiver",
			Amount:         decimal.RequireFromString("100.50"),
			Description:    "lunch",
			Status:         models.StatusSuccess,
		}
		createdAt := time.Now().UTC()
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions (id, sender_user_id, receiver_user_id, amount, description, status)`)).
			WithArgs(sqlmock.AnyArg(), tx.SenderUserID, tx.ReceiverUserID, tx.Amount, sqlmock.AnyArg(), tx.Status).
			WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

		err := repo.Create(ctx, tx)
		require.NoError(t, err)
		assert.NotEmpty(t, tx.ID, "id must be generated")
		assert.WithinDuration(t, createdAt, tx.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		tx := &models.Transaction{
			SenderUserID:   "sender",
			ReceiverUserID: "receiver",
			Amount:         decimal.RequireFromString("10.00"),
			Status:         models.StatusSuccess,
		}
		mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO transactions`)).
			WillReturnError(fmt.Errorf("database error"))

		err := repo.Create(ctx, tx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create transaction")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTransactionRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresTransactionRepository(db)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		createdAt := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "sender_user_id", "receiver_user_id", "amount", "description", "status", "created_at"}).
			AddRow("tx-1", "sender", "receiver", "100.50", "lunch", "SUCCESS", createdAt)
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`)).
			WithArgs("tx-1").
			WillReturnRows(rows)

		tx, err := repo.GetByID(ctx, "tx-1")
		require.NoError(t, err)
		assert.Equal(t, "tx-1", tx.ID)
		assert.True(t, tx.Amount.Equal(decimal.RequireFromString("100.50")))
		assert.Equal(t, models.StatusSuccess, tx.Status)
		assert.Equal(t, "lunch", tx.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`)).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		tx, err := repo.GetByID(ctx, "missing")
		assert.Nil(t, tx)
		assert.ErrorIs(t, err, pkgerrors.ErrTransactionNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresTransactionRepository_FindByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := repository.NewPostgresTransactionRepository(db)
	ctx := context.Background()

	t.Run("PaginatesWithOffsetAndLimit", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions WHERE sender_user_id = $1 OR receiver_user_id = $1`)).
			WithArgs("user-1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))

		createdAt := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"id", "sender_user_id", "receiver_user_id", "amount", "description", "status", "created_at"}).
			AddRow("tx-2", "user-1", "user-2", "20.00", nil, "SUCCESS", createdAt).
			AddRow("tx-1", "user-2", "user-1", "10.00", "coffee", "SUCCESS", createdAt.Add(-time.Minute))
		mock.ExpectQuery(regexp.QuoteMeta(`OFFSET $2 LIMIT $3`)).
			WithArgs("user-1", 10, 10).
			WillReturnRows(rows)

		transactions, total, err := repo.FindByUser(ctx, "user-1", 2, 10)
		require.NoError(t, err)
		assert.Equal(t, 25, total)
		require.Len(t, transactions, 2)
		assert.Equal(t, "tx-2", transactions[0].ID)
		assert.Empty(t, transactions[0].Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CountError", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM transactions`)).
			WillReturnError(fmt.Errorf("database error"))

		_, _, err := repo.FindByUser(ctx, "user-1", 1, 10)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to count transactions")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
