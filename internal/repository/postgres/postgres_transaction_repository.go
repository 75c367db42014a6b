package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/brunowerneck/payflow/internal/models"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

type PostgresTransactionRepository struct {
	db *sql.DB
}

func NewPostgresTransactionRepository(db *sql.DB) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{db: db}
}

func (r *PostgresTransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	if !tx.Status.Valid() {
		return fmt.Errorf("invalid transaction status: %s", tx.Status)
	}
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}

	query := `
	INSERT INTO transactions (id, sender_user_id, receiver_user_id, amount, description, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`
	err := r.db.QueryRowContext(
		ctx,
		query,
		tx.ID,
		tx.SenderUserID,
		tx.ReceiverUserID,
		tx.Amount,
		nullableString(tx.Description),
		tx.Status,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *PostgresTransactionRepository) GetByID(ctx context.Context, id string) (*models.Transaction, error) {
	query := `
	SELECT id, sender_user_id, receiver_user_id, amount, description, status, created_at
	FROM transactions
	WHERE id = $1
	`

	var (
		tx          models.Transaction
		description sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&tx.ID,
		&tx.SenderUserID,
		&tx.ReceiverUserID,
		&tx.Amount,
		&description,
		&tx.Status,
		&tx.CreatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, pkgerrors.ErrTransactionNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to get transaction by id: %w", err)
	}

	tx.Description = description.String
	return &tx, nil
}

func (r *PostgresTransactionRepository) FindByUser(ctx context.Context, userID string, page, limit int) ([]models.Transaction, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM transactions WHERE sender_user_id = $1 OR receiver_user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
	SELECT id, sender_user_id, receiver_user_id, amount, description, status, created_at
	FROM transactions
	WHERE sender_user_id = $1 OR receiver_user_id = $1
	ORDER BY created_at DESC
	OFFSET $2 LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find transactions by user: %w", err)
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var (
			tx          models.Transaction
			description sql.NullString
		)
		if err := rows.Scan(
			&tx.ID,
			&tx.SenderUserID,
			&tx.ReceiverUserID,
			&tx.Amount,
			&description,
			&tx.Status,
			&tx.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction: %w", err)
		}
		tx.Description = description.String
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, total, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
