package repository

import (
	"context"

	"github.com/brunowerneck/payflow/internal/models"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByID(ctx context.Context, id string) (*models.Transaction, error)
	FindByUser(ctx context.Context, userID string, page, limit int) ([]models.Transaction, int, error)
}
