package repository

import (
	"context"

	"github.com/brunowerneck/payflow/internal/models"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context, page, limit int) ([]models.User, int, error)
	Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, id, profilePicture string) (*models.User, error)
}
