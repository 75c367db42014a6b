package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brunowerneck/payflow/internal/models"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

const userColumns = `id, name, email, address, banking_details, profile_picture, created_at, updated_at`

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresUserRepository) FindAll(ctx context.Context, page, limit int) ([]models.User, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, (page-1)*limit, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := r.scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, total, nil
}

// Update applies only the fields set on the partial; COALESCE keeps the rest.
func (r *PostgresUserRepository) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	var bankingDetails []byte
	if update.BankingDetails != nil {
		b, err := json.Marshal(update.BankingDetails)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal banking details: %w", err)
		}
		bankingDetails = b
	}

	query := `
	UPDATE users
	SET name = COALESCE($2, name),
	    email = COALESCE($3, email),
	    address = COALESCE($4, address),
	    banking_details = COALESCE($5, banking_details),
	    updated_at = NOW()
	WHERE id = $1
	RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRowContext(
		ctx,
		query,
		id,
		update.Name,
		update.Email,
		update.Address,
		bankingDetails,
	))
}

func (r *PostgresUserRepository) UpdateProfilePicture(ctx context.Context, id, profilePicture string) (*models.User, error) {
	query := `
	UPDATE users
	SET profile_picture = $2,
	    updated_at = NOW()
	WHERE id = $1
	RETURNING ` + userColumns
	return r.scanUser(r.db.QueryRowContext(ctx, query, id, profilePicture))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresUserRepository) scanUser(row rowScanner) (*models.User, error) {
	var (
		user           models.User
		address        sql.NullString
		bankingDetails []byte
		profilePicture sql.NullString
	)
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&address,
		&bankingDetails,
		&profilePicture,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, pkgerrors.ErrUserNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	user.Address = address.String
	if profilePicture.Valid {
		user.ProfilePicture = &profilePicture.String
	}
	if len(bankingDetails) > 0 {
		var details models.BankingDetails
		if err := json.Unmarshal(bankingDetails, &details); err != nil {
			return nil, fmt.Errorf("failed to unmarshal banking details: %w", err)
		}
		user.BankingDetails = &details
	}
	return &user, nil
}
