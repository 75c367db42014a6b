package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	stderrors "errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/brunowerneck/payflow/internal/events"
	"github.com/brunowerneck/payflow/internal/infrastructure/redis"
	"github.com/brunowerneck/payflow/internal/models"
	"github.com/brunowerneck/payflow/internal/repository"
	pkgerrors "github.com/brunowerneck/payflow/pkg/errors"
)

const userCacheTTL = 60 * time.Second

type UserService interface {
	FindAll(ctx context.Context, page, limit int) ([]models.User, int, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, id, profilePicture string) (*models.User, error)
}

type userService struct {
	userRepo    repository.UserRepository
	redisClient redis.RedisClient
	publisher   events.Publisher
}

func NewUserService(
	userRepo repository.UserRepository,
	redisClient redis.RedisClient,
	publisher events.Publisher,
) *userService {
	return &userService{
		userRepo:    userRepo,
		redisClient: redisClient,
		publisher:   publisher,
	}
}

func userCacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

func (s *userService) FindAll(ctx context.Context, page, limit int) ([]models.User, int, error) {
	tracer := otel.Tracer("users-service")
	ctx, span := tracer.Start(ctx, "FindAllUsers")
	defer span.End()

	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	users, total, err := s.userRepo.FindAll(ctx, page, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "user listing failed")
		slog.Error("failed to list users", "page", page, "limit", limit, "error", err)
		return nil, 0, err
	}
	return users, total, nil
}

// GetByID is a cache-aside read: the store is only consulted on a cache miss,
// and a miss repopulates the cache for 60 seconds.
func (s *userService) GetByID(ctx context.Context, id string) (*models.User, error) {
	tracer := otel.Tracer("users-service")
	ctx, span := tracer.Start(ctx, "GetUser")
	defer span.End()

	cacheKey := userCacheKey(id)
	cached, err := s.redisClient.Get(ctx, cacheKey)
	if err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(cached), &user); err != nil {
			slog.Error("failed to unmarshal cached user", "user_id", id, "error", err)
		} else {
			slog.Debug("user found in cache", "user_id", id)
			return &user, nil
		}
	} else if !stderrors.Is(err, redis.ErrKeyNotFound) {
		slog.Error("failed to read user from cache", "user_id", id, "error", err)
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, pkgerrors.ErrUserNotFound) {
			slog.Warn("user not found", "user_id", id)
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "user lookup failed")
		slog.Error("failed to get user", "user_id", id, "error", err)
		return nil, err
	}

	userJSON, err := json.Marshal(user)
	if err != nil {
		slog.Error("failed to marshal user for cache", "user_id", id, "error", err)
		return user, nil
	}
	if err := s.redisClient.Set(ctx, cacheKey, string(userJSON), userCacheTTL); err != nil {
		slog.Error("failed to cache user", "user_id", id, "error", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	tracer := otel.Tracer("users-service")
	ctx, span := tracer.Start(ctx, "UpdateUser")
	defer span.End()

	current, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, pkgerrors.ErrUserNotFound) {
			span.SetStatus(codes.Error, "user not found")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "user lookup failed")
		slog.Error("failed to load user for update", "user_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpdateFailed, err)
	}

	// Email uniqueness only needs a lookup when the email actually changes.
	if update.Email != nil && *update.Email != current.Email {
		existing, err := s.userRepo.GetByEmail(ctx, *update.Email)
		if err != nil && !stderrors.Is(err, pkgerrors.ErrUserNotFound) {
			span.RecordError(err)
			span.SetStatus(codes.Error, "email uniqueness check failed")
			slog.Error("failed to check email uniqueness", "user_id", id, "error", err)
			return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpdateFailed, err)
		}
		if existing != nil {
			span.SetStatus(codes.Error, "email already in use")
			slog.Warn("email already in use", "user_id", id, "email", *update.Email)
			return nil, pkgerrors.ErrEmailInUse
		}
	}

	updated, err := s.userRepo.Update(ctx, id, update)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "user update failed")
		slog.Error("failed to update user", "user_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpdateFailed, err)
	}

	if err := s.finishMutation(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "post-update steps failed")
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpdateFailed, err)
	}

	slog.Info("user updated", "user_id", id)
	return updated, nil
}

func (s *userService) UpdateProfilePicture(ctx context.Context, id, profilePicture string) (*models.User, error) {
	tracer := otel.Tracer("users-service")
	ctx, span := tracer.Start(ctx, "UpdateProfilePicture")
	defer span.End()

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		if stderrors.Is(err, pkgerrors.ErrUserNotFound) {
			span.SetStatus(codes.Error, "user not found")
			return nil, err
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "user lookup failed")
		slog.Error("failed to load user for profile picture update", "user_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpdateFailed, err)
	}

	updated, err := s.userRepo.UpdateProfilePicture(ctx, id, profilePicture)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "profile picture update failed")
		slog.Error("failed to update profile picture", "user_id", id, "error", err)
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpdateFailed, err)
	}

	if err := s.finishMutation(ctx, id); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "post-update steps failed")
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrUpdateFailed, err)
	}

	slog.Info("profile picture updated", "user_id", id)
	return updated, nil
}

// finishMutation runs the shared tail of every user mutation: drop the stale
// cache entry, then notify. Invalidation must come first so a concurrent read
// cannot repopulate the cache with pre-update state before the delete lands.
func (s *userService) finishMutation(ctx context.Context, id string) error {
	if err := s.redisClient.Del(ctx, userCacheKey(id)); err != nil {
		slog.Error("failed to invalidate user cache", "user_id", id, "error", err)
		return err
	}
	if err := s.publisher.PublishUserUpdated(ctx, id); err != nil {
		slog.Error("failed to publish user.updated event", "user_id", id, "error", err)
		return err
	}
	return nil
}
