package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ecocomercial/farmops_backend/internal/apperrors"
	"github.com/ecocomercial/farmops_backend/internal/core/domain"
	portsrepo "github.com/ecocomercial/farmops_backend/internal/core/ports/repositories"
	portssvc "github.com/ecocomercial/farmops_backend/internal/core/ports/services"
	"github.com/ecocomercial/farmops_backend/internal/dto"
	"github.com/ecocomercial/farmops_backend/internal/middleware"
	"github.com/ecocomercial/farmops_backend/internal/utils"
	"github.com/ecocomercial/farmops_backend/pkg/retry"
)

// UserService handles user management and authentication.
type UserService struct {
	userRepo    portsrepo.UserRepository
	retryPolicy retry.Policy
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepository, retryPolicy retry.Policy) portssvc.UserSvcFacade {
	return &UserService{
		userRepo:    userRepo,
		retryPolicy: retryPolicy,
	}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// AuthenticateUser verifies the claimed credentials against the stored bcrypt
// hash. A wrong password reports the same not-found failure as an unknown
// username so login responses never reveal which half was wrong.
func (s *UserService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var user *domain.User
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		user, repoErr = s.userRepo.FindUserByUsername(ctx, username)
		return repoErr
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrNotFound)
		}
		logger.Error("Failed to look up user for authentication", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		logger.Warn("Password mismatch on login", slog.String("username", username))
		return nil, fmt.Errorf("invalid credentials: %w", apperrors.ErrNotFound)
	}

	return user, nil
}

// RegisterWorker creates a new user. Uniqueness of username and
// identification is pre-checked for friendly reporting; the database
// constraints close the remaining race.
func (s *UserService) RegisterWorker(ctx context.Context, req dto.RegisterWorkerRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	role := domain.Role(req.Role)
	if req.Role == "" {
		role = domain.RoleWorker
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: invalid role %q", apperrors.ErrValidation, req.Role)
	}

	taken, err := s.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("username %s already in use: %w", req.Username, apperrors.ErrDuplicate)
	}

	taken, err = s.IdentificationExists(ctx, req.Identification)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("identification already in use: %w", apperrors.ErrDuplicate)
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := domain.User{
		Username:       req.Username,
		PasswordHash:   passwordHash,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      req.BirthDate,
		Identification: req.Identification,
		Role:           role,
		LocationID:     req.LocationID,
	}

	// No retry here: re-running an insert after an ambiguous failure could
	// create the user twice.
	userID, err := s.userRepo.SaveUser(ctx, user)
	if err != nil {
		logger.Error("Failed to save user", slog.String("error", err.Error()), slog.String("username", req.Username))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	user.UserID = userID

	logger.Info("User registered", slog.Int64("new_user_id", userID), slog.String("role", string(role)))
	return &user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	var user *domain.User
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		user, repoErr = s.userRepo.FindUserByID(ctx, userID)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.EnrichedUser, error) {
	var users []domain.EnrichedUser
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		users, repoErr = s.userRepo.FindEnrichedUsers(ctx)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (s *UserService) ListWorkers(ctx context.Context) ([]domain.EnrichedUser, error) {
	var workers []domain.EnrichedUser
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		workers, repoErr = s.userRepo.FindEnrichedWorkers(ctx)
		return repoErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	return workers, nil
}

// UpdateWorker applies an administrator edit. Only the fields present in the
// request change.
func (s *UserService) UpdateWorker(ctx context.Context, userID int64, req dto.UpdateWorkerRequest) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.BirthDate != nil {
		user.BirthDate = *req.BirthDate
	}
	if req.Identification != nil {
		user.Identification = *req.Identification
	}
	if req.LocationID != nil {
		user.LocationID = req.LocationID
	}

	// Keyed full-row update, safe to retry.
	err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		return s.userRepo.UpdateWorker(ctx, *user)
	})
	if err != nil {
		logger.Error("Failed to update worker", slog.String("error", err.Error()), slog.Int64("worker_id", userID))
		return fmt.Errorf("failed to update worker: %w", err)
	}

	logger.Info("Worker updated", slog.Int64("worker_id", userID))
	return nil
}

// DeleteWorker removes the user and every dependent hay and activity record
// as one all-or-nothing unit.
func (s *UserService) DeleteWorker(ctx context.Context, userID int64) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	// The cascade is keyed on the user id: once the row is gone a repeat
	// attempt reports not-found instead of deleting twice.
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		return s.userRepo.DeleteWorkerCascade(ctx, userID)
	})
	if err != nil {
		logger.Error("Failed to delete worker", slog.String("error", err.Error()), slog.Int64("worker_id", userID))
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	logger.Info("Worker deleted", slog.Int64("worker_id", userID))
	return nil
}

func (s *UserService) UsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		count, repoErr = s.userRepo.CountByUsername(ctx, username)
		return repoErr
	})
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

func (s *UserService) IdentificationExists(ctx context.Context, identification string) (bool, error) {
	var count int64
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		count, repoErr = s.userRepo.CountByIdentification(ctx, identification)
		return repoErr
	})
	if err != nil {
		return false, fmt.Errorf("failed to check identification: %w", err)
	}
	return count > 0, nil
}

// UpdateUsername changes the login name and reports whether a row actually
// changed.
func (s *UserService) UpdateUsername(ctx context.Context, userID int64, username string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var changed bool
	err := retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		changed, repoErr = s.userRepo.UpdateUsername(ctx, userID, username)
		return repoErr
	})
	if err != nil {
		logger.Error("Failed to update username", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return false, fmt.Errorf("failed to update username: %w", err)
	}

	return changed, nil
}

// UpdatePassword stores a fresh bcrypt hash and reports whether a row
// actually changed.
func (s *UserService) UpdatePassword(ctx context.Context, userID int64, password string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", slog.String("error", err.Error()))
		return false, fmt.Errorf("failed to hash password: %w", err)
	}

	var changed bool
	err = retry.Do(ctx, s.retryPolicy, func(ctx context.Context) error {
		var repoErr error
		changed, repoErr = s.userRepo.UpdatePassword(ctx, userID, passwordHash)
		return repoErr
	})
	if err != nil {
		logger.Error("Failed to update password", slog.String("error", err.Error()), slog.Int64("user_id", userID))
		return false, fmt.Errorf("failed to update password: %w", err)
	}

	return changed, nil
}
