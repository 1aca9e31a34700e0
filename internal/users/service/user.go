package service

import (
	"context"
	"errors"

	userserrors "beautify/internal/users/errors"
	"beautify/internal/users/repository"
	"beautify/internal/users/validator"
	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/model"
	"beautify/pkg/sanitizer"
	"beautify/pkg/validation"
)

// TokenIssuer signs a credential for an email.
type TokenIssuer interface {
	Issue(email string) (string, error)
}

type UpsertResponse struct {
	Result model.UpsertResult `json:"result"`
	Token  string             `json:"token"`
}

type UserService interface {
	Upsert(ctx context.Context, email string, profile map[string]any) (*UpsertResponse, error)
	List(ctx context.Context) ([]*model.User, error)
	Promote(ctx context.Context, email string) error
	Remove(ctx context.Context, email string) error
	IsAdmin(ctx context.Context, email string) (bool, error)
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	tokens    TokenIssuer
	log       *logger.Logger
}

func NewUserService(repo repository.UserRepository, validator *validator.UserValidator, tokens TokenIssuer, log *logger.Logger) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		tokens:    tokens,
		log:       log,
	}
}

// Upsert is the combined register/login operation: the profile is stored and
// a fresh credential is issued for the email.
func (s *userService) Upsert(ctx context.Context, email string, profile map[string]any) (*UpsertResponse, error) {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return nil, err
	}

	profile, dropped := validator.StripReserved(profile)
	if len(dropped) > 0 {
		s.log.Warn("Ignoring reserved profile fields", "email", email, "fields", dropped)
	}
	if err := s.validator.ValidateProfile(profile); err != nil {
		return nil, validation.AppError("Invalid user profile", err)
	}

	result, err := s.repo.Upsert(ctx, email, profile)
	if err != nil {
		// A concurrent first upsert for the same email can lose the race on
		// the unique index; the record exists now, so retrying is safe.
		if errors.Is(err, userserrors.ErrDuplicate) {
			result, err = s.repo.Upsert(ctx, email, profile)
		}
		if err != nil {
			s.log.Error("Failed to upsert user", "email", email, "error", err)
			return nil, apperrors.StorageUnavailable("Failed to save user", err)
		}
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		s.log.Error("Failed to issue token", "email", email, "error", err)
		return nil, err
	}

	s.log.Info("User upserted", "email", email, "inserted", result.Inserted, "updated", result.Updated)
	return &UpsertResponse{Result: result, Token: token}, nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list users", "error", err)
		return nil, apperrors.StorageUnavailable("Failed to retrieve users", err)
	}
	return users, nil
}

func (s *userService) Promote(ctx context.Context, email string) error {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return err
	}

	if err := s.repo.SetRole(ctx, email, model.RoleAdmin); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", email)
		}
		s.log.Error("Failed to promote user", "email", email, "error", err)
		return apperrors.StorageUnavailable("Failed to promote user", err)
	}

	s.log.Info("User promoted to admin", "email", email)
	return nil
}

func (s *userService) Remove(ctx context.Context, email string) error {
	email, err := s.normalizeEmail(email)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, email); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", email)
		}
		s.log.Error("Failed to delete user", "email", email, "error", err)
		return apperrors.StorageUnavailable("Failed to delete user", err)
	}

	s.log.Info("User deleted", "email", email)
	return nil
}

// IsAdmin is a single read. An unknown email is simply not an admin.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return false, nil
		}
		s.log.Error("Failed to load user role", "email", email, "error", err)
		return false, apperrors.StorageUnavailable("Failed to load user role", err)
	}
	return user.IsAdmin(), nil
}

func (s *userService) normalizeEmail(email string) (string, error) {
	email = sanitizer.NormalizeEmail(email)
	if err := s.validator.ValidateEmail(email); err != nil {
		s.log.Warn("User email validation failed", "email", email, "error", err)
		return "", validation.AppError("Invalid email", err)
	}
	return email, nil
}
