package service

import (
	"context"
	"errors"

	barberserrors "beautify/internal/barbers/errors"
	"beautify/internal/barbers/repository"
	"beautify/internal/barbers/validator"
	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/model"
	"beautify/pkg/sanitizer"
	"beautify/pkg/validation"
)

type BarberService interface {
	Add(ctx context.Context, barber *model.Barber) error
	List(ctx context.Context) ([]*model.Barber, error)
	Remove(ctx context.Context, email string) error
}

type barberService struct {
	repo      repository.BarberRepository
	validator *validator.BarberValidator
	log       *logger.Logger
}

func NewBarberService(repo repository.BarberRepository, validator *validator.BarberValidator, log *logger.Logger) BarberService {
	return &barberService{
		repo:      repo,
		validator: validator,
		log:       log,
	}
}

func (s *barberService) Add(ctx context.Context, barber *model.Barber) error {
	barber.ID = ""
	barber.Email = sanitizer.NormalizeEmail(barber.Email)
	barber.Name = sanitizer.NormalizeName(barber.Name)
	barber.Specialty = sanitizer.TrimAndNormalize(barber.Specialty)

	if err := s.validator.Validate(barber); err != nil {
		s.log.Warn("Barber validation failed", "email", barber.Email, "error", err)
		return validation.AppError("Barber validation failed", err)
	}

	if err := s.repo.Create(ctx, barber); err != nil {
		if errors.Is(err, barberserrors.ErrDuplicate) {
			s.log.Warn("Duplicate barber rejected", "email", barber.Email)
			return apperrors.Conflict("Barber with this email already exists")
		}
		s.log.Error("Failed to create barber", "email", barber.Email, "error", err)
		return apperrors.StorageUnavailable("Failed to create barber", err)
	}

	s.log.Info("Barber added", "id", barber.ID, "email", barber.Email)
	return nil
}

func (s *barberService) List(ctx context.Context) ([]*model.Barber, error) {
	barbers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to list barbers", "error", err)
		return nil, apperrors.StorageUnavailable("Failed to retrieve barbers", err)
	}
	return barbers, nil
}

func (s *barberService) Remove(ctx context.Context, email string) error {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return apperrors.InvalidInput("Barber email is required")
	}

	if err := s.repo.DeleteByEmail(ctx, email); err != nil {
		if errors.Is(err, barberserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Barber", email)
		}
		s.log.Error("Failed to remove barber", "email", email, "error", err)
		return apperrors.StorageUnavailable("Failed to remove barber", err)
	}

	s.log.Info("Barber removed", "email", email)
	return nil
}
