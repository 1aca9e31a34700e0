package service

import (
	"context"

	"beautify/internal/catalog/repository"
	apperrors "beautify/pkg/errors"
	"beautify/pkg/logger"
	"beautify/pkg/model"
)

type CatalogService interface {
	ListNames(ctx context.Context) ([]*model.ServiceName, error)
	ListAll(ctx context.Context) ([]*model.Service, error)
}

type catalogService struct {
	repo repository.ServiceRepository
	log  *logger.Logger
}

func NewCatalogService(repo repository.ServiceRepository, log *logger.Logger) CatalogService {
	return &catalogService{repo: repo, log: log}
}

func (s *catalogService) ListNames(ctx context.Context) ([]*model.ServiceName, error) {
	services, err := s.repo.FindNames(ctx)
	if err != nil {
		s.log.Error("Failed to list service names", "error", err)
		return nil, apperrors.StorageUnavailable("Failed to retrieve services", err)
	}
	return services, nil
}

func (s *catalogService) ListAll(ctx context.Context) ([]*model.Service, error) {
	services, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to load service catalog", "error", err)
		return nil, apperrors.StorageUnavailable("Failed to retrieve services", err)
	}
	return services, nil
}
