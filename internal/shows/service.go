package shows

import (
	"context"

	"cinebook/internal/shared/apperrors"
	"cinebook/pkg/logger"
)

type Service interface {
	GetShow(ctx context.Context, showID string) (*ShowDetails, error)
}

type service struct {
	repo   Repository
	logger *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo:   repo,
		logger: logger.GetDefault(),
	}
}

func (s *service) GetShow(ctx context.Context, showID string) (*ShowDetails, error) {
	details, err := s.repo.GetShowDetails(ctx, showID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransient, "Internal Server Error", err)
	}
	if details == nil {
		return nil, apperrors.New(apperrors.KindNotFound, "Show not found")
	}
	return details, nil
}
