package usecase

import (
	"floor-layout/internal/data/cache"
	"floor-layout/internal/data/repository"
	"floor-layout/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Layout      LayoutService
	TableStatus TableStatusService
}

func NewService(repo *repository.Repository, layoutCache cache.LayoutCache, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Layout:      NewLayoutService(repo, layoutCache, config.Floor, log),
		TableStatus: NewTableStatusService(repo, log),
	}
}
