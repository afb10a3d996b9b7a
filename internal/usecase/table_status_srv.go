package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"floor-layout/internal/data/repository"
	"floor-layout/internal/dto/request"
	"floor-layout/internal/dto/response"
	"floor-layout/internal/floorplan"

	"go.uber.org/zap"
)

type TableStatusService interface {
	List(ctx context.Context, tenantID string) ([]response.TableStatusResponse, error)
	UpdateStatus(ctx context.Context, tenantID, tableID string, req *request.UpdateTableStatusRequest) (*response.TableStatusResponse, error)
}

type tableStatusService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewTableStatusService(repo *repository.Repository, log *zap.Logger) TableStatusService {
	return &tableStatusService{
		repo: repo,
		log:  log.With(zap.String("service", "table_status")),
		now:  time.Now,
	}
}

func (s *tableStatusService) List(ctx context.Context, tenantID string) ([]response.TableStatusResponse, error) {
	statuses, err := s.repo.TableStatus.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list table statuses: %w", err)
	}

	result := make([]response.TableStatusResponse, len(statuses))
	for i, st := range statuses {
		result[i] = response.TableStatusToResponse(st)
	}
	return result, nil
}

func (s *tableStatusService) UpdateStatus(ctx context.Context, tenantID, tableID string, req *request.UpdateTableStatusRequest) (*response.TableStatusResponse, error) {
	status, ok := floorplan.ParseTableStatus(req.Status)
	if !ok {
		return nil, &LayoutError{
			Code:    CodeInvalidStatus,
			Message: fmt.Sprintf("Unknown table status: %s", req.Status),
		}
	}

	now := s.now().UTC()
	err := s.repo.TableStatus.UpdateStatus(ctx, tenantID, tableID, status, now)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("table %s: %w", tableID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update table status: %w", err)
	}

	s.log.Info("Table status updated",
		zap.String("tenant_id", tenantID),
		zap.String("table_id", tableID),
		zap.String("status", string(status)),
	)

	return &response.TableStatusResponse{
		TableID:   tableID,
		Status:    string(status),
		UpdatedAt: now,
	}, nil
}
