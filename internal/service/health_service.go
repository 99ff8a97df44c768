package service

import (
	"context"
	"fmt"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/repository"
)

type HealthService interface {
	Check(ctx context.Context) (int, error)
}

type healthService struct {
	tablesRepo repository.TablesRepository
}

func NewHealthService(tablesRepo repository.TablesRepository) HealthService {
	return &healthService{tablesRepo: tablesRepo}
}

// Check pings the database and returns the number of tables in the public schema.
func (h *healthService) Check(ctx context.Context) (int, error) {
	if err := h.tablesRepo.Ping(ctx); err != nil {
		return 0, fmt.Errorf("database unreachable: %v: %w", err, models.ErrInternal)
	}

	count, err := h.tablesRepo.CountTablesDB(ctx)
	if err != nil {
		return 0, internal(err)
	}

	return count, nil
}
