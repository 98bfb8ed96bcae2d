package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/prodtrack/backend/internal/domain/warehouse"
)

// WarehouseService handles warehouse operations
type WarehouseService struct {
	repo warehouse.Repository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(repo warehouse.Repository) *WarehouseService {
	return &WarehouseService{repo: repo}
}

// Create creates a warehouse
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.repo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Warehouse with this code already exists")
	}

	wh, err := warehouse.NewWarehouse(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	wh.Location = req.Location

	if err := s.repo.Save(ctx, wh); err != nil {
		return nil, err
	}

	resp := toWarehouseResponse(wh)
	return &resp, nil
}

// Update updates a warehouse
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	wh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := wh.Update(req.Name, req.Location); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			wh.Activate()
		} else {
			wh.Deactivate()
		}
	}

	if err := s.repo.Save(ctx, wh); err != nil {
		return nil, err
	}

	resp := toWarehouseResponse(wh)
	return &resp, nil
}

// GetByID returns a warehouse by ID
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	wh, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(wh)
	return &resp, nil
}

// GetByCode returns a warehouse by its code
func (s *WarehouseService) GetByCode(ctx context.Context, code string) (*WarehouseResponse, error) {
	wh, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	resp := toWarehouseResponse(wh)
	return &resp, nil
}

// List returns warehouses, optionally only active ones
func (s *WarehouseService) List(ctx context.Context, activeOnly bool) ([]WarehouseResponse, error) {
	var (
		warehouses []warehouse.Warehouse
		err        error
	)
	if activeOnly {
		warehouses, err = s.repo.FindActive(ctx)
	} else {
		filter := shared.DefaultFilter()
		filter.OrderBy = "code"
		filter.OrderDir = "asc"
		filter.PageSize = 200
		warehouses, err = s.repo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, toWarehouseResponse(&warehouses[i]))
	}
	return responses, nil
}

// Delete removes a warehouse
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
