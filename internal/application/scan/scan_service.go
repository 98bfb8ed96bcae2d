package scan

import (
	"context"

	"github.com/google/uuid"
	appinventory "github.com/prodtrack/backend/internal/application/inventory"
	"github.com/prodtrack/backend/internal/domain/catalog"
	"github.com/prodtrack/backend/internal/domain/scan"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/prodtrack/backend/internal/domain/warehouse"
)

// ScanService records shop-floor scans. RECEIVE, ISSUE and RETURN scans
// against a known warehouse also move stock, delegating the actual mutation
// to the stock service inside the same database transaction: a scan whose
// mutation fails is not recorded either.
type ScanService struct {
	txnScope      TransactionScope
	scanRepo      scan.Repository
	stockService  *appinventory.StockService
	productRepo   catalog.ProductRepository
	warehouseRepo warehouse.Repository
}

// NewScanService creates a new ScanService
func NewScanService(
	txnScope TransactionScope,
	scanRepo scan.Repository,
	stockService *appinventory.StockService,
	productRepo catalog.ProductRepository,
	warehouseRepo warehouse.Repository,
) *ScanService {
	return &ScanService{
		txnScope:      txnScope,
		scanRepo:      scanRepo,
		stockService:  stockService,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// RecordScan persists a scan log and applies its stock effect, if any.
// Non-mutating actions (MOVE, INSPECT, COMPLETE), scans without a warehouse
// and scans of never-stocked pairs are recorded log-only.
func (s *ScanService) RecordScan(ctx context.Context, req RecordScanRequest) (*ScanLogResponse, error) {
	action := scan.ActionType(req.ActionType)
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown scan action type")
	}

	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if req.WarehouseID != nil {
		if _, err := s.warehouseRepo.FindByID(ctx, *req.WarehouseID); err != nil {
			return nil, err
		}
	}

	log, err := scan.NewScanLog(req.ProductID, action, req.Quantity, req.UserID)
	if err != nil {
		return nil, err
	}
	log.LocationCode = req.LocationCode
	log.LocationName = req.LocationName
	log.SectionID = req.SectionID
	log.OrderID = req.OrderID
	log.WarehouseID = req.WarehouseID
	log.Latitude = req.Latitude
	log.Longitude = req.Longitude
	log.Notes = req.Notes

	var mutated bool
	err = s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ScanRepo().Save(ctx, log); err != nil {
			return err
		}
		mutated, err = s.stockService.ApplyScanMutation(ctx, repos.ItemRepo(), repos.LogRepo(), log)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := toScanLogResponse(log, mutated)
	return &resp, nil
}

// GetByID returns a single scan log
func (s *ScanService) GetByID(ctx context.Context, id uuid.UUID) (*ScanLogResponse, error) {
	log, err := s.scanRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toScanLogResponse(log, false)
	return &resp, nil
}

// List returns scan logs matching the filter, newest first
func (s *ScanService) List(ctx context.Context, filter ScanListFilter) ([]ScanLogResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ActionType != "" {
		domainFilter.Filters["action_type"] = filter.ActionType
	}
	if filter.SectionID != nil {
		domainFilter.Filters["section_id"] = *filter.SectionID
	}

	var (
		logs []scan.ScanLog
		err  error
	)
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
		logs, err = s.scanRepo.FindByProduct(ctx, *filter.ProductID, domainFilter)
	} else {
		logs, err = s.scanRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.scanRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ScanLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, toScanLogResponse(&logs[i], false))
	}
	return responses, total, nil
}
