package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/catalog"
	"github.com/prodtrack/backend/internal/domain/inventory"
	"github.com/prodtrack/backend/internal/domain/scan"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/prodtrack/backend/internal/domain/warehouse"
)

// StockService is the single entry point for every stock mutation. All
// writes go through a TransactionScope so that the inventory row, its log
// entry and the business transaction commit or roll back together.
type StockService struct {
	txnScope       TransactionScope
	itemRepo       inventory.ItemRepository
	logRepo        inventory.LogRepository
	txnRepo        inventory.TransactionRepository
	productRepo    catalog.ProductRepository
	warehouseRepo  warehouse.Repository
	eventPublisher shared.EventPublisher
}

// NewStockService creates a new StockService. The plain repositories serve
// reads; mutations run on the transaction-scoped repositories.
func NewStockService(
	txnScope TransactionScope,
	itemRepo inventory.ItemRepository,
	logRepo inventory.LogRepository,
	txnRepo inventory.TransactionRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo warehouse.Repository,
) *StockService {
	return &StockService{
		txnScope:      txnScope,
		itemRepo:      itemRepo,
		logRepo:       logRepo,
		txnRepo:       txnRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// AdjustStock applies a single-warehouse stock movement. IN adds the
// quantity, OUT removes it (failing on insufficient stock), and ADJUSTMENT
// sets the quantity to the given absolute target. The inventory row is
// created lazily at zero if the product has never been stocked at the
// warehouse. Exactly one inventory log and one stock transaction are
// written per call.
func (s *StockService) AdjustStock(ctx context.Context, req AdjustStockRequest) (*StockMutationResponse, error) {
	if !req.Kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Adjustment kind must be IN, OUT or ADJUSTMENT")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}

	var (
		item   *inventory.InventoryItem
		change inventory.StockChange
		action inventory.LogAction
		txn    *inventory.StockTransaction
		log    *inventory.InventoryLog
	)

	err = s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err = repos.ItemRepo().GetOrCreate(ctx, req.ProductID, req.WarehouseID)
		if err != nil {
			return err
		}

		switch req.Kind {
		case AdjustmentKindIn:
			action = inventory.LogActionIn
			change, err = item.StockIn(req.Quantity)
		case AdjustmentKindOut:
			action = inventory.LogActionOut
			change, err = item.StockOut(req.Quantity)
		case AdjustmentKindAdjustment:
			action = inventory.LogActionAdjustment
			change, err = item.SetQuantity(req.Quantity)
		}
		if err != nil {
			return err
		}

		if err := repos.ItemRepo().SaveWithLock(ctx, item); err != nil {
			return err
		}

		log, err = inventory.NewInventoryLog(item.ID, action, change, req.UserID, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.LogRepo().Save(ctx, log); err != nil {
			return err
		}

		txn, err = s.buildAdjustTransaction(req, change)
		if err != nil {
			return err
		}
		return repos.TransactionRepo().Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.publishItemEvents(ctx, item, product)

	return &StockMutationResponse{
		Item:           toInventoryItemResponse(item),
		Action:         action,
		BeforeQuantity: change.Before,
		AfterQuantity:  change.After,
		Difference:     change.Difference,
		TransactionID:  txn.ID,
		LogID:          log.ID,
	}, nil
}

func (s *StockService) buildAdjustTransaction(req AdjustStockRequest, change inventory.StockChange) (*inventory.StockTransaction, error) {
	switch req.Kind {
	case AdjustmentKindIn:
		return inventory.NewInboundTransaction(req.ProductID, req.WarehouseID, req.Quantity, req.UserID, req.Notes)
	case AdjustmentKindOut:
		return inventory.NewOutboundTransaction(req.ProductID, req.WarehouseID, req.Quantity, req.UserID, req.Notes)
	default:
		magnitude := change.Difference
		if magnitude < 0 {
			magnitude = -magnitude
		}
		return inventory.NewAdjustmentTransaction(req.ProductID, magnitude, req.UserID, req.Notes)
	}
}

// TransferStock moves stock between two warehouses atomically. The source
// row must already exist and hold enough stock; the destination row is
// created lazily. Two log entries (TRANSFER_OUT, TRANSFER_IN) and one
// TRANSFER transaction are written; the total quantity across both
// warehouses is unchanged.
func (s *StockService) TransferStock(ctx context.Context, req TransferStockRequest) (*TransferStockResponse, error) {
	if req.FromWarehouseID == req.ToWarehouseID {
		return nil, shared.NewDomainError("INVALID_OPERATION", "Source and destination warehouse must differ")
	}
	if req.Quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Transfer quantity must be positive")
	}

	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	fromWh, err := s.warehouseRepo.FindByID(ctx, req.FromWarehouseID)
	if err != nil {
		return nil, err
	}
	toWh, err := s.warehouseRepo.FindByID(ctx, req.ToWarehouseID)
	if err != nil {
		return nil, err
	}

	var (
		fromItem *inventory.InventoryItem
		toItem   *inventory.InventoryItem
		txn      *inventory.StockTransaction
	)

	err = s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Rows are locked in warehouse-ID order so concurrent opposing
		// transfers cannot deadlock.
		if req.FromWarehouseID.String() < req.ToWarehouseID.String() {
			if fromItem, err = repos.ItemRepo().FindByProductAndWarehouseForUpdate(ctx, req.ProductID, req.FromWarehouseID); err != nil {
				return err
			}
			if toItem, err = repos.ItemRepo().GetOrCreate(ctx, req.ProductID, req.ToWarehouseID); err != nil {
				return err
			}
		} else {
			if toItem, err = repos.ItemRepo().GetOrCreate(ctx, req.ProductID, req.ToWarehouseID); err != nil {
				return err
			}
			if fromItem, err = repos.ItemRepo().FindByProductAndWarehouseForUpdate(ctx, req.ProductID, req.FromWarehouseID); err != nil {
				return err
			}
		}

		outChange, err := fromItem.StockOut(req.Quantity)
		if err != nil {
			return err
		}
		inChange, err := toItem.StockIn(req.Quantity)
		if err != nil {
			return err
		}

		if err := repos.ItemRepo().SaveWithLock(ctx, fromItem); err != nil {
			return err
		}
		if err := repos.ItemRepo().SaveWithLock(ctx, toItem); err != nil {
			return err
		}

		outLog, err := inventory.NewInventoryLog(fromItem.ID, inventory.LogActionTransferOut, outChange, req.UserID,
			fmt.Sprintf("Transfer to %s", toWh.Name))
		if err != nil {
			return err
		}
		if err := repos.LogRepo().Save(ctx, outLog); err != nil {
			return err
		}

		inLog, err := inventory.NewInventoryLog(toItem.ID, inventory.LogActionTransferIn, inChange, req.UserID,
			fmt.Sprintf("Transfer from %s", fromWh.Name))
		if err != nil {
			return err
		}
		if err := repos.LogRepo().Save(ctx, inLog); err != nil {
			return err
		}

		txn, err = inventory.NewTransferTransaction(req.ProductID, req.FromWarehouseID, req.ToWarehouseID, req.Quantity, req.UserID, req.Notes)
		if err != nil {
			return err
		}
		return repos.TransactionRepo().Save(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	s.publishItemEvents(ctx, fromItem, product)
	s.publishItemEvents(ctx, toItem, product)

	return &TransferStockResponse{
		FromItem:      toInventoryItemResponse(fromItem),
		ToItem:        toInventoryItemResponse(toItem),
		Quantity:      req.Quantity,
		TransactionID: txn.ID,
	}, nil
}

// ApplyScanMutation books a stock-moving scan against an existing inventory
// row. It is called by the scan service inside its own transaction, with
// repositories scoped to that transaction. Scans never create inventory
// rows: when no row exists for the pair the scan is recorded without a
// stock movement and (false, nil) is returned.
func (s *StockService) ApplyScanMutation(
	ctx context.Context,
	itemRepo inventory.ItemRepository,
	logRepo inventory.LogRepository,
	scanLog *scan.ScanLog,
) (bool, error) {
	if !scanLog.ActionType.MutatesStock() || scanLog.WarehouseID == nil {
		return false, nil
	}

	item, err := itemRepo.FindByProductAndWarehouseForUpdate(ctx, scanLog.ProductID, *scanLog.WarehouseID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	var change inventory.StockChange
	if scanLog.ActionType.IsIncrease() {
		change, err = item.StockIn(scanLog.Quantity)
	} else {
		change, err = item.StockOut(scanLog.Quantity)
	}
	if err != nil {
		return false, err
	}

	if err := itemRepo.SaveWithLock(ctx, item); err != nil {
		return false, err
	}

	notes := scanLog.Notes
	if notes == "" {
		notes = fmt.Sprintf("Scanned at %s", scanLog.LocationLabel())
	}
	scannedBy := scanLog.ScannedBy
	log, err := inventory.NewInventoryLog(item.ID, inventory.LogAction(scanLog.ActionType), change, &scannedBy, notes)
	if err != nil {
		return false, err
	}
	if err := logRepo.Save(ctx, log); err != nil {
		return false, err
	}

	s.publishItemEventsOnly(ctx, item)

	return true, nil
}

// GetByID returns a single inventory item
func (s *StockService) GetByID(ctx context.Context, id uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toInventoryItemResponse(item)
	return &resp, nil
}

// GetByProductAndWarehouse returns the inventory item for a pair
func (s *StockService) GetByProductAndWarehouse(ctx context.Context, productID, warehouseID uuid.UUID) (*InventoryItemResponse, error) {
	item, err := s.itemRepo.FindByProductAndWarehouse(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	resp := toInventoryItemResponse(item)
	return &resp, nil
}

// List returns inventory items matching the filter
func (s *StockService) List(ctx context.Context, filter InventoryListFilter) ([]InventoryItemResponse, int64, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)
	if filter.WarehouseID != nil {
		domainFilter.Filters["warehouse_id"] = *filter.WarehouseID
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toInventoryItemResponse(&items[i]))
	}
	return responses, total, nil
}

// ListLowStock returns items of active products at or below their minimum
// stock threshold
func (s *StockService) ListLowStock(ctx context.Context, filter InventoryListFilter) ([]InventoryItemResponse, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir)

	items, err := s.itemRepo.FindBelowMinimum(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]InventoryItemResponse, 0, len(items))
	for i := range items {
		responses = append(responses, toInventoryItemResponse(&items[i]))
	}
	return responses, nil
}

// GetTotalQuantityByProduct returns the product's quantity summed across all
// warehouses
func (s *StockService) GetTotalQuantityByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	return s.itemRepo.SumQuantityByProduct(ctx, productID)
}

// ListLogs returns inventory log entries matching the filter
func (s *StockService) ListLogs(ctx context.Context, filter LogListFilter) ([]InventoryLogResponse, int64, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, "created_at", "desc")
	if filter.Action != "" {
		domainFilter.Filters["action"] = filter.Action
	}

	var (
		logs []inventory.InventoryLog
		err  error
	)
	if filter.InventoryItemID != nil {
		domainFilter.Filters["inventory_item_id"] = *filter.InventoryItemID
		logs, err = s.logRepo.FindByInventoryItem(ctx, *filter.InventoryItemID, domainFilter)
	} else {
		logs, err = s.logRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.logRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InventoryLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, toInventoryLogResponse(&logs[i]))
	}
	return responses, total, nil
}

// ListTransactions returns stock transactions matching the filter
func (s *StockService) ListTransactions(ctx context.Context, filter TransactionListFilter) ([]TransactionResponse, int64, error) {
	domainFilter := buildFilter(filter.Page, filter.PageSize, "created_at", "desc")
	if filter.Type != "" {
		domainFilter.Filters["type"] = filter.Type
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	var (
		txns []inventory.StockTransaction
		err  error
	)
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
		txns, err = s.txnRepo.FindByProduct(ctx, *filter.ProductID, domainFilter)
	} else {
		txns, err = s.txnRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.txnRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		responses = append(responses, toTransactionResponse(&txns[i]))
	}
	return responses, total, nil
}

// GetTransactionByID returns a single stock transaction
func (s *StockService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*TransactionResponse, error) {
	txn, err := s.txnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTransactionResponse(txn)
	return &resp, nil
}

// publishItemEvents publishes the item's pending events after a successful
// commit, appending a low-stock event when the product threshold is crossed.
// Event publication is observational: failures never affect the mutation.
func (s *StockService) publishItemEvents(ctx context.Context, item *inventory.InventoryItem, product *catalog.Product) {
	if product != nil && product.IsActive() && item.IsBelowMinimum(product.MinStock) {
		item.AddDomainEvent(inventory.NewStockBelowMinimumEvent(item, product.MinStock))
	}
	s.publishItemEventsOnly(ctx, item)
}

func (s *StockService) publishItemEventsOnly(ctx context.Context, item *inventory.InventoryItem) {
	if s.eventPublisher == nil {
		item.ClearDomainEvents()
		return
	}
	events := item.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	item.ClearDomainEvents()
}

func buildFilter(page, pageSize int, orderBy, orderDir string) shared.Filter {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}
	if orderBy != "" {
		filter.OrderBy = orderBy
	}
	if orderDir != "" {
		filter.OrderDir = orderDir
	}
	return filter
}
