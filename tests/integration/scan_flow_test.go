package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scanapp "github.com/prodtrack/backend/internal/application/scan"
	"github.com/prodtrack/backend/internal/domain/scan"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/prodtrack/backend/internal/infrastructure/persistence"
)

func newScanService(tdb *TestDB) *scanapp.ScanService {
	return scanapp.NewScanService(
		persistence.NewGormScanTransactionScope(tdb.DB),
		persistence.NewGormScanLogRepository(tdb.DB),
		newStockService(tdb),
		persistence.NewGormProductRepository(tdb.DB),
		persistence.NewGormWarehouseRepository(tdb.DB),
	)
}

func TestRecordScan_LogOnlyWhenNeverStocked(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	svc := newScanService(tdb)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()
	userID := uuid.New()
	tdb.CreateTestProduct(productID)
	tdb.CreateTestWarehouse(warehouseID)

	// RECEIVE for a pair with no inventory row records the scan but must
	// not create stock out of thin air.
	resp, err := svc.RecordScan(ctx, scanapp.RecordScanRequest{
		ProductID:   productID,
		ActionType:  string(scan.ActionReceive),
		Quantity:    10,
		WarehouseID: &warehouseID,
		UserID:      userID,
	})
	require.NoError(t, err)
	assert.False(t, resp.StockMutated)

	var itemCount int64
	require.NoError(t, tdb.DB.Table("inventory_items").
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		Count(&itemCount).Error)
	assert.Equal(t, int64(0), itemCount)

	// The scan log itself is persisted.
	fetched, err := svc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, scan.ActionReceive, fetched.ActionType)
}

func TestRecordScan_MutatesExistingRow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	stockSvc := newStockService(tdb)
	svc := newScanService(tdb)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()
	userID := uuid.New()
	tdb.CreateTestProduct(productID)
	tdb.CreateTestWarehouse(warehouseID)

	_, err := stockSvc.AdjustStock(ctx, newInboundAdjust(productID, warehouseID, 20))
	require.NoError(t, err)

	logsBefore := countRows(t, tdb, "inventory_logs")

	resp, err := svc.RecordScan(ctx, scanapp.RecordScanRequest{
		ProductID:   productID,
		ActionType:  string(scan.ActionReceive),
		Quantity:    5,
		WarehouseID: &warehouseID,
		UserID:      userID,
	})
	require.NoError(t, err)
	assert.True(t, resp.StockMutated)

	item, err := stockSvc.GetByProductAndWarehouse(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), item.Quantity)

	// ISSUE decreases, RETURN increases.
	resp, err = svc.RecordScan(ctx, scanapp.RecordScanRequest{
		ProductID:   productID,
		ActionType:  string(scan.ActionIssue),
		Quantity:    8,
		WarehouseID: &warehouseID,
		UserID:      userID,
	})
	require.NoError(t, err)
	assert.True(t, resp.StockMutated)

	resp, err = svc.RecordScan(ctx, scanapp.RecordScanRequest{
		ProductID:   productID,
		ActionType:  string(scan.ActionReturn),
		Quantity:    2,
		WarehouseID: &warehouseID,
		UserID:      userID,
	})
	require.NoError(t, err)
	assert.True(t, resp.StockMutated)

	item, err = stockSvc.GetByProductAndWarehouse(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(19), item.Quantity)

	// Each mutating scan writes exactly one inventory log entry.
	assert.Equal(t, logsBefore+3, countRows(t, tdb, "inventory_logs"))
}

func TestRecordScan_NonMutatingActions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	stockSvc := newStockService(tdb)
	svc := newScanService(tdb)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()
	userID := uuid.New()
	tdb.CreateTestProduct(productID)
	tdb.CreateTestWarehouse(warehouseID)

	_, err := stockSvc.AdjustStock(ctx, newInboundAdjust(productID, warehouseID, 15))
	require.NoError(t, err)

	for _, action := range []scan.ActionType{scan.ActionMove, scan.ActionInspect, scan.ActionComplete} {
		resp, err := svc.RecordScan(ctx, scanapp.RecordScanRequest{
			ProductID:   productID,
			ActionType:  string(action),
			Quantity:    3,
			WarehouseID: &warehouseID,
			UserID:      userID,
		})
		require.NoError(t, err)
		assert.False(t, resp.StockMutated, "%s must not move stock", action)
	}

	item, err := stockSvc.GetByProductAndWarehouse(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), item.Quantity)
}

func TestRecordScan_InsufficientStockRejectsScan(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewSharedTestDB(t)
	stockSvc := newStockService(tdb)
	svc := newScanService(tdb)
	ctx := context.Background()

	productID := uuid.New()
	warehouseID := uuid.New()
	tdb.CreateTestProduct(productID)
	tdb.CreateTestWarehouse(warehouseID)

	_, err := stockSvc.AdjustStock(ctx, newInboundAdjust(productID, warehouseID, 4))
	require.NoError(t, err)

	scansBefore := countRows(t, tdb, "scan_logs")

	_, err = svc.RecordScan(ctx, scanapp.RecordScanRequest{
		ProductID:   productID,
		ActionType:  string(scan.ActionIssue),
		Quantity:    5,
		WarehouseID: &warehouseID,
		UserID:      uuid.New(),
	})
	require.ErrorIs(t, err, shared.ErrInsufficientStock)

	// Scan log and mutation share one transaction; neither survives.
	assert.Equal(t, scansBefore, countRows(t, tdb, "scan_logs"))

	item, err := stockSvc.GetByProductAndWarehouse(ctx, productID, warehouseID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), item.Quantity)
}
