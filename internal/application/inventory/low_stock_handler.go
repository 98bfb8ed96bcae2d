package inventory

import (
	"context"

	"github.com/prodtrack/backend/internal/domain/inventory"
	"github.com/prodtrack/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// LowStockHandler reacts to StockBelowMinimum events. The default behavior
// is a structured warning; a notifier can be attached for real alerting.
type LowStockHandler struct {
	logger   *zap.Logger
	notifier LowStockNotifier
}

// LowStockNotifier is the interface for delivering low-stock alerts.
// Implementations can support different channels (in-app, email, webhook).
type LowStockNotifier interface {
	Notify(ctx context.Context, event *inventory.StockBelowMinimumEvent) error
}

// NewLowStockHandler creates a handler that logs low-stock conditions
func NewLowStockHandler(logger *zap.Logger) *LowStockHandler {
	return &LowStockHandler{logger: logger}
}

// WithNotifier attaches a notifier for alert delivery
func (h *LowStockHandler) WithNotifier(notifier LowStockNotifier) *LowStockHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *LowStockHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockBelowMinimum}
}

// Handle processes a StockBelowMinimum event
func (h *LowStockHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	lowStock, ok := event.(*inventory.StockBelowMinimumEvent)
	if !ok {
		return nil
	}

	h.logger.Warn("stock below minimum",
		zap.String("product_id", lowStock.ProductID.String()),
		zap.String("warehouse_id", lowStock.WarehouseID.String()),
		zap.Int64("quantity", lowStock.Quantity),
		zap.Int64("min_stock", lowStock.MinStock),
	)

	if h.notifier != nil {
		return h.notifier.Notify(ctx, lowStock)
	}
	return nil
}

var _ shared.EventHandler = (*LowStockHandler)(nil)
