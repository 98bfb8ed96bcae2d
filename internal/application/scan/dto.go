package scan

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/scan"
)

// RecordScanRequest represents a shop-floor scan being submitted
type RecordScanRequest struct {
	ProductID    uuid.UUID  `json:"product_id" binding:"required"`
	ActionType   string     `json:"action_type" binding:"required,scanaction"`
	Quantity     int64      `json:"quantity" binding:"required,gt=0"`
	LocationCode string     `json:"location_code"`
	LocationName string     `json:"location_name"`
	SectionID    *uuid.UUID `json:"section_id"`
	OrderID      *uuid.UUID `json:"order_id"`
	WarehouseID  *uuid.UUID `json:"warehouse_id"`
	Latitude     *float64   `json:"latitude"`
	Longitude    *float64   `json:"longitude"`
	Notes        string     `json:"notes"`
	UserID       uuid.UUID  `json:"-"`
}

// ScanLogResponse represents a scan log in API responses
type ScanLogResponse struct {
	ID           uuid.UUID       `json:"id"`
	ProductID    uuid.UUID       `json:"product_id"`
	ActionType   scan.ActionType `json:"action_type"`
	Quantity     int64           `json:"quantity"`
	LocationCode string          `json:"location_code,omitempty"`
	LocationName string          `json:"location_name,omitempty"`
	SectionID    *uuid.UUID      `json:"section_id,omitempty"`
	OrderID      *uuid.UUID      `json:"order_id,omitempty"`
	WarehouseID  *uuid.UUID      `json:"warehouse_id,omitempty"`
	Latitude     *float64        `json:"latitude,omitempty"`
	Longitude    *float64        `json:"longitude,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	ScannedBy    uuid.UUID       `json:"scanned_by"`
	ScannedAt    time.Time       `json:"scanned_at"`
	// StockMutated reports whether this scan moved warehouse stock
	StockMutated bool `json:"stock_mutated"`
}

// ScanListFilter represents filter options for scan log queries
type ScanListFilter struct {
	ProductID  *uuid.UUID `form:"product_id"`
	ActionType string     `form:"action_type"`
	SectionID  *uuid.UUID `form:"section_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func toScanLogResponse(log *scan.ScanLog, mutated bool) ScanLogResponse {
	return ScanLogResponse{
		ID:           log.ID,
		ProductID:    log.ProductID,
		ActionType:   log.ActionType,
		Quantity:     log.Quantity,
		LocationCode: log.LocationCode,
		LocationName: log.LocationName,
		SectionID:    log.SectionID,
		OrderID:      log.OrderID,
		WarehouseID:  log.WarehouseID,
		Latitude:     log.Latitude,
		Longitude:    log.Longitude,
		Notes:        log.Notes,
		ScannedBy:    log.ScannedBy,
		ScannedAt:    log.CreatedAt,
		StockMutated: mutated,
	}
}
