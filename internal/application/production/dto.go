package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/production"
)

// CreateOrderRequest represents a request to create a production order
type CreateOrderRequest struct {
	ProductID      uuid.UUID  `json:"product_id" binding:"required"`
	TargetQuantity int64      `json:"target_quantity" binding:"required,gt=0"`
	DueDate        *time.Time `json:"due_date"`
	Notes          string     `json:"notes"`
	UserID         *uuid.UUID `json:"-"`
}

// UpdateOrderRequest represents a request to update order details
type UpdateOrderRequest struct {
	TargetQuantity int64      `json:"target_quantity" binding:"required,gt=0"`
	DueDate        *time.Time `json:"due_date"`
	Notes          string     `json:"notes"`
}

// UpdateOrderStatusRequest represents a status transition request
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
	// CompletedQuantity optionally reports the actual output when completing
	CompletedQuantity *int64 `json:"completed_quantity"`
}

// UpdateProcessRequest represents a process update. Nil fields are left
// unchanged.
type UpdateProcessRequest struct {
	Status   string  `json:"status" binding:"required"`
	Quantity *int64  `json:"quantity"`
	Notes    *string `json:"notes"`
}

// CreateSectionRequest represents a request to create a production section
type CreateSectionRequest struct {
	Code        string `json:"code" binding:"required,max=50"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Sequence    int    `json:"sequence" binding:"omitempty,min=0"`
}

// UpdateSectionRequest represents a request to update a production section
type UpdateSectionRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Sequence    int    `json:"sequence" binding:"omitempty,min=0"`
	IsActive    *bool  `json:"is_active"`
}

// ProcessResponse represents a production process in API responses
type ProcessResponse struct {
	ID          uuid.UUID                `json:"id"`
	OrderID     uuid.UUID                `json:"order_id"`
	SectionID   uuid.UUID                `json:"section_id"`
	SectionName string                   `json:"section_name"`
	Sequence    int                      `json:"sequence"`
	Status      production.ProcessStatus `json:"status"`
	Quantity    int64                    `json:"quantity"`
	StartTime   *time.Time               `json:"start_time,omitempty"`
	EndTime     *time.Time               `json:"end_time,omitempty"`
	Notes       string                   `json:"notes,omitempty"`
}

// OrderResponse represents a production order in API responses
type OrderResponse struct {
	ID                uuid.UUID              `json:"id"`
	OrderNo           string                 `json:"order_no"`
	ProductID         uuid.UUID              `json:"product_id"`
	TargetQuantity    int64                  `json:"target_quantity"`
	CompletedQuantity int64                  `json:"completed_quantity"`
	Status            production.OrderStatus `json:"status"`
	StartDate         *time.Time             `json:"start_date,omitempty"`
	CompletedDate     *time.Time             `json:"completed_date,omitempty"`
	DueDate           *time.Time             `json:"due_date,omitempty"`
	Notes             string                 `json:"notes,omitempty"`
	CreatedBy         *uuid.UUID             `json:"created_by,omitempty"`
	Processes         []ProcessResponse      `json:"processes"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// SectionResponse represents a production section in API responses
type SectionResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sequence    int       `json:"sequence"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// OrderListFilter represents filter options for order queries
type OrderListFilter struct {
	Status    string     `form:"status"`
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func toProcessResponse(p *production.ProductionProcess) ProcessResponse {
	return ProcessResponse{
		ID:          p.ID,
		OrderID:     p.OrderID,
		SectionID:   p.SectionID,
		SectionName: p.SectionName,
		Sequence:    p.Sequence,
		Status:      p.Status,
		Quantity:    p.Quantity,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Notes:       p.Notes,
	}
}

func toOrderResponse(o *production.ProductionOrder) OrderResponse {
	processes := make([]ProcessResponse, 0, len(o.Processes))
	for i := range o.Processes {
		processes = append(processes, toProcessResponse(&o.Processes[i]))
	}

	return OrderResponse{
		ID:                o.ID,
		OrderNo:           o.OrderNo,
		ProductID:         o.ProductID,
		TargetQuantity:    o.TargetQuantity,
		CompletedQuantity: o.CompletedQuantity,
		Status:            o.Status,
		StartDate:         o.StartDate,
		CompletedDate:     o.CompletedDate,
		DueDate:           o.DueDate,
		Notes:             o.Notes,
		CreatedBy:         o.CreatedBy,
		Processes:         processes,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

func toSectionResponse(s *production.ProductionSection) SectionResponse {
	return SectionResponse{
		ID:          s.ID,
		Code:        s.Code,
		Name:        s.Name,
		Description: s.Description,
		Sequence:    s.Sequence,
		IsActive:    s.IsActive,
		CreatedAt:   s.CreatedAt,
	}
}
