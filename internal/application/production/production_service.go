package production

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/catalog"
	"github.com/prodtrack/backend/internal/domain/production"
	"github.com/prodtrack/backend/internal/domain/shared"
)

// orderNoAttempts bounds the retry loop when two callers race for the same
// daily sequence number.
const orderNoAttempts = 3

// ProductionService handles production order and section operations
type ProductionService struct {
	txnScope       TransactionScope
	orderRepo      production.OrderRepository
	processRepo    production.ProcessRepository
	sectionRepo    production.SectionRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductionService creates a new ProductionService
func NewProductionService(
	txnScope TransactionScope,
	orderRepo production.OrderRepository,
	processRepo production.ProcessRepository,
	sectionRepo production.SectionRepository,
	productRepo catalog.ProductRepository,
) *ProductionService {
	return &ProductionService{
		txnScope:    txnScope,
		orderRepo:   orderRepo,
		processRepo: processRepo,
		sectionRepo: sectionRepo,
		productRepo: productRepo,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *ProductionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateOrder creates a PENDING production order with a freshly allocated
// order number and one process per currently active section. Number
// allocation and the insert run in one transaction; when a concurrent
// creation takes the same number, the unique index rejects the insert and
// the whole allocation is retried in a new transaction.
func (s *ProductionService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}

	var order *production.ProductionOrder

	for attempt := 0; attempt < orderNoAttempts; attempt++ {
		err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
			sections, err := repos.SectionRepo().FindActive(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			maxNo, err := repos.OrderRepo().MaxOrderNoForDate(ctx, now)
			if err != nil {
				return err
			}
			sequence := 1
			if maxNo != "" {
				sequence = production.ParseOrderNoSequence(maxNo) + 1
			}
			orderNo := production.FormatOrderNo(now, sequence)

			order, err = production.NewProductionOrder(orderNo, req.ProductID, req.TargetQuantity, sections)
			if err != nil {
				return err
			}
			order.DueDate = req.DueDate
			order.Notes = req.Notes
			order.CreatedBy = req.UserID

			return repos.OrderRepo().Save(ctx, order)
		})
		if err == nil {
			s.publishOrderEvents(ctx, order)
			resp := toOrderResponse(order)
			return &resp, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
	}

	return nil, shared.NewDomainError("ALREADY_EXISTS", "Could not allocate a unique order number, please retry")
}

// GetOrder returns an order with its processes
func (s *ProductionService) GetOrder(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// GetOrderByOrderNo returns an order by its human-readable number
func (s *ProductionService) GetOrderByOrderNo(ctx context.Context, orderNo string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	resp := toOrderResponse(order)
	return &resp, nil
}

// ListOrders returns orders matching the filter, newest first
func (s *ProductionService) ListOrders(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ProductID != nil {
		domainFilter.Filters["product_id"] = *filter.ProductID
	}

	var (
		orders []production.ProductionOrder
		err    error
	)
	if filter.Status != "" {
		status := production.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
		}
		orders, err = s.orderRepo.FindByStatus(ctx, status, domainFilter)
		domainFilter.Filters["status"] = filter.Status
	} else {
		orders, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, toOrderResponse(&orders[i]))
	}
	return responses, total, nil
}

// UpdateOrder updates an order's details (not its status)
func (s *ProductionService) UpdateOrder(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	var order *production.ProductionOrder

	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.UpdateDetails(req.TargetQuantity, req.DueDate, req.Notes); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	resp := toOrderResponse(order)
	return &resp, nil
}

// UpdateOrderStatus transitions an order through its state machine.
// Completing an order force-completes all of its open processes in the same
// transaction.
func (s *ProductionService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := production.OrderStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown order status")
	}

	var order *production.ProductionOrder

	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(target, req.CompletedQuantity); err != nil {
			return err
		}
		return repos.OrderRepo().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishOrderEvents(ctx, order)

	resp := toOrderResponse(order)
	return &resp, nil
}

// UpdateProcess updates a single process. Processes are deliberately not
// ordered: a later section may finish before an earlier one.
func (s *ProductionService) UpdateProcess(ctx context.Context, processID uuid.UUID, req UpdateProcessRequest) (*ProcessResponse, error) {
	status := production.ProcessStatus(req.Status)
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown process status")
	}

	var process *production.ProductionProcess

	err := s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		process, err = repos.ProcessRepo().FindByID(ctx, processID)
		if err != nil {
			return err
		}
		if err := process.Update(status, req.Quantity, req.Notes); err != nil {
			return err
		}
		return repos.ProcessRepo().Save(ctx, process)
	})
	if err != nil {
		return nil, err
	}

	resp := toProcessResponse(process)
	return &resp, nil
}

// DeleteOrder hard-deletes an order and its processes
func (s *ProductionService) DeleteOrder(ctx context.Context, id uuid.UUID) error {
	return s.txnScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.OrderRepo().FindByID(ctx, id); err != nil {
			return err
		}
		return repos.OrderRepo().Delete(ctx, id)
	})
}

// CreateSection creates a production section
func (s *ProductionService) CreateSection(ctx context.Context, req CreateSectionRequest) (*SectionResponse, error) {
	exists, err := s.sectionRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if !exists {
		exists, err = s.sectionRepo.ExistsByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	section, err := production.NewProductionSection(req.Code, req.Name, req.Sequence)
	if err != nil {
		return nil, err
	}
	section.Description = req.Description

	if err := s.sectionRepo.Save(ctx, section); err != nil {
		return nil, err
	}

	resp := toSectionResponse(section)
	return &resp, nil
}

// UpdateSection updates a production section
func (s *ProductionService) UpdateSection(ctx context.Context, id uuid.UUID, req UpdateSectionRequest) (*SectionResponse, error) {
	section, err := s.sectionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := section.Update(req.Name, req.Description, req.Sequence); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		if *req.IsActive {
			section.Activate()
		} else {
			section.Deactivate()
		}
	}

	if err := s.sectionRepo.Save(ctx, section); err != nil {
		return nil, err
	}

	resp := toSectionResponse(section)
	return &resp, nil
}

// ListSections returns all sections ordered by sequence
func (s *ProductionService) ListSections(ctx context.Context, activeOnly bool) ([]SectionResponse, error) {
	var (
		sections []production.ProductionSection
		err      error
	)
	if activeOnly {
		sections, err = s.sectionRepo.FindActive(ctx)
	} else {
		filter := shared.DefaultFilter()
		filter.OrderBy = "sequence"
		filter.OrderDir = "asc"
		filter.PageSize = 200
		sections, err = s.sectionRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	responses := make([]SectionResponse, 0, len(sections))
	for i := range sections {
		responses = append(responses, toSectionResponse(&sections[i]))
	}
	return responses, nil
}

func (s *ProductionService) publishOrderEvents(ctx context.Context, order *production.ProductionOrder) {
	if order == nil {
		return
	}
	if s.eventPublisher == nil {
		order.ClearDomainEvents()
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
