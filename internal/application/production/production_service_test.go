package production

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/catalog"
	"github.com/prodtrack/backend/internal/domain/production"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memOrderRepo is an in-memory OrderRepository that enforces the order_no
// unique index the way the database would.
type memOrderRepo struct {
	orders map[uuid.UUID]*production.ProductionOrder

	// saveFailures makes the next N Save calls for new orders fail with
	// ErrAlreadyExists, simulating a lost race on the unique index.
	saveFailures int
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: make(map[uuid.UUID]*production.ProductionOrder)}
}

func (r *memOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*production.ProductionOrder, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

func (r *memOrderRepo) FindByOrderNo(_ context.Context, orderNo string) (*production.ProductionOrder, error) {
	for _, order := range r.orders {
		if order.OrderNo == orderNo {
			copied := *order
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memOrderRepo) FindAll(_ context.Context, _ shared.Filter) ([]production.ProductionOrder, error) {
	result := make([]production.ProductionOrder, 0, len(r.orders))
	for _, order := range r.orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *memOrderRepo) FindByStatus(_ context.Context, status production.OrderStatus, _ shared.Filter) ([]production.ProductionOrder, error) {
	result := make([]production.ProductionOrder, 0)
	for _, order := range r.orders {
		if order.Status == status {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *memOrderRepo) MaxOrderNoForDate(_ context.Context, date time.Time) (string, error) {
	prefix := production.OrderNoPrefixForDate(date)
	max := ""
	for _, order := range r.orders {
		if !strings.HasPrefix(order.OrderNo, prefix) {
			continue
		}
		if production.ParseOrderNoSequence(order.OrderNo) > production.ParseOrderNoSequence(max) {
			max = order.OrderNo
		}
	}
	return max, nil
}

func (r *memOrderRepo) Save(_ context.Context, order *production.ProductionOrder) error {
	if _, exists := r.orders[order.ID]; !exists {
		if r.saveFailures > 0 {
			r.saveFailures--
			return fmt.Errorf("insert production_orders: %w", shared.ErrAlreadyExists)
		}
		for _, existing := range r.orders {
			if existing.OrderNo == order.OrderNo {
				return fmt.Errorf("insert production_orders: %w", shared.ErrAlreadyExists)
			}
		}
	}
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *memOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.orders[id]; !ok {
		return shared.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memOrderRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.orders)), nil
}

// memProcessRepo serves processes out of the order repo so updates through
// either path observe the same rows.
type memProcessRepo struct {
	orders *memOrderRepo
}

func (r *memProcessRepo) FindByID(_ context.Context, id uuid.UUID) (*production.ProductionProcess, error) {
	for _, order := range r.orders.orders {
		for i := range order.Processes {
			if order.Processes[i].ID == id {
				copied := order.Processes[i]
				return &copied, nil
			}
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProcessRepo) FindByOrder(_ context.Context, orderID uuid.UUID) ([]production.ProductionProcess, error) {
	for _, order := range r.orders.orders {
		if order.ID == orderID {
			return append([]production.ProductionProcess(nil), order.Processes...), nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProcessRepo) Save(_ context.Context, process *production.ProductionProcess) error {
	for _, order := range r.orders.orders {
		for i := range order.Processes {
			if order.Processes[i].ID == process.ID {
				order.Processes[i] = *process
				return nil
			}
		}
	}
	return shared.ErrNotFound
}

func (r *memProcessRepo) SaveBatch(ctx context.Context, processes []*production.ProductionProcess) error {
	for _, p := range processes {
		if err := r.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// memSectionRepo is an in-memory SectionRepository
type memSectionRepo struct {
	sections map[uuid.UUID]*production.ProductionSection
}

func newMemSectionRepo() *memSectionRepo {
	return &memSectionRepo{sections: make(map[uuid.UUID]*production.ProductionSection)}
}

func (r *memSectionRepo) FindByID(_ context.Context, id uuid.UUID) (*production.ProductionSection, error) {
	section, ok := r.sections[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *section
	return &copied, nil
}

func (r *memSectionRepo) FindByName(_ context.Context, name string) (*production.ProductionSection, error) {
	for _, section := range r.sections {
		if section.Name == name {
			copied := *section
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSectionRepo) FindActive(_ context.Context) ([]production.ProductionSection, error) {
	result := make([]production.ProductionSection, 0)
	for _, section := range r.sections {
		if section.IsActive {
			result = append(result, *section)
		}
	}
	// selection sort by sequence, deterministic for the snapshot assertions
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if result[j].Sequence < result[i].Sequence {
				result[i], result[j] = result[j], result[i]
			}
		}
	}
	return result, nil
}

func (r *memSectionRepo) FindAll(_ context.Context, _ shared.Filter) ([]production.ProductionSection, error) {
	result := make([]production.ProductionSection, 0, len(r.sections))
	for _, section := range r.sections {
		result = append(result, *section)
	}
	return result, nil
}

func (r *memSectionRepo) Save(_ context.Context, section *production.ProductionSection) error {
	copied := *section
	r.sections[section.ID] = &copied
	return nil
}

func (r *memSectionRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.sections, id)
	return nil
}

func (r *memSectionRepo) FindByCode(_ context.Context, code string) (*production.ProductionSection, error) {
	for _, section := range r.sections {
		if section.Code == code {
			copied := *section
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSectionRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, section := range r.sections {
		if section.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *memSectionRepo) ExistsByName(_ context.Context, name string) (bool, error) {
	for _, section := range r.sections {
		if section.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// fakeProductRepo implements only the lookup the service needs
type fakeProductRepo struct {
	catalog.ProductRepository
	products map[uuid.UUID]*catalog.Product
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

type productionFixture struct {
	service     *ProductionService
	orderRepo   *memOrderRepo
	sectionRepo *memSectionRepo
	productID   uuid.UUID
}

func newProductionFixture(t *testing.T) *productionFixture {
	t.Helper()

	product, err := catalog.NewProduct("WIDGET-01", "Widget", "pcs")
	require.NoError(t, err)

	orderRepo := newMemOrderRepo()
	processRepo := &memProcessRepo{orders: orderRepo}
	sectionRepo := newMemSectionRepo()
	productRepo := &fakeProductRepo{products: map[uuid.UUID]*catalog.Product{product.ID: product}}

	codes := map[string]string{"Cutting": "CUT", "Assembly": "ASM", "Packing": "PCK"}
	for i, name := range []string{"Cutting", "Assembly", "Packing"} {
		section, err := production.NewProductionSection(codes[name], name, i+1)
		require.NoError(t, err)
		require.NoError(t, sectionRepo.Save(context.Background(), section))
	}

	scope := NewNoOpTransactionScope(orderRepo, processRepo, sectionRepo)
	service := NewProductionService(scope, orderRepo, processRepo, sectionRepo, productRepo)

	return &productionFixture{
		service:     service,
		orderRepo:   orderRepo,
		sectionRepo: sectionRepo,
		productID:   product.ID,
	}
}

func TestCreateOrder_AllocatesDailySequence(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	first, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 100})
	require.NoError(t, err)

	prefix := production.OrderNoPrefixForDate(time.Now())
	assert.Equal(t, prefix+"0001", first.OrderNo)
	assert.Equal(t, production.OrderStatusPending, first.Status)

	second, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 50})
	require.NoError(t, err)
	assert.Equal(t, prefix+"0002", second.OrderNo)
}

func TestCreateOrder_SequenceContinuesPastFourDigits(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()
	prefix := production.OrderNoPrefixForDate(time.Now())

	// "…-9999" sorts above "…-10000" lexicographically; allocation must
	// still pick the numeric maximum.
	for _, seq := range []string{"9999", "10000"} {
		order, err := production.NewProductionOrder(prefix+seq, f.productID, 10, nil)
		require.NoError(t, err)
		require.NoError(t, f.orderRepo.Save(ctx, order))
	}

	next, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 10})
	require.NoError(t, err)
	assert.Equal(t, prefix+"10001", next.OrderNo)
}

func TestCreateOrder_SnapshotsActiveSections(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	// deactivate one section, then create; the order must only carry the
	// sections that were active at creation time
	sections, err := f.sectionRepo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	packing := sections[2]
	packing.Deactivate()
	require.NoError(t, f.sectionRepo.Save(ctx, &packing))

	resp, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 10})
	require.NoError(t, err)

	require.Len(t, resp.Processes, 2)
	assert.Equal(t, "Cutting", resp.Processes[0].SectionName)
	assert.Equal(t, "Assembly", resp.Processes[1].SectionName)
	for _, p := range resp.Processes {
		assert.Equal(t, production.ProcessStatusPending, p.Status)
	}

	// reactivating the section later must not change the existing order
	packing.Activate()
	require.NoError(t, f.sectionRepo.Save(ctx, &packing))

	reloaded, err := f.service.GetOrder(ctx, resp.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Processes, 2)
}

func TestCreateOrder_RetriesOnDuplicateOrderNo(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	f.orderRepo.saveFailures = 2

	resp, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.OrderNo)
	assert.Zero(t, f.orderRepo.saveFailures)
}

func TestCreateOrder_GivesUpAfterRepeatedDuplicates(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	f.orderRepo.saveFailures = 5

	_, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 10})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	assert.Empty(t, f.orderRepo.orders)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	f := newProductionFixture(t)

	_, err := f.service.CreateOrder(context.Background(), CreateOrderRequest{
		ProductID:      uuid.New(),
		TargetQuantity: 10,
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestUpdateOrderStatus_StartAndComplete(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 100})
	require.NoError(t, err)

	started, err := f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)
	assert.Equal(t, production.OrderStatusInProgress, started.Status)
	require.NotNil(t, started.StartDate)

	reported := int64(87)
	completed, err := f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{
		Status:            "COMPLETED",
		CompletedQuantity: &reported,
	})
	require.NoError(t, err)
	assert.Equal(t, production.OrderStatusCompleted, completed.Status)
	assert.Equal(t, reported, completed.CompletedQuantity)
	require.NotNil(t, completed.CompletedDate)

	// completing the order force-completes every open process
	for _, p := range completed.Processes {
		assert.Equal(t, production.ProcessStatusCompleted, p.Status)
		assert.NotNil(t, p.EndTime)
	}
}

func TestUpdateOrderStatus_RejectsInvalidTransition(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 10})
	require.NoError(t, err)

	// PENDING cannot go straight to ON_HOLD
	_, err = f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{Status: "ON_HOLD"})
	require.Error(t, err)

	// terminal states accept nothing
	_, err = f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	_, err = f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{Status: "IN_PROGRESS"})
	require.Error(t, err)

	_, err = f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{Status: "SHIPPED"})
	require.Error(t, err)
}

func TestUpdateProcess_OutOfOrderCompletion(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 20})
	require.NoError(t, err)
	require.Len(t, created.Processes, 3)

	// the last section finishes before the first has started
	qty := int64(20)
	last := created.Processes[2]
	resp, err := f.service.UpdateProcess(ctx, last.ID, UpdateProcessRequest{
		Status:   "COMPLETED",
		Quantity: &qty,
	})
	require.NoError(t, err)
	assert.Equal(t, production.ProcessStatusCompleted, resp.Status)
	assert.Equal(t, qty, resp.Quantity)
	require.NotNil(t, resp.EndTime)

	reloaded, err := f.service.GetOrder(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, production.ProcessStatusCompleted, reloaded.Processes[2].Status)
	assert.Equal(t, production.ProcessStatusPending, reloaded.Processes[0].Status)
}

func TestCompletionCascade_PreservesFinishedProcesses(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 50})
	require.NoError(t, err)

	_, err = f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{Status: "IN_PROGRESS"})
	require.NoError(t, err)

	qty := int64(42)
	_, err = f.service.UpdateProcess(ctx, created.Processes[0].ID, UpdateProcessRequest{
		Status:   "COMPLETED",
		Quantity: &qty,
	})
	require.NoError(t, err)

	completed, err := f.service.UpdateOrderStatus(ctx, created.ID, UpdateOrderStatusRequest{Status: "COMPLETED"})
	require.NoError(t, err)

	// the already-finished process keeps its reported quantity, the rest are
	// filled with the target
	assert.Equal(t, qty, completed.Processes[0].Quantity)
	assert.Equal(t, int64(50), completed.Processes[1].Quantity)
	assert.Equal(t, int64(50), completed.Processes[2].Quantity)
}

func TestDeleteOrder(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	created, err := f.service.CreateOrder(ctx, CreateOrderRequest{ProductID: f.productID, TargetQuantity: 10})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteOrder(ctx, created.ID))

	_, err = f.service.GetOrder(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	err = f.service.DeleteOrder(ctx, created.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestCreateSection_DuplicateCodeOrName(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	_, err := f.service.CreateSection(ctx, CreateSectionRequest{Code: "CUT", Name: "Laser Cutting", Sequence: 9})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = f.service.CreateSection(ctx, CreateSectionRequest{Code: "CUT2", Name: "Cutting", Sequence: 9})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	resp, err := f.service.CreateSection(ctx, CreateSectionRequest{Code: "INS", Name: "Inspection", Sequence: 4})
	require.NoError(t, err)
	assert.Equal(t, "INS", resp.Code)
	assert.Equal(t, "Inspection", resp.Name)
	assert.True(t, resp.IsActive)
}
