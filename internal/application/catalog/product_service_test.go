package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prodtrack/backend/internal/domain/catalog"
	"github.com/prodtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memProductRepo is an in-memory ProductRepository
type memProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *memProductRepo) FindBySKU(_ context.Context, sku string) (*catalog.Product, error) {
	for _, product := range r.products {
		if product.SKU == sku {
			copied := *product
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindByBarcode(_ context.Context, barcode string) (*catalog.Product, error) {
	for _, product := range r.products {
		if product.Barcode == barcode {
			copied := *product
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.products))
	for _, product := range r.products {
		result = append(result, *product)
	}
	return result, nil
}

func (r *memProductRepo) FindByStatus(_ context.Context, status catalog.ProductStatus, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0)
	for _, product := range r.products {
		if product.Status == status {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *memProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			result = append(result, *product)
		}
	}
	return result, nil
}

func (r *memProductRepo) Save(_ context.Context, product *catalog.Product) error {
	copied := *product
	r.products[product.ID] = &copied
	return nil
}

func (r *memProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *memProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *memProductRepo) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	_, err := r.FindBySKU(context.Background(), sku)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memProductRepo) ExistsByBarcode(_ context.Context, barcode string) (bool, error) {
	_, err := r.FindByBarcode(context.Background(), barcode)
	if err == nil {
		return true, nil
	}
	return false, nil
}

// memCategoryRepo is an in-memory CategoryRepository
type memCategoryRepo struct {
	categories map[uuid.UUID]*catalog.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: make(map[uuid.UUID]*catalog.Category)}
}

func (r *memCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *category
	return &copied, nil
}

func (r *memCategoryRepo) FindByName(_ context.Context, name string) (*catalog.Category, error) {
	for _, category := range r.categories {
		if category.Name == name {
			copied := *category
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Category, error) {
	result := make([]catalog.Category, 0, len(r.categories))
	for _, category := range r.categories {
		result = append(result, *category)
	}
	return result, nil
}

func (r *memCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	copied := *category
	r.categories[category.ID] = &copied
	return nil
}

func (r *memCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func newCatalogServices() (*ProductService, *CategoryService, *memProductRepo, *memCategoryRepo) {
	productRepo := newMemProductRepo()
	categoryRepo := newMemCategoryRepo()
	return NewProductService(productRepo, categoryRepo), NewCategoryService(categoryRepo), productRepo, categoryRepo
}

func TestCreateProduct_GeneratesBarcode(t *testing.T) {
	service, _, _, _ := newCatalogServices()

	resp, err := service.Create(context.Background(), CreateProductRequest{
		SKU:  "widget-01",
		Name: "Widget",
	})
	require.NoError(t, err)

	assert.Equal(t, "WIDGET-01", resp.SKU)
	assert.Equal(t, "pcs", resp.Unit)
	assert.Len(t, resp.Barcode, 13)
	assert.NotEqual(t, byte('0'), resp.Barcode[0])
	for _, c := range resp.Barcode {
		assert.True(t, c >= '0' && c <= '9')
	}
}

func TestCreateProduct_KeepsSuppliedBarcode(t *testing.T) {
	service, _, _, _ := newCatalogServices()

	resp, err := service.Create(context.Background(), CreateProductRequest{
		SKU:     "WIDGET-01",
		Name:    "Widget",
		Barcode: "4006381333931",
	})
	require.NoError(t, err)
	assert.Equal(t, "4006381333931", resp.Barcode)
}

func TestCreateProduct_DuplicateSKU(t *testing.T) {
	service, _, _, _ := newCatalogServices()
	ctx := context.Background()

	_, err := service.Create(ctx, CreateProductRequest{SKU: "WIDGET-01", Name: "Widget"})
	require.NoError(t, err)

	_, err = service.Create(ctx, CreateProductRequest{SKU: "WIDGET-01", Name: "Other"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestCreateProduct_DuplicateBarcode(t *testing.T) {
	service, _, _, _ := newCatalogServices()
	ctx := context.Background()

	_, err := service.Create(ctx, CreateProductRequest{SKU: "A-1", Name: "A", Barcode: "4006381333931"})
	require.NoError(t, err)

	_, err = service.Create(ctx, CreateProductRequest{SKU: "B-1", Name: "B", Barcode: "4006381333931"})
	require.Error(t, err)
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	service, _, _, _ := newCatalogServices()

	missing := uuid.New()
	_, err := service.Create(context.Background(), CreateProductRequest{
		SKU:        "WIDGET-01",
		Name:       "Widget",
		CategoryID: &missing,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CATEGORY", domainErr.Code)
}

func TestCreateProduct_WithPricesAndLimits(t *testing.T) {
	service, _, _, _ := newCatalogServices()

	price := decimal.NewFromFloat(19.99)
	cost := decimal.NewFromFloat(7.5)
	maxStock := int64(500)

	resp, err := service.Create(context.Background(), CreateProductRequest{
		SKU:      "WIDGET-01",
		Name:     "Widget",
		Price:    &price,
		Cost:     &cost,
		MinStock: 10,
		MaxStock: &maxStock,
	})
	require.NoError(t, err)

	assert.True(t, resp.Price.Equal(price))
	assert.True(t, resp.Cost.Equal(cost))
	assert.Equal(t, int64(10), resp.MinStock)
	require.NotNil(t, resp.MaxStock)
	assert.Equal(t, maxStock, *resp.MaxStock)
}

func TestUpdateProduct(t *testing.T) {
	service, _, productRepo, _ := newCatalogServices()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateProductRequest{SKU: "WIDGET-01", Name: "Widget"})
	require.NoError(t, err)

	minStock := int64(3)
	updated, err := service.Update(ctx, created.ID, UpdateProductRequest{
		Name:        "Widget Mk2",
		Description: "Improved",
		MinStock:    &minStock,
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk2", updated.Name)
	assert.Equal(t, int64(3), updated.MinStock)

	stored, err := productRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget Mk2", stored.Name)
}

func TestGetByBarcode(t *testing.T) {
	service, _, _, _ := newCatalogServices()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateProductRequest{SKU: "WIDGET-01", Name: "Widget"})
	require.NoError(t, err)

	found, err := service.GetByBarcode(ctx, created.Barcode)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = service.GetByBarcode(ctx, "0000000000000")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeactivateProduct(t *testing.T) {
	service, _, productRepo, _ := newCatalogServices()
	ctx := context.Background()

	created, err := service.Create(ctx, CreateProductRequest{SKU: "WIDGET-01", Name: "Widget"})
	require.NoError(t, err)

	require.NoError(t, service.Deactivate(ctx, created.ID))

	stored, err := productRepo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive())
}

func TestCategoryService_CreateAndDuplicate(t *testing.T) {
	_, categories, _, _ := newCatalogServices()
	ctx := context.Background()

	created, err := categories.Create(ctx, CreateCategoryRequest{Name: "Raw Materials"})
	require.NoError(t, err)
	assert.Equal(t, "Raw Materials", created.Name)

	_, err = categories.Create(ctx, CreateCategoryRequest{Name: "Raw Materials"})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}
