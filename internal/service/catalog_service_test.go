package service

import (
	"context"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type catalogFixture struct {
	svc          *CatalogService
	categoryRepo *fakeCategoryRepo
	productRepo  *fakeProductRepo
	reservation  *fakeReservation
	cache        *fakeProductCache
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	t.Helper()
	categoryRepo := newFakeCategoryRepo()
	productRepo := newFakeProductRepo()
	reservation := &fakeReservation{}
	cache := newFakeProductCache()

	return &catalogFixture{
		svc:          NewCatalogService(categoryRepo, productRepo, reservation, cache, zerolog.Nop()),
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		reservation:  reservation,
		cache:        cache,
	}
}

func (f *catalogFixture) seedProduct(t *testing.T) *model.Product {
	t.Helper()
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, "electronics")
	require.NoError(t, err)

	product, err := f.svc.CreateProduct(ctx, &model.Product{
		Name:       "Keyboard",
		Brand:      "Acme",
		Price:      5000,
		Stock:      10,
		CategoryID: category.CategoryID,
	})
	require.NoError(t, err)
	return product
}

func TestCreateProduct(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)

	require.NotZero(t, product.ProductID)
	// 無折扣時 discounted_price 等於 price
	require.Equal(t, int64(5000), product.DiscountedPrice)
}

func TestCreateProductValidation(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, "electronics")
	require.NoError(t, err)

	_, err = f.svc.CreateProduct(ctx, &model.Product{Name: "x", Price: -1, CategoryID: category.CategoryID})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = f.svc.CreateProduct(ctx, &model.Product{Name: "x", Price: 100, DiscountRate: 101, CategoryID: category.CategoryID})
	require.ErrorIs(t, err, ErrInvalidDiscountRate)

	_, err = f.svc.CreateProduct(ctx, &model.Product{Name: "x", Price: 100, CategoryID: 999})
	require.ErrorIs(t, err, db.ErrCategoryNotFound)
}

func TestCreateProductAppliesDiscount(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()

	category, err := f.svc.CreateCategory(ctx, "electronics")
	require.NoError(t, err)

	product, err := f.svc.CreateProduct(ctx, &model.Product{
		Name:         "Mouse",
		Price:        999,
		DiscountRate: 10,
		CategoryID:   category.CategoryID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(899), product.DiscountedPrice)
}

func TestGetProductReadThroughCache(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	ctx := context.Background()

	// 第一次未命中，回填快取
	got, err := f.svc.GetProduct(ctx, product.ProductID)
	require.NoError(t, err)
	require.Equal(t, product.ProductID, got.ProductID)
	require.Equal(t, 1, f.cache.setCalls)

	// 第二次命中，不再回填
	got, err = f.svc.GetProduct(ctx, product.ProductID)
	require.NoError(t, err)
	require.Equal(t, product.ProductID, got.ProductID)
	require.Equal(t, 1, f.cache.setCalls)
}

func TestGetProductCacheFailureFallsBack(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	f.cache.getErr = context.DeadlineExceeded

	got, err := f.svc.GetProduct(context.Background(), product.ProductID)
	require.NoError(t, err)
	require.Equal(t, product.ProductID, got.ProductID)
}

func TestUpdateProductPartialPatch(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	ctx := context.Background()

	name := "Mechanical Keyboard"
	updated, err := f.svc.UpdateProduct(ctx, product.ProductID, ProductPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)

	// 沒動到的欄位保持原值
	require.Equal(t, int64(5000), updated.Price)
	require.Equal(t, 10, updated.Stock)
}

func TestUpdateProductRecomputesDiscountedPrice(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	ctx := context.Background()

	rate := 20
	updated, err := f.svc.UpdateProduct(ctx, product.ProductID, ProductPatch{DiscountRate: &rate})
	require.NoError(t, err)
	require.Equal(t, int64(4000), updated.DiscountedPrice)

	price := int64(10000)
	updated, err = f.svc.UpdateProduct(ctx, product.ProductID, ProductPatch{Price: &price})
	require.NoError(t, err)
	// 保留先前的折扣率重算
	require.Equal(t, int64(8000), updated.DiscountedPrice)
}

func TestUpdateProductValidation(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	ctx := context.Background()

	badPrice := int64(-1)
	_, err := f.svc.UpdateProduct(ctx, product.ProductID, ProductPatch{Price: &badPrice})
	require.ErrorIs(t, err, ErrInvalidPrice)

	badRate := 101
	_, err = f.svc.UpdateProduct(ctx, product.ProductID, ProductPatch{DiscountRate: &badRate})
	require.ErrorIs(t, err, ErrInvalidDiscountRate)

	badCategory := uint(999)
	_, err = f.svc.UpdateProduct(ctx, product.ProductID, ProductPatch{CategoryID: &badCategory})
	require.ErrorIs(t, err, db.ErrCategoryNotFound)

	_, err = f.svc.UpdateProduct(ctx, 999, ProductPatch{})
	require.ErrorIs(t, err, db.ErrProductNotFound)
}

func TestUpdateProductInvalidatesCache(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	ctx := context.Background()

	name := "renamed"
	_, err := f.svc.UpdateProduct(ctx, product.ProductID, ProductPatch{Name: &name})
	require.NoError(t, err)
	require.Contains(t, f.cache.invalidated, product.ProductID)
}

func TestDeleteProduct(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	ctx := context.Background()

	require.NoError(t, f.svc.DeleteProduct(ctx, product.ProductID))
	require.Contains(t, f.cache.invalidated, product.ProductID)

	_, err := f.svc.GetProduct(ctx, product.ProductID)
	require.ErrorIs(t, err, db.ErrProductNotFound)
}

func TestRestock(t *testing.T) {
	f := newCatalogFixture(t)
	product := f.seedProduct(t)
	f.reservation.stock = 10

	newStock, err := f.svc.Restock(context.Background(), product.ProductID, 5)
	require.NoError(t, err)
	require.Equal(t, 15, newStock)
	require.Contains(t, f.cache.invalidated, product.ProductID)
}
