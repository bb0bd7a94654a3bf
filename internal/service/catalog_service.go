package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
)

var (
	ErrInvalidDiscountRate = errors.New("discount rate must be between 0 and 100")
	ErrInvalidPrice        = errors.New("price must not be negative")
)

// ProductPatch 部分更新：只有非 nil 的欄位會被覆寫
// DiscountedPrice 不在此列，一律由 Price 與 DiscountRate 重新推導
type ProductPatch struct {
	Name         *string `json:"name"`
	Brand        *string `json:"brand"`
	Price        *int64  `json:"price"`
	DiscountRate *int    `json:"discount_rate"`
	Stock        *int    `json:"stock"`
	CategoryID   *uint   `json:"category_id"`
	ImageURL     *string `json:"image_url"`
	SKU          *string `json:"sku"`
}

type ICatalogService interface {
	CreateCategory(ctx context.Context, name string) (*model.Category, error)
	GetCategories(ctx context.Context) ([]model.Category, error)
	CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error)
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	GetProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, productID uint, patch ProductPatch) (*model.Product, error)
	DeleteProduct(ctx context.Context, productID uint) error
	Restock(ctx context.Context, productID uint, amount int) (int, error)
}

type CatalogService struct {
	categoryRepo db.ICategoryRepository
	productRepo  db.IProductRepository
	reservation  db.IStockReservation
	productCache redis_repo.IProductCacheRepository
	logger       zerolog.Logger
}

func NewCatalogService(
	categoryRepo db.ICategoryRepository,
	productRepo db.IProductRepository,
	reservation db.IStockReservation,
	productCache redis_repo.IProductCacheRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		reservation:  reservation,
		productCache: productCache,
		logger:       logger,
	}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name string) (*model.Category, error) {
	category := &model.Category{Name: name}
	if err := s.categoryRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CatalogService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.GetAllCategories(ctx)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if product.DiscountRate < 0 || product.DiscountRate > 100 {
		return nil, ErrInvalidDiscountRate
	}
	if _, err := s.categoryRepo.GetCategoryByID(ctx, product.CategoryID); err != nil {
		return nil, err
	}

	product.ApplyDiscount()
	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct 先查快取，未命中回 db 並回填
// 快取故障只記 log，不影響讀取
func (s *CatalogService) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	if cached, err := s.productCache.GetProduct(ctx, productID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		s.logger.Warn().Err(err).Uint("product_id", productID).Msg("product cache read failed")
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.productCache.SetProduct(ctx, product); err != nil {
		s.logger.Warn().Err(err).Uint("product_id", productID).Msg("product cache fill failed")
	}
	return product, nil
}

func (s *CatalogService) GetProducts(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.GetAllProducts(ctx)
}

// UpdateProduct 只覆寫 patch 中有提供的欄位
// Price 或 DiscountRate 有變動時重新計算 DiscountedPrice
func (s *CatalogService) UpdateProduct(ctx context.Context, productID uint, patch ProductPatch) (*model.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Brand != nil {
		updates["brand"] = *patch.Brand
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.CategoryID != nil {
		if _, err := s.categoryRepo.GetCategoryByID(ctx, *patch.CategoryID); err != nil {
			return nil, err
		}
		updates["category_id"] = *patch.CategoryID
	}
	if patch.ImageURL != nil {
		updates["image_url"] = *patch.ImageURL
	}
	if patch.SKU != nil {
		updates["sku"] = *patch.SKU
	}

	price := product.Price
	rate := product.DiscountRate
	if patch.Price != nil {
		if *patch.Price < 0 {
			return nil, ErrInvalidPrice
		}
		price = *patch.Price
		updates["price"] = price
	}
	if patch.DiscountRate != nil {
		if *patch.DiscountRate < 0 || *patch.DiscountRate > 100 {
			return nil, ErrInvalidDiscountRate
		}
		rate = *patch.DiscountRate
		updates["discount_rate"] = rate
	}
	if patch.Price != nil || patch.DiscountRate != nil {
		updates["discounted_price"] = model.DiscountedPriceOf(price, rate)
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.productRepo.PatchProductFields(ctx, productID, updates); err != nil {
		return nil, err
	}
	if err := s.productCache.InvalidateProduct(ctx, productID); err != nil {
		s.logger.Warn().Err(err).Uint("product_id", productID).Msg("product cache invalidate failed")
	}
	return s.productRepo.GetProductByID(ctx, productID)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID uint) error {
	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	if err := s.productCache.InvalidateProduct(ctx, productID); err != nil {
		s.logger.Warn().Err(err).Uint("product_id", productID).Msg("product cache invalidate failed")
	}
	return nil
}

// Restock 管理員補貨，走預留引擎的鎖定規則
func (s *CatalogService) Restock(ctx context.Context, productID uint, amount int) (int, error) {
	newStock, err := s.reservation.Restock(ctx, productID, amount)
	if err != nil {
		return 0, err
	}
	if err := s.productCache.InvalidateProduct(ctx, productID); err != nil {
		s.logger.Warn().Err(err).Uint("product_id", productID).Msg("product cache invalidate failed")
	}
	return newStock, nil
}

var _ ICatalogService = (*CatalogService)(nil)
