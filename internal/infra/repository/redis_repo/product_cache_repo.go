package redis_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/redis/go-redis/v9"
)

// IProductCacheRepository 商品讀取快取介面
// 快取未命中不是錯誤，回傳 (nil, nil)
type IProductCacheRepository interface {
	GetProduct(ctx context.Context, productID uint) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	InvalidateProduct(ctx context.Context, productID uint) error
}

const defaultProductTTL = 5 * time.Minute

// ProductCacheRepo 商品讀取快取
// db 永遠是真相來源，快取只加速目錄讀取，所有異動後都要失效
type ProductCacheRepo struct {
	productCache *redis.Client
	ttl          time.Duration
}

func NewProductCacheRepo(productCache *redis.Client) *ProductCacheRepo {
	return &ProductCacheRepo{productCache: productCache, ttl: defaultProductTTL}
}

func generateProductKey(productID uint) string {
	return fmt.Sprintf("product:%d", productID)
}

func (s *ProductCacheRepo) GetProduct(ctx context.Context, productID uint) (*model.Product, error) {
	raw, err := s.productCache.Get(ctx, generateProductKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *ProductCacheRepo) SetProduct(ctx context.Context, product *model.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return s.productCache.Set(ctx, generateProductKey(product.ProductID), raw, s.ttl).Err()
}

func (s *ProductCacheRepo) InvalidateProduct(ctx context.Context, productID uint) error {
	return s.productCache.Del(ctx, generateProductKey(productID)).Err()
}

var _ IProductCacheRepository = (*ProductCacheRepo)(nil)
