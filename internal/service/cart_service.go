package service

import (
	"context"
	"errors"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
)

const (
	reserveRetryAttempts = 3
	reserveRetryBackoff  = 50 * time.Millisecond
)

type Cart struct {
	Items      []model.CartItem `json:"items"`
	TotalItems int              `json:"total_items"`
}

type ICartService interface {
	AddToCart(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, error)
	GetCart(ctx context.Context, userID uint) (*Cart, error)
	GetTotalQuantity(ctx context.Context, userID uint) (int, error)
}

type CartService struct {
	reservation  db.IStockReservation
	cartRepo     db.ICartRepository
	productCache redis_repo.IProductCacheRepository
	logger       zerolog.Logger
}

func NewCartService(
	reservation db.IStockReservation,
	cartRepo db.ICartRepository,
	productCache redis_repo.IProductCacheRepository,
	logger zerolog.Logger,
) *CartService {
	return &CartService{
		reservation:  reservation,
		cartRepo:     cartRepo,
		productCache: productCache,
		logger:       logger,
	}
}

// AddToCart 預留庫存並寫入購物車
// 只有 ErrTransientLockConflict 會自動重試（指數退避），其餘錯誤直接回傳
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, error) {
	backoff := reserveRetryBackoff
	for attempt := 0; ; attempt++ {
		item, err := s.reservation.Reserve(ctx, productID, quantity, userID)
		if err == nil {
			// 庫存變動，商品快取作廢
			if cerr := s.productCache.InvalidateProduct(ctx, productID); cerr != nil {
				s.logger.Warn().Err(cerr).Uint("product_id", productID).Msg("product cache invalidate failed")
			}
			return item, nil
		}

		if !errors.Is(err, db.ErrTransientLockConflict) || attempt+1 >= reserveRetryAttempts {
			return nil, err
		}

		s.logger.Debug().Uint("product_id", productID).Int("attempt", attempt+1).
			Msg("reserve hit lock conflict, retrying")
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}
}

func (s *CartService) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	items, err := s.cartRepo.GetCartItemsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return &Cart{Items: items, TotalItems: total}, nil
}

func (s *CartService) GetTotalQuantity(ctx context.Context, userID uint) (int, error) {
	return s.cartRepo.GetTotalQuantity(ctx, userID)
}

var _ ICartService = (*CartService)(nil)
