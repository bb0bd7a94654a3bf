package service

import (
	"context"
	"errors"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/redis_repo"
	"github.com/rs/zerolog"
)

var (
	// ErrUnauthorized 只能操作自己的訂單
	ErrUnauthorized = errors.New("cannot act on another user's order")
)

// PlaceOrderRequest Items 只在購物車為空的直接下單路徑使用
type PlaceOrderRequest struct {
	UserID     uint           `json:"user_id"`
	TotalPrice int64          `json:"total_price"`
	Items      []db.OrderLine `json:"items"`
}

type IOrderService interface {
	PlaceOrder(ctx context.Context, callerID uint, req PlaceOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, callerID, orderID uint) (*model.Order, error)
	GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status string) error
}

type OrderService struct {
	reservation  db.IStockReservation
	orderRepo    db.IOrderRepository
	productCache redis_repo.IProductCacheRepository
	events       producer.IOrderEventProducer
	logger       zerolog.Logger
}

func NewOrderService(
	reservation db.IStockReservation,
	orderRepo db.IOrderRepository,
	productCache redis_repo.IProductCacheRepository,
	events producer.IOrderEventProducer,
	logger zerolog.Logger,
) *OrderService {
	return &OrderService{
		reservation:  reservation,
		orderRepo:    orderRepo,
		productCache: productCache,
		events:       events,
		logger:       logger,
	}
}

// PlaceOrder 結算訂單
// 購物車非空走購物車路徑，為空走直接下單路徑，兩者都在單一交易內完成
// 訂單事件發佈是 best effort：交易已提交，發佈失敗只記 log
func (s *OrderService) PlaceOrder(ctx context.Context, callerID uint, req PlaceOrderRequest) (*model.Order, error) {
	if callerID != req.UserID {
		return nil, ErrUnauthorized
	}

	order, err := s.reservation.FinalizeOrder(ctx, req.UserID, req.TotalPrice, req.Items)
	if err != nil {
		return nil, err
	}

	for _, oi := range order.OrderItems {
		if cerr := s.productCache.InvalidateProduct(ctx, oi.ProductID); cerr != nil {
			s.logger.Warn().Err(cerr).Uint("product_id", oi.ProductID).Msg("product cache invalidate failed")
		}
	}

	if s.events != nil {
		if perr := s.events.ProduceOrderCreatedEvent(ctx, order); perr != nil {
			s.logger.Error().Err(perr).Uint("order_id", order.OrderID).Msg("failed to publish order created event")
		}
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, callerID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != callerID {
		return nil, ErrUnauthorized
	}
	return order, nil
}

func (s *OrderService) GetOrdersByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	return s.orderRepo.GetOrdersByUserID(ctx, userID)
}

func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, status string) error {
	return s.orderRepo.UpdateOrderStatus(ctx, orderID, status)
}

var _ IOrderService = (*OrderService)(nil)
