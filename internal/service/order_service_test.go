package service

import (
	"context"
	"errors"
	"testing"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/repository/db"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestOrderService(reservation *fakeReservation, orderRepo *fakeOrderRepo, events *fakeEventProducer) (*OrderService, *fakeProductCache) {
	cache := newFakeProductCache()
	return NewOrderService(reservation, orderRepo, cache, events, zerolog.Nop()), cache
}

func sampleOrder() *model.Order {
	return &model.Order{
		OrderID:    7,
		UserID:     1,
		TotalPrice: 9000,
		Status:     model.OrderStatusPaid,
		OrderItems: []model.OrderItem{
			{OrderID: 7, ProductID: 10, Quantity: 2, Price: 3000},
			{OrderID: 7, ProductID: 20, Quantity: 1, Price: 3000},
		},
	}
}

func TestPlaceOrder(t *testing.T) {
	reservation := &fakeReservation{finalizeOrder: sampleOrder()}
	events := &fakeEventProducer{}
	svc, cache := newTestOrderService(reservation, newFakeOrderRepo(), events)

	order, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderRequest{
		UserID:     1,
		TotalPrice: 9000,
	})
	require.NoError(t, err)
	require.Equal(t, uint(7), order.OrderID)
	require.Equal(t, int64(9000), reservation.lastDeclared)

	// 每個訂單商品的快取都要失效
	require.ElementsMatch(t, []uint{10, 20}, cache.invalidated)

	// 訂單事件已發佈
	require.Len(t, events.published, 1)
	require.Equal(t, uint(7), events.published[0].OrderID)
}

func TestPlaceOrderForAnotherUser(t *testing.T) {
	reservation := &fakeReservation{finalizeOrder: sampleOrder()}
	svc, _ := newTestOrderService(reservation, newFakeOrderRepo(), &fakeEventProducer{})

	_, err := svc.PlaceOrder(context.Background(), 2, PlaceOrderRequest{UserID: 1})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Zero(t, reservation.finalizeCalls)
}

func TestPlaceOrderFinalizeFails(t *testing.T) {
	reservation := &fakeReservation{finalizeErr: db.ErrInsufficientStock}
	events := &fakeEventProducer{}
	svc, cache := newTestOrderService(reservation, newFakeOrderRepo(), events)

	_, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderRequest{UserID: 1})
	require.ErrorIs(t, err, db.ErrInsufficientStock)
	require.Empty(t, events.published)
	require.Empty(t, cache.invalidated)
}

func TestPlaceOrderEventFailureDoesNotFailOrder(t *testing.T) {
	reservation := &fakeReservation{finalizeOrder: sampleOrder()}
	events := &fakeEventProducer{err: errors.New("broker down")}
	svc, _ := newTestOrderService(reservation, newFakeOrderRepo(), events)

	order, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderRequest{UserID: 1, TotalPrice: 9000})
	require.NoError(t, err)
	require.NotNil(t, order)
}

func TestPlaceOrderWithoutProducer(t *testing.T) {
	reservation := &fakeReservation{finalizeOrder: sampleOrder()}
	cache := newFakeProductCache()
	svc := NewOrderService(reservation, newFakeOrderRepo(), cache, nil, zerolog.Nop())

	order, err := svc.PlaceOrder(context.Background(), 1, PlaceOrderRequest{UserID: 1, TotalPrice: 9000})
	require.NoError(t, err)
	require.NotNil(t, order)
}

func TestGetOrderOwnership(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.orders[7] = sampleOrder()
	svc, _ := newTestOrderService(&fakeReservation{}, orderRepo, &fakeEventProducer{})

	order, err := svc.GetOrder(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Equal(t, uint(7), order.OrderID)

	// 別人的訂單看不到
	_, err = svc.GetOrder(context.Background(), 2, 7)
	require.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.GetOrder(context.Background(), 1, 999)
	require.ErrorIs(t, err, db.ErrOrderNotFound)
}

func TestUpdateOrderStatus(t *testing.T) {
	orderRepo := newFakeOrderRepo()
	orderRepo.orders[7] = sampleOrder()
	svc, _ := newTestOrderService(&fakeReservation{}, orderRepo, &fakeEventProducer{})

	require.NoError(t, svc.UpdateOrderStatus(context.Background(), 7, model.OrderStatusShipped))
	require.Equal(t, model.OrderStatusShipped, orderRepo.orders[7].Status)
}
