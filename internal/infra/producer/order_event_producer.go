package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/RoyceAzure/lab/storefront/internal/domain/model"
	"github.com/RoyceAzure/lab/storefront/internal/infra/producer/balancer"
	"github.com/segmentio/kafka-go"
)

const defaultRetryAttempts = 3

// OrderCreatedEvent 訂單建立事件，發佈到 kafka 供下游（通知、出貨）消費
type OrderCreatedEvent struct {
	OrderID    uint               `json:"order_id"`
	UserID     uint               `json:"user_id"`
	TotalPrice int64              `json:"total_price"`
	Items      []OrderCreatedItem `json:"items"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type OrderCreatedItem struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

type IOrderEventProducer interface {
	ProduceOrderCreatedEvent(ctx context.Context, order *model.Order) error
	Close() error
}

type OrderEventProducer struct {
	writer *kafka.Writer
}

func NewOrderEventProducer(brokers []string, topic string, numPartitions int) *OrderEventProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     balancer.NewUserBalancer(numPartitions),
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		MaxAttempts:  defaultRetryAttempts,
		Compression:  kafka.Snappy,
	}
	return &OrderEventProducer{writer: writer}
}

func (p *OrderEventProducer) ProduceOrderCreatedEvent(ctx context.Context, order *model.Order) error {
	event := OrderCreatedEvent{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		TotalPrice: order.TotalPrice,
		OccurredAt: time.Now(),
	}
	for _, oi := range order.OrderItems {
		event.Items = append(event.Items, OrderCreatedItem{
			ProductID: oi.ProductID,
			Quantity:  oi.Quantity,
			Price:     oi.Price,
		})
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", order.UserID)),
		Value: value,
		Headers: []kafka.Header{
			{
				Key:   "event_type",
				Value: []byte("order_created"),
			},
		},
	}

	return p.writer.WriteMessages(ctx, msg)
}

func (p *OrderEventProducer) Close() error {
	return p.writer.Close()
}

var _ IOrderEventProducer = (*OrderEventProducer)(nil)
