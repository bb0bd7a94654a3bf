package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/RoyceAzure/lab/storefront/internal/infra/producer"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// OrderEventAuditConsumer 訂閱訂單事件 topic，把每筆 order_created 寫進稽核 log
// 下單主流程不依賴它，落後或停擺都不影響交易
type OrderEventAuditConsumer struct {
	reader *kafka.Reader
	logger zerolog.Logger
}

func NewOrderEventAuditConsumer(brokers []string, topic, groupID string, logger zerolog.Logger) *OrderEventAuditConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
	return &OrderEventAuditConsumer{
		reader: reader,
		logger: logger,
	}
}

// Run 阻塞消費直到 ctx 取消或 reader 關閉
func (c *OrderEventAuditConsumer) Run(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		var event producer.OrderCreatedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Error().Err(err).Int64("offset", msg.Offset).Msg("malformed order event, skipped")
			continue
		}

		c.logger.Info().
			Uint("order_id", event.OrderID).
			Uint("user_id", event.UserID).
			Int64("total_price", event.TotalPrice).
			Int("item_count", len(event.Items)).
			Time("occurred_at", event.OccurredAt).
			Msg("order created")
	}
}

func (c *OrderEventAuditConsumer) Close() error {
	return c.reader.Close()
}
