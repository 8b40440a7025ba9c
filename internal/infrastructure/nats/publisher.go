package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/nitintomar713/sacmtb-surya/internal/domain/entities"
	"github.com/nitintomar713/sacmtb-surya/internal/infrastructure/logger"
)

type NatsPublisher struct {
	nc     *nats.Conn
	logger *logger.Logger
}

// OrderEvent is the wire form of every order lifecycle event. Event is the
// subject suffix: created, paid, shipping, completed, cancelled.
type OrderEvent struct {
	Event         string  `json:"event"`
	OrderID       string  `json:"order_id"`
	UserID        string  `json:"user_id"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	TotalPrice    float64 `json:"total_price"`
	IsPaid        bool    `json:"is_paid"`
	OccurredAt    string  `json:"occurred_at"`
}

func NewNatsPublisher(url string, log *logger.Logger) (*NatsPublisher, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var nc *nats.Conn
	var err error

	for i := 0; i < 3; i++ {
		nc, err = nats.Connect(url,
			nats.Name("SAC MTB Backend"),
			nats.MaxReconnects(5),
			nats.ReconnectWait(2*time.Second),
			nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
				log.Warn("NATS disconnected", "error", err)
			}),
			nats.ReconnectHandler(func(nc *nats.Conn) {
				log.Info("NATS reconnected", "url", nc.ConnectedUrl())
			}),
		)

		if err == nil {
			log.Info("Connected to NATS", "url", url)
			return &NatsPublisher{nc: nc, logger: log}, nil
		}

		log.Warn("Failed to connect to NATS", "attempt", i+1, "error", err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("failed to connect to NATS: %w", err)
		case <-time.After(2 * time.Second):
			continue
		}
	}

	return nil, fmt.Errorf("failed to connect to NATS after retries: %w", err)
}

func (p *NatsPublisher) PublishOrderEvent(ctx context.Context, event string, order *entities.Order) error {
	payload := OrderEvent{
		Event:         event,
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		Status:        string(order.Status),
		PaymentMethod: string(order.PaymentMethod),
		TotalPrice:    order.TotalPrice,
		IsPaid:        order.IsPaid,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := "order." + event

	for i := 0; i < 3; i++ {
		select {
		case <-ctx.Done():
			p.logger.Warn("Context cancelled while publishing to NATS", "subject", subject)
			return ctx.Err()
		default:
			err := p.nc.Publish(subject, data)
			if err != nil {
				p.logger.Warn("Failed to publish to NATS", "subject", subject, "attempt", i+1, "error", err)
				time.Sleep(1 * time.Second)
				continue
			}

			if err := p.nc.FlushTimeout(2 * time.Second); err != nil {
				p.logger.Warn("Failed to flush NATS connection", "error", err)
				continue
			}

			p.logger.Info("Published order event", "subject", subject, "order_id", order.OrderID)
			return nil
		}
	}

	p.logger.Error("Failed to publish event to NATS after retries", "subject", subject, "order_id", order.OrderID)
	return fmt.Errorf("failed to publish event after retries")
}

func (p *NatsPublisher) Close() {
	if p.nc != nil && p.nc.IsConnected() {
		p.nc.Close()
		p.logger.Info("NATS connection closed")
	}
}
