// Package notifier consumes order events and surfaces them to operators as
// structured log lines. The seller-facing feed stays a polling projection
// over the order store; this consumer is an operational tail of the same
// events.
package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/pasalhub/pasal/internal/kafka"
	"github.com/pasalhub/pasal/internal/orders"
	"github.com/pasalhub/pasal/internal/redisx"
)

type Service struct {
	// Redis backs event-id dedup; without it every delivery is handled.
	Redis       *redis.Client
	ServiceName string
}

// HandleOrderPlaced is installed as the consumer handler. Events are deduped
// by event id so redelivered messages log once.
func (s *Service) HandleOrderPlaced(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}
	if env.EventType != orders.EventOrderPlaced {
		return nil
	}

	if s.Redis != nil {
		dkey := fmt.Sprintf(redisx.KeyDedup, s.ServiceName, env.EventID)
		if exists, _ := redisx.Exists(ctx, s.Redis, dkey); exists {
			return nil
		}
		_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()
	}

	p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
	if err != nil {
		return err
	}
	slog.Info("order placed",
		"order_id", p.OrderID,
		"customer", p.Customer,
		"items", len(p.Items),
		"total", p.Total,
	)
	return nil
}
