package service

import (
	"context"
	"time"

	"github.com/packwise/storefront/internal/logging"
	"github.com/packwise/storefront/internal/mykafka"
)

// publishEvent is fire-and-forget: delivery failures are logged, never
// surfaced to the caller.
func publishEvent(ctx context.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
