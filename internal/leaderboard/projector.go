package leaderboard

import (
	"context"

	"storefront-server/internal/events"
	"storefront-server/internal/workers"
)

// Syncer rescores one store
type Syncer interface {
	Sync(ctx context.Context, code string) error
}

// Projector keeps the sorted set in step with store.created and
// order.recorded events. Redelivery just rewrites the same score.
type Projector struct {
	syncer Syncer
}

func NewProjector(syncer Syncer) *Projector {
	return &Projector{syncer: syncer}
}

func (p *Projector) Name() string {
	return "leaderboard"
}

func (p *Projector) Process(ctx context.Context, event workers.EventMessage) error {
	switch event.Type {
	case events.TypeStoreCreated:
	case events.TypeOrderRecorded:
		if attributed, ok := event.Data["attributed"].(bool); ok && !attributed {
			return nil
		}
	default:
		return nil
	}

	code := event.Key
	if c, ok := event.Data["referral_code"].(string); ok && c != "" {
		code = c
	}
	if code == "" {
		return nil
	}
	return p.syncer.Sync(ctx, code)
}
