package events

import (
	"context"
	"time"

	"storefront-server/internal/clients/kafka"
	"storefront-server/internal/observability"
	"storefront-server/internal/store"

	"github.com/google/uuid"
)

// Event types
const (
	TypeStoreCreated       = "store.created"
	TypeOrderRecorded      = "order.recorded"
	TypeOrderStatusChanged = "order.status_changed"
	TypeVoucherClaimed     = "voucher.claimed"
	TypeCampaignSubmitted  = "campaign.submitted"
)

// EventProducer is satisfied by *kafka.Producer.
type EventProducer interface {
	PublishEvent(ctx context.Context, event kafka.EventMessage) error
}

// Publisher emits storefront domain events. Publishing is best effort: a
// failure is logged and never fails the state change that caused it.
type Publisher struct {
	producer EventProducer
	logger   *observability.Logger
}

// NewPublisher creates a publisher; a nil producer disables publishing.
func NewPublisher(producer EventProducer, logger *observability.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		logger:   logger,
	}
}

func (p *Publisher) publish(ctx context.Context, eventType, key, sessionID string, data map[string]interface{}) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "event_type", Value: eventType},
		observability.Field{Key: "event_key", Value: key},
	)
	if p == nil || p.producer == nil {
		if p != nil {
			p.logger.Debug(ctx, "event publishing disabled")
		}
		return
	}

	event := kafka.EventMessage{
		ID:        uuid.New().String(),
		Type:      eventType,
		Key:       key,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.producer.PublishEvent(ctx, event); err != nil {
		p.logger.Error(ctx, "failed to publish event", err)
	}
}

// StoreCreated publishes a store.created event keyed by referral code
func (p *Publisher) StoreCreated(ctx context.Context, sessionID string, st store.Storefront) {
	p.publish(ctx, TypeStoreCreated, st.ReferralCode, sessionID, map[string]interface{}{
		"referral_code": st.ReferralCode,
		"name":          st.Name,
	})
}

// OrderRecorded publishes an order.recorded event keyed by referral code
func (p *Publisher) OrderRecorded(ctx context.Context, order store.Order, attributed bool) {
	p.publish(ctx, TypeOrderRecorded, order.ReferralCode, "", map[string]interface{}{
		"order_id":      order.ID,
		"referral_code": order.ReferralCode,
		"product_id":    order.ProductID,
		"points":        order.Points,
		"price":         order.Price,
		"attributed":    attributed,
	})
}

// OrderStatusChanged publishes an order.status_changed event
func (p *Publisher) OrderStatusChanged(ctx context.Context, order store.Order) {
	p.publish(ctx, TypeOrderStatusChanged, order.ReferralCode, "", map[string]interface{}{
		"order_id":      order.ID,
		"referral_code": order.ReferralCode,
		"status":        order.Status,
	})
}

// VoucherClaimed publishes a voucher.claimed event keyed by session
func (p *Publisher) VoucherClaimed(ctx context.Context, sessionID, voucher string) {
	p.publish(ctx, TypeVoucherClaimed, sessionID, sessionID, map[string]interface{}{
		"voucher": voucher,
	})
}

// CampaignSubmitted publishes a campaign.submitted event keyed by session
func (p *Publisher) CampaignSubmitted(ctx context.Context, sessionID, campaignID string) {
	p.publish(ctx, TypeCampaignSubmitted, sessionID, sessionID, map[string]interface{}{
		"campaign_id": campaignID,
	})
}
