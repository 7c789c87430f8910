package event

import (
	"context"
	"encoding/json"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ihirwe/stockroom/internal/storage/mq"
	"github.com/ihirwe/stockroom/pkg/correlationid"
	"github.com/ihirwe/stockroom/pkg/ptr"
)

const TopicStockChanged = "inventory.stock-changed"

// StockChangedEvent announces a change to a product, keyed by the product id
// so changes to one item stay ordered.
type StockChangedEvent struct {
	ItemID string `json:"item_id"`
	Action string `json:"action"`
	Name   string `json:"name"`
	Stock  int    `json:"stock"`
}

type Publisher interface {
	PublishStockChanged(ctx context.Context, ev StockChangedEvent) error
}

var _ Publisher = (*KafkaPublisher)(nil)

type KafkaPublisher struct {
	producer mq.Producer
}

func NewKafkaPublisher(producer mq.Producer) *KafkaPublisher {
	return &KafkaPublisher{producer: producer}
}

func (p *KafkaPublisher) PublishStockChanged(ctx context.Context, ev StockChangedEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal stock changed event: %w", err)
	}

	if err := p.producer.Produce(ctx, mq.ProduceMsg{
		Topic:        TopicStockChanged,
		Headers:      buildHeaders(ctx),
		Payload:      payload,
		PartitionKey: ptr.New(ev.ItemID),
	}); err != nil {
		return fmt.Errorf("produce stock changed event: %w", err)
	}

	return nil
}

// buildHeaders creates headers with trace context and correlation ID injected
// from context.
func buildHeaders(ctx context.Context) map[string]string {
	headers := map[string]string{}

	propagator := otel.GetTextMapPropagator()
	propagator.Inject(ctx, propagation.MapCarrier(headers))

	if correlationID, ok := correlationid.FromContext(ctx); ok {
		headers[correlationid.Header] = correlationID
	}

	return headers
}
