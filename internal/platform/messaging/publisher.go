package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"

	"mercurio/internal/shared/events"
)

// TopicAPI is the slice of the SNS client the publisher depends on.
type TopicAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Publisher sends domain facts to a fan-out topic. It is fire-and-forget:
// the caller's transaction has already committed, so no marshal or transport
// failure may surface — everything is logged and swallowed. Fan-out to
// subscriber queues is the topic's property; each Publish call is one
// independent send.
type Publisher struct {
	client   TopicAPI
	topicARN string
	origin   string
	logger   *slog.Logger

	now        func() time.Time
	newEventID func() string
}

func NewPublisher(client TopicAPI, topicARN, origin string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client:     client,
		topicARN:   topicARN,
		origin:     origin,
		logger:     logger,
		now:        time.Now,
		newEventID: uuid.NewString,
	}
}

// Publish enriches payload with event metadata and sends it to the topic with
// event_type/microservice message attributes so subscriptions can filter
// without parsing bodies. An empty topic ARN means publishing is disabled.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) {
	if p.topicARN == "" {
		p.logger.Warn("topic arn not configured, event not published",
			"event", "publisher_disabled",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"event_type", eventType,
		)
		return
	}

	envelope, err := p.enrich(eventType, payload)
	if err != nil {
		p.logger.Error("event serialization failed",
			"event", "publisher_marshal_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}

	body, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("event serialization failed",
			"event", "publisher_marshal_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"event_type", eventType,
			"error", err.Error(),
		)
		return
	}

	eventID, _ := envelope[events.KeyEventID].(string)
	naturalKey, _ := envelope["order_id"].(string)

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(p.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			events.KeyEventType: {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventType),
			},
			events.KeyMicroservice: {
				DataType:    aws.String("String"),
				StringValue: aws.String(p.origin),
			},
		},
	})
	if err != nil {
		p.logger.Error("event publish failed",
			"event", "publisher_send_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"event_type", eventType,
			"event_id", eventID,
			"order_id", naturalKey,
			"error", err.Error(),
		)
		return
	}

	p.logger.Info("event published",
		"event", "publisher_event_published",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"event_type", eventType,
		"event_id", eventID,
		"order_id", naturalKey,
	)
}

// enrich flattens payload into a map and adds metadata. The payload's own
// JSON marshalling runs first, so decimal amounts land in their canonical
// string form before metadata is merged in. A caller-supplied event_id is
// kept so one logical fact keeps its identity across caller retries.
func (p *Publisher) enrich(eventType string, payload any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	envelope := make(map[string]any)
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, err
	}

	envelope[events.KeyEventType] = eventType
	envelope[events.KeyMicroservice] = p.origin
	envelope[events.KeyTimestamp] = events.FormatTimestamp(p.now())
	if id, ok := envelope[events.KeyEventID].(string); !ok || id == "" {
		envelope[events.KeyEventID] = p.newEventID()
	}
	return envelope, nil
}
