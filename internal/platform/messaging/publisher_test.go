package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"mercurio/internal/shared/events"
	"mercurio/internal/shared/money"
)

type fakeTopic struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeTopic) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func newTestPublisher(topic *fakeTopic) *Publisher {
	p := NewPublisher(topic, "arn:aws:sns:us-east-1:123456789012:order-events", "order-service", nil)
	p.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	p.newEventID = func() string { return "generated-id" }
	return p
}

func publishedEnvelope(t *testing.T, topic *fakeTopic) map[string]any {
	t.Helper()
	if len(topic.inputs) != 1 {
		t.Fatalf("expected one publish call, got %d", len(topic.inputs))
	}
	var envelope map[string]any
	if err := json.Unmarshal([]byte(aws.ToString(topic.inputs[0].Message)), &envelope); err != nil {
		t.Fatalf("published body is not JSON: %v", err)
	}
	return envelope
}

func TestPublishEnrichesEnvelope(t *testing.T) {
	topic := &fakeTopic{}
	publisher := newTestPublisher(topic)

	publisher.Publish(context.Background(), "order_created", map[string]any{"order_id": "o-1"})

	envelope := publishedEnvelope(t, topic)
	if envelope["event_type"] != "order_created" {
		t.Fatalf("expected event_type order_created, got %v", envelope["event_type"])
	}
	if envelope["microservice"] != "order-service" {
		t.Fatalf("expected microservice order-service, got %v", envelope["microservice"])
	}
	if envelope["event_id"] != "generated-id" {
		t.Fatalf("expected generated event_id, got %v", envelope["event_id"])
	}
	if envelope["timestamp"] != "2026-03-14T09:30:00Z" {
		t.Fatalf("unexpected timestamp %v", envelope["timestamp"])
	}
	if envelope["order_id"] != "o-1" {
		t.Fatalf("payload fields must survive enrichment, got %v", envelope["order_id"])
	}

	attrs := topic.inputs[0].MessageAttributes
	if aws.ToString(attrs["event_type"].StringValue) != "order_created" {
		t.Fatalf("expected event_type attribute, got %v", attrs)
	}
	if aws.ToString(attrs["microservice"].StringValue) != "order-service" {
		t.Fatalf("expected microservice attribute, got %v", attrs)
	}
}

func TestPublishKeepsCallerEventID(t *testing.T) {
	topic := &fakeTopic{}
	publisher := newTestPublisher(topic)

	publisher.Publish(context.Background(), "order_created", map[string]any{
		"event_id": "caller-id",
		"order_id": "o-1",
	})

	envelope := publishedEnvelope(t, topic)
	if envelope["event_id"] != "caller-id" {
		t.Fatalf("caller-supplied event_id must be kept, got %v", envelope["event_id"])
	}
}

func TestPublishDecimalSurvivesRoundTrip(t *testing.T) {
	topic := &fakeTopic{}
	publisher := newTestPublisher(topic)

	type orderFact struct {
		OrderID string       `json:"order_id"`
		Total   money.Amount `json:"total_amount"`
	}
	publisher.Publish(context.Background(), "order_created", orderFact{
		OrderID: "o-1",
		Total:   money.MustParse("1250.50"),
	})

	body := []byte(aws.ToString(topic.inputs[0].Message))
	decoded, err := events.DecodeOrderCreated(body)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := decoded.TotalAmount.String(); got != "1250.50" {
		t.Fatalf("expected 1250.50 after round trip, got %s", got)
	}
}

func TestPublishSwallowsSendError(t *testing.T) {
	topic := &fakeTopic{err: errors.New("sns unavailable")}
	publisher := newTestPublisher(topic)

	// Must return normally; the caller's commit already happened.
	publisher.Publish(context.Background(), "order_created", map[string]any{"order_id": "o-1"})

	if len(topic.inputs) != 1 {
		t.Fatalf("expected one attempted publish, got %d", len(topic.inputs))
	}
}

func TestPublishSwallowsUnserializablePayload(t *testing.T) {
	topic := &fakeTopic{}
	publisher := newTestPublisher(topic)

	publisher.Publish(context.Background(), "order_created", map[string]any{"bad": make(chan int)})

	if len(topic.inputs) != 0 {
		t.Fatalf("unserializable payload must not be sent, got %d calls", len(topic.inputs))
	}
}

func TestPublishDisabledWithoutTopicARN(t *testing.T) {
	topic := &fakeTopic{}
	publisher := NewPublisher(topic, "", "order-service", nil)

	publisher.Publish(context.Background(), "order_created", map[string]any{"order_id": "o-1"})

	if len(topic.inputs) != 0 {
		t.Fatalf("disabled publisher must not send, got %d calls", len(topic.inputs))
	}
}
