package events

import (
	"errors"
	"testing"
)

func TestDecodeHead(t *testing.T) {
	body := []byte(`{"event_id":"evt-1","event_type":"order_created","microservice":"order-service","timestamp":"2026-03-14T09:30:00Z","order_id":"ord-1"}`)

	head, err := DecodeHead(body)
	if err != nil {
		t.Fatalf("DecodeHead() = %v, want nil", err)
	}
	if head.EventID != "evt-1" || head.EventType != TypeOrderCreated || head.Microservice != "order-service" {
		t.Errorf("head = %+v", head)
	}
}

func TestDecodeHeadMissingEventType(t *testing.T) {
	_, err := DecodeHead([]byte(`{"event_id":"evt-1","order_id":"ord-1"}`))
	if !errors.Is(err, ErrMissingEventType) {
		t.Fatalf("DecodeHead() = %v, want ErrMissingEventType", err)
	}
}

func TestDecodeHeadMalformedBody(t *testing.T) {
	_, err := DecodeHead([]byte(`{"event_type":`))
	if err == nil {
		t.Fatal("DecodeHead() = nil, want error")
	}
	if errors.Is(err, ErrMissingEventType) {
		t.Fatal("malformed body must not report a missing event type")
	}
}
