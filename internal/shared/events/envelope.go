package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Event metadata travels flattened into the message body alongside the
// business fields, matching the contract the platform's services already
// speak. Head is the slice of that body a consumer needs before dispatch.
type Head struct {
	EventID      string `json:"event_id"`
	EventType    string `json:"event_type"`
	Microservice string `json:"microservice"`
	Timestamp    string `json:"timestamp"`
}

// Metadata keys injected by the publisher at send time.
const (
	KeyEventID      = "event_id"
	KeyEventType    = "event_type"
	KeyMicroservice = "microservice"
	KeyTimestamp    = "timestamp"
)

// Known event types.
const (
	TypeOrderCreated    = "order_created"
	TypeRoutesGenerated = "delivery_routes_generated"
)

var ErrMissingEventType = errors.New("event body missing event_type")

// DecodeHead parses just the metadata fields of a message body. A body
// without an event_type cannot be dispatched; that surfaces as
// ErrMissingEventType so consumers can treat it as permanently
// undeliverable.
func DecodeHead(body []byte) (Head, error) {
	var head Head
	if err := json.Unmarshal(body, &head); err != nil {
		return Head{}, fmt.Errorf("decode event head: %w", err)
	}
	if head.EventType == "" {
		return Head{}, ErrMissingEventType
	}
	return head, nil
}

// TimestampFormat is the wire form of event timestamps (UTC, RFC 3339).
const TimestampFormat = time.RFC3339Nano

// FormatTimestamp renders a publish time in the wire form.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}
