package messaging

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"mercurio/internal/shared/events"
)

// Handler processes one inbound event body. A nil return acknowledges the
// message; an error leaves it in the queue for the broker's redelivery and
// dead-letter policy. The consumer performs no retry loop of its own.
type Handler func(ctx context.Context, body []byte) error

// QueueAPI is the slice of the SQS client the consumer depends on.
type QueueAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

type ConsumerConfig struct {
	QueueURL     string
	MaxMessages  int32
	WaitTime     time.Duration
	ErrorBackoff time.Duration
}

// Consumer long-polls one queue and routes each message to the handler
// registered for its event_type. A message is deleted if and only if its
// handler returned nil, or it can never succeed (malformed body, missing or
// unregistered event type).
type Consumer struct {
	client  QueueAPI
	cfg     ConsumerConfig
	logger  *slog.Logger
	mu      sync.RWMutex
	routes  map[string]Handler
	running atomic.Bool
	done    chan struct{}
}

func NewConsumer(client QueueAPI, cfg ConsumerConfig, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxMessages <= 0 {
		cfg.MaxMessages = 10
	}
	if cfg.WaitTime <= 0 {
		cfg.WaitTime = 20 * time.Second
	}
	if cfg.ErrorBackoff <= 0 {
		cfg.ErrorBackoff = 5 * time.Second
	}
	return &Consumer{
		client: client,
		cfg:    cfg,
		logger: logger,
		routes: make(map[string]Handler),
		done:   make(chan struct{}),
	}
}

// RegisterHandler stores the handler for an event type. Registering the same
// type again replaces the previous handler.
func (c *Consumer) RegisterHandler(eventType string, handler Handler) {
	c.mu.Lock()
	c.routes[eventType] = handler
	c.mu.Unlock()

	c.logger.Info("event handler registered",
		"event", "consumer_handler_registered",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"event_type", eventType,
	)
}

// Start runs the poll loop until Stop is called or ctx is cancelled. With no
// queue URL configured it logs and returns immediately so a deployment
// without an inbound queue starts cleanly.
func (c *Consumer) Start(ctx context.Context) {
	if c.cfg.QueueURL == "" {
		c.logger.Warn("queue url not configured, consumer disabled",
			"event", "consumer_disabled",
			"module", "internal/platform/messaging",
			"layer", "platform",
		)
		close(c.done)
		return
	}

	c.running.Store(true)
	defer close(c.done)

	c.logger.Info("consumer starting",
		"event", "consumer_starting",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"queue_url", c.cfg.QueueURL,
	)

	for c.running.Load() {
		select {
		case <-ctx.Done():
			c.running.Store(false)
			return
		default:
		}

		out, err := c.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:              aws.String(c.cfg.QueueURL),
			MaxNumberOfMessages:   c.cfg.MaxMessages,
			WaitTimeSeconds:       int32(c.cfg.WaitTime / time.Second),
			MessageAttributeNames: []string{"All"},
		})
		if err != nil {
			if ctx.Err() != nil {
				c.running.Store(false)
				return
			}
			c.logger.Error("queue receive failed",
				"event", "consumer_receive_failed",
				"module", "internal/platform/messaging",
				"layer", "platform",
				"error", err.Error(),
			)
			c.sleep(ctx, c.cfg.ErrorBackoff)
			continue
		}

		// Messages in one batch are handled sequentially; one handler's
		// failure must not stop the rest of the batch.
		for _, message := range out.Messages {
			c.processMessage(ctx, message)
		}
	}
}

// Stop flips the running flag and waits for the in-flight receive/process
// cycle to drain, bounded by ctx. It never interrupts a running handler.
func (c *Consumer) Stop(ctx context.Context) {
	c.running.Store(false)
	select {
	case <-c.done:
	case <-ctx.Done():
		c.logger.Warn("consumer stop timed out waiting for drain",
			"event", "consumer_stop_timeout",
			"module", "internal/platform/messaging",
			"layer", "platform",
		)
	}
}

func (c *Consumer) processMessage(ctx context.Context, message sqstypes.Message) {
	messageID := aws.ToString(message.MessageId)
	body := []byte(aws.ToString(message.Body))

	head, err := events.DecodeHead(body)
	if err != nil {
		// A message that cannot be dispatched can never succeed; leaving it
		// would block the queue behind redelivery of permanent garbage.
		logEvent := "consumer_malformed_message"
		if errors.Is(err, events.ErrMissingEventType) {
			logEvent = "consumer_missing_event_type"
		}
		c.logger.Warn("undeliverable message, deleting",
			"event", logEvent,
			"module", "internal/platform/messaging",
			"layer", "platform",
			"message_id", messageID,
			"error", err.Error(),
		)
		c.deleteMessage(ctx, message)
		return
	}

	c.mu.RLock()
	handler, ok := c.routes[head.EventType]
	c.mu.RUnlock()
	if !ok {
		c.logger.Warn("no handler for event type, deleting",
			"event", "consumer_unroutable_message",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"message_id", messageID,
			"event_type", head.EventType,
		)
		c.deleteMessage(ctx, message)
		return
	}

	if err := handler(ctx, body); err != nil {
		// Left in the queue; visibility timeout and the dead-letter policy
		// govern retries.
		c.logger.Error("handler failed, message left for redelivery",
			"event", "consumer_handler_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"message_id", messageID,
			"event_id", head.EventID,
			"event_type", head.EventType,
			"error", err.Error(),
		)
		return
	}

	c.logger.Info("event processed",
		"event", "consumer_event_processed",
		"module", "internal/platform/messaging",
		"layer", "platform",
		"message_id", messageID,
		"event_id", head.EventID,
		"event_type", head.EventType,
	)
	c.deleteMessage(ctx, message)
}

func (c *Consumer) deleteMessage(ctx context.Context, message sqstypes.Message) {
	_, err := c.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.cfg.QueueURL),
		ReceiptHandle: message.ReceiptHandle,
	})
	if err != nil {
		c.logger.Error("queue delete failed",
			"event", "consumer_delete_failed",
			"module", "internal/platform/messaging",
			"layer", "platform",
			"message_id", aws.ToString(message.MessageId),
			"error", err.Error(),
		)
	}
}

func (c *Consumer) sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
