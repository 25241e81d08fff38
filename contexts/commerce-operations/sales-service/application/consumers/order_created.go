package consumers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainerrors "mercurio/contexts/commerce-operations/sales-service/domain/errors"
	"mercurio/contexts/commerce-operations/sales-service/domain/services"
	"mercurio/contexts/commerce-operations/sales-service/ports"
	"mercurio/internal/shared/events"
	"mercurio/internal/shared/ledger"
)

// OrderCreatedConsumer applies order_created facts to seller sales plans.
// The ledger insert shares the plan update's transaction, so a duplicate
// delivery either short-circuits on the pre-check or loses the unique-index
// race and rolls back.
type OrderCreatedConsumer struct {
	Repo   ports.SalesPlanRepository
	Ledger ports.EventLedger
	Clock  ports.Clock
	Logger *slog.Logger
}

func (c OrderCreatedConsumer) Handle(ctx context.Context, body []byte) error {
	logger := c.resolveLogger()

	payload, err := events.DecodeOrderCreated(body)
	if err != nil {
		// Returning the decode error would leave the message for redelivery
		// of input that can never parse; the consumer deletes on nil.
		logger.Error("order_created payload rejected",
			"event", "sales_order_created_rejected",
			"module", "commerce-operations/sales-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil
	}
	if payload.EventID == "" {
		logger.Error("order_created missing event_id",
			"event", "sales_order_created_rejected",
			"module", "commerce-operations/sales-service",
			"layer", "application",
			"order_id", payload.OrderID,
		)
		return nil
	}

	processed, err := c.Ledger.HasBeenProcessed(ctx, payload.EventID)
	if err != nil {
		return err
	}
	if processed {
		logger.Info("event already processed, skipping",
			"event", "sales_order_created_replayed",
			"module", "commerce-operations/sales-service",
			"layer", "application",
			"event_id", payload.EventID,
			"order_id", payload.OrderID,
		)
		return nil
	}

	record := ledger.NewProcessedEvent(
		payload.EventID,
		payload.EventType,
		payload.Microservice,
		string(body),
		c.now(),
	)

	// Orders without a seller update no plan but still get a ledger row so
	// redeliveries stop here.
	if payload.SellerID == "" {
		if err := c.Repo.MarkProcessedOnly(ctx, record); err != nil {
			if errors.Is(err, ledger.ErrAlreadyProcessed) {
				return nil
			}
			return err
		}
		logger.Info("order has no seller, plan untouched",
			"event", "sales_order_created_no_seller",
			"module", "commerce-operations/sales-service",
			"layer", "application",
			"event_id", payload.EventID,
			"order_id", payload.OrderID,
		)
		return nil
	}

	period := services.QuarterPeriod(c.now())
	err = c.Repo.AccumulateSales(ctx, payload.SellerID, period, payload.TotalAmount, record)
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyProcessed) {
			logger.Info("concurrent duplicate absorbed by ledger",
				"event", "sales_order_created_duplicate_race",
				"module", "commerce-operations/sales-service",
				"layer", "application",
				"event_id", payload.EventID,
			)
			return nil
		}
		logger.Error("sales plan accumulation failed",
			"event", "sales_plan_accumulate_failed",
			"module", "commerce-operations/sales-service",
			"layer", "application",
			"event_id", payload.EventID,
			"order_id", payload.OrderID,
			"seller_id", payload.SellerID,
			"sales_period", period,
			"error", err.Error(),
		)
		if errors.Is(err, domainerrors.ErrSalesPlanNotFound) {
			// Plan rows are provisioned out of band; leave the message for
			// redelivery until the period's plan exists.
			return err
		}
		return err
	}

	logger.Info("sales plan accumulated",
		"event", "sales_plan_accumulated",
		"module", "commerce-operations/sales-service",
		"layer", "application",
		"event_id", payload.EventID,
		"order_id", payload.OrderID,
		"seller_id", payload.SellerID,
		"sales_period", period,
		"amount", payload.TotalAmount.String(),
	)
	return nil
}

func (c OrderCreatedConsumer) now() time.Time {
	if c.Clock != nil {
		return c.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (c OrderCreatedConsumer) resolveLogger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
