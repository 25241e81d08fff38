package consumers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	domainerrors "mercurio/contexts/commerce-operations/delivery-service/domain/errors"
	"mercurio/contexts/commerce-operations/delivery-service/ports"
	"mercurio/internal/shared/events"
	"mercurio/internal/shared/ledger"
)

// OrderCreatedConsumer creates a shipment for every order_created fact.
// The shipment row and the ledger row commit together; geocoding happens
// afterwards in a detached worker so a slow or failing lookup never blocks
// or poisons the queue.
type OrderCreatedConsumer struct {
	Repo         ports.ShipmentRepository
	Ledger       ports.EventLedger
	Geocoding    ports.GeocodeDispatcher
	Clock        ports.Clock
	IDs          ports.IDGenerator
	LeadTimeDays int
	Logger       *slog.Logger
}

func (c OrderCreatedConsumer) Handle(ctx context.Context, body []byte) error {
	logger := c.resolveLogger()

	payload, err := events.DecodeOrderCreated(body)
	if err != nil {
		logger.Error("order_created payload rejected",
			"event", "delivery_order_created_rejected",
			"module", "commerce-operations/delivery-service",
			"layer", "application",
			"error", err.Error(),
		)
		return nil
	}
	if payload.EventID == "" {
		logger.Error("order_created missing event_id",
			"event", "delivery_order_created_rejected",
			"module", "commerce-operations/delivery-service",
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
			"event", "delivery_order_created_replayed",
			"module", "commerce-operations/delivery-service",
			"layer", "application",
			"event_id", payload.EventID,
			"order_id", payload.OrderID,
		)
		return nil
	}

	now := c.now()
	shipment := entities.Shipment{
		ShipmentID:        c.IDs.NewID(),
		OrderID:           payload.OrderID,
		CustomerID:        payload.CustomerID,
		Address:           payload.DeliveryAddress,
		City:              payload.DeliveryCity,
		Country:           payload.DeliveryCountry,
		OrderedAt:         payload.OrderedAt,
		EstimatedDelivery: entities.EstimateDelivery(payload.OrderedAt, c.LeadTimeDays),
		GeocodingStatus:   entities.GeocodingPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	record := ledger.NewProcessedEvent(
		payload.EventID,
		payload.EventType,
		payload.Microservice,
		string(body),
		now,
	)

	if err := c.Repo.CreateShipment(ctx, shipment, record); err != nil {
		if errors.Is(err, ledger.ErrAlreadyProcessed) {
			logger.Info("concurrent duplicate absorbed by ledger",
				"event", "delivery_order_created_duplicate_race",
				"module", "commerce-operations/delivery-service",
				"layer", "application",
				"event_id", payload.EventID,
			)
			return nil
		}
		if errors.Is(err, domainerrors.ErrDuplicateShipment) {
			// Same order under a fresh event_id; the shipment already
			// exists, so redelivering this message can never succeed.
			logger.Info("shipment already exists for order, skipping",
				"event", "delivery_order_created_duplicate_order",
				"module", "commerce-operations/delivery-service",
				"layer", "application",
				"event_id", payload.EventID,
				"order_id", payload.OrderID,
			)
			return nil
		}
		logger.Error("shipment creation failed",
			"event", "shipment_create_failed",
			"module", "commerce-operations/delivery-service",
			"layer", "application",
			"event_id", payload.EventID,
			"order_id", payload.OrderID,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("shipment created",
		"event", "shipment_created",
		"module", "commerce-operations/delivery-service",
		"layer", "application",
		"event_id", payload.EventID,
		"order_id", payload.OrderID,
		"shipment_id", shipment.ShipmentID,
	)

	if c.Geocoding != nil {
		c.Geocoding.Dispatch(shipment)
	}
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
