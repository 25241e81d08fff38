// Package workers holds background tasks the delivery service detaches from
// the request or consumer path.
package workers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	"mercurio/contexts/commerce-operations/delivery-service/ports"
)

const (
	defaultGeocodeTimeout = 30 * time.Second

	// Status writes run on their own context: by the time the failure path
	// executes, the lookup context has usually consumed its whole deadline,
	// and a write through a dead context would leave the shipment pending
	// forever.
	statusWriteTimeout = 5 * time.Second
)

// GeocodeWorker resolves shipment coordinates off the consumer path. Each
// dispatched shipment runs in its own goroutine with a recover boundary;
// every terminal outcome lands as a status on the shipment row.
type GeocodeWorker struct {
	Repo     ports.ShipmentRepository
	Geocoder ports.Geocoder
	Timeout  time.Duration
	Logger   *slog.Logger

	wg sync.WaitGroup
}

func NewGeocodeWorker(repo ports.ShipmentRepository, geocoder ports.Geocoder, logger *slog.Logger) *GeocodeWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &GeocodeWorker{
		Repo:     repo,
		Geocoder: geocoder,
		Timeout:  defaultGeocodeTimeout,
		Logger:   logger,
	}
}

// Dispatch schedules geocoding for a committed shipment and returns
// immediately.
func (w *GeocodeWorker) Dispatch(shipment entities.Shipment) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				w.Logger.Error("geocode task panicked",
					"event", "geocode_task_panic",
					"module", "commerce-operations/delivery-service",
					"layer", "worker",
					"shipment_id", shipment.ShipmentID,
					"panic", r,
				)
				w.markFailed(shipment.ShipmentID)
			}
		}()
		w.run(shipment)
	}()
}

// Wait blocks until every dispatched task finished. Used on shutdown and in
// tests.
func (w *GeocodeWorker) Wait() {
	w.wg.Wait()
}

func (w *GeocodeWorker) run(shipment entities.Shipment) {
	timeout := w.Timeout
	if timeout <= 0 {
		timeout = defaultGeocodeTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	lat, lon, err := w.Geocoder.Geocode(ctx, shipment.Address, shipment.City, shipment.Country)
	if err != nil {
		w.Logger.Warn("full address geocoding failed, trying city fallback",
			"event", "geocode_address_failed",
			"module", "commerce-operations/delivery-service",
			"layer", "worker",
			"shipment_id", shipment.ShipmentID,
			"city", shipment.City,
			"error", err.Error(),
		)
		lat, lon, err = w.Geocoder.Geocode(ctx, "", shipment.City, shipment.Country)
	}
	if err != nil {
		w.Logger.Error("geocoding failed at city level, marking shipment",
			"event", "geocode_failed",
			"module", "commerce-operations/delivery-service",
			"layer", "worker",
			"shipment_id", shipment.ShipmentID,
			"error", err.Error(),
		)
		w.markFailed(shipment.ShipmentID)
		return
	}

	writeCtx, cancelWrite := context.WithTimeout(context.Background(), statusWriteTimeout)
	defer cancelWrite()
	if err := w.Repo.SetCoordinates(writeCtx, shipment.ShipmentID, lat, lon); err != nil {
		w.Logger.Error("failed to store shipment coordinates",
			"event", "geocode_status_update_failed",
			"module", "commerce-operations/delivery-service",
			"layer", "worker",
			"shipment_id", shipment.ShipmentID,
			"error", err.Error(),
		)
		return
	}
	w.Logger.Info("shipment geocoded",
		"event", "shipment_geocoded",
		"module", "commerce-operations/delivery-service",
		"layer", "worker",
		"shipment_id", shipment.ShipmentID,
		"latitude", lat,
		"longitude", lon,
	)
}

// markFailed records the terminal failed status on a fresh context so the
// outcome stays observable on the shipment record.
func (w *GeocodeWorker) markFailed(shipmentID string) {
	ctx, cancel := context.WithTimeout(context.Background(), statusWriteTimeout)
	defer cancel()
	if err := w.Repo.MarkGeocodingFailed(ctx, shipmentID); err != nil {
		w.Logger.Error("failed to mark shipment geocoding failed",
			"event", "geocode_status_update_failed",
			"module", "commerce-operations/delivery-service",
			"layer", "worker",
			"shipment_id", shipmentID,
			"error", err.Error(),
		)
	}
}
