// Package ports declares the interfaces the delivery service depends on.
// Adapters implement them; application code never imports an adapter.
package ports

import (
	"context"
	"time"

	"mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	"mercurio/internal/shared/ledger"
)

// ShipmentRepository persists shipments and their geocoding lifecycle.
type ShipmentRepository interface {
	// CreateShipment stores the shipment and the processed-event record in
	// one transaction. Returns ledger.ErrAlreadyProcessed when the event id
	// was recorded concurrently.
	CreateShipment(ctx context.Context, shipment entities.Shipment, record ledger.ProcessedEvent) error

	// SetCoordinates stores the geocoded position and marks the shipment
	// geocoding complete.
	SetCoordinates(ctx context.Context, shipmentID string, latitude, longitude float64) error

	// MarkGeocodingFailed records that neither the full address nor the
	// city could be resolved.
	MarkGeocodingFailed(ctx context.Context, shipmentID string) error

	FindByOrderID(ctx context.Context, orderID string) (entities.Shipment, error)

	// FindPlannable returns geocoded shipments not yet assigned to a route.
	FindPlannable(ctx context.Context) ([]entities.Shipment, error)

	// AssignToRoute links the given stops to a persisted route, recording
	// each shipment's visiting sequence.
	AssignToRoute(ctx context.Context, routeID string, stops []entities.RouteStop) error
}

// VehicleRepository resolves the vehicles a planning run may use.
type VehicleRepository interface {
	FindByIDs(ctx context.Context, vehicleIDs []string) ([]entities.Vehicle, error)
	FindAll(ctx context.Context) ([]entities.Vehicle, error)
}

// RouteRepository persists planned routes with their ordered stops.
type RouteRepository interface {
	SaveRoute(ctx context.Context, route entities.Route) error
}

// Geocoder resolves a postal address to coordinates. An empty address
// requests a city-level lookup.
type Geocoder interface {
	Geocode(ctx context.Context, address, city, country string) (latitude, longitude float64, err error)
}

// PlannedRoute is one vehicle's assignment produced by a RoutePlanner.
// Shipments are in visiting order.
type PlannedRoute struct {
	Vehicle          entities.Vehicle
	Shipments        []entities.Shipment
	TotalKM          float64
	EstimatedMinutes int
}

// RoutePlanner turns shipments and vehicles into planned routes. The
// strategy is opaque to the caller and replaceable.
type RoutePlanner interface {
	Plan(ctx context.Context, shipments []entities.Shipment, vehicles []entities.Vehicle) ([]PlannedRoute, error)
}

// EventPublisher fans out delivery events. Publishing never fails the
// caller; transport problems are logged by the implementation.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload any)
}

// GeocodeDispatcher hands a committed shipment to the background geocoding
// worker. Dispatch returns immediately.
type GeocodeDispatcher interface {
	Dispatch(shipment entities.Shipment)
}

// EventLedger answers whether an event id was already processed.
type EventLedger interface {
	HasBeenProcessed(ctx context.Context, eventID string) (bool, error)
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}
