package commands

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"mercurio/contexts/commerce-operations/delivery-service/domain/entities"
	domainerrors "mercurio/contexts/commerce-operations/delivery-service/domain/errors"
	"mercurio/contexts/commerce-operations/delivery-service/ports"
	"mercurio/internal/shared/events"
)

// GenerateRoutesUseCase plans delivery routes for the geocoded, unassigned
// shipments. The planner strategy is a port; this use case only persists its
// output and announces the run.
type GenerateRoutesUseCase struct {
	Shipments ports.ShipmentRepository
	Vehicles  ports.VehicleRepository
	Routes    ports.RouteRepository
	Planner   ports.RoutePlanner
	Publisher ports.EventPublisher
	Clock     ports.Clock
	IDs       ports.IDGenerator
	Logger    *slog.Logger
}

// Execute plans routes over the given vehicles. An empty vehicleIDs slice
// uses every registered vehicle. Returns the persisted routes; an empty
// result with a nil error means there was nothing to plan.
func (uc GenerateRoutesUseCase) Execute(ctx context.Context, vehicleIDs []string) ([]entities.Route, error) {
	logger := uc.resolveLogger()

	shipments, err := uc.Shipments.FindPlannable(ctx)
	if err != nil {
		return nil, err
	}
	if len(shipments) == 0 {
		logger.Info("no shipments ready for route planning",
			"event", "route_generation_skipped",
			"module", "commerce-operations/delivery-service",
			"layer", "application",
		)
		return nil, nil
	}

	var vehicles []entities.Vehicle
	if len(vehicleIDs) == 0 {
		vehicles, err = uc.Vehicles.FindAll(ctx)
	} else {
		vehicles, err = uc.Vehicles.FindByIDs(ctx, vehicleIDs)
	}
	if err != nil {
		return nil, err
	}
	if len(vehicles) == 0 {
		return nil, domainerrors.ErrNoVehicles
	}

	planned, err := uc.Planner.Plan(ctx, shipments, vehicles)
	if err != nil {
		return nil, err
	}
	if len(planned) == 0 {
		return nil, nil
	}

	now := uc.now()
	routes := make([]entities.Route, 0, len(planned))
	for _, plan := range planned {
		route := entities.Route{
			RouteID:          uc.IDs.NewID(),
			VehicleID:        plan.Vehicle.VehicleID,
			VehiclePlate:     plan.Vehicle.Plate,
			Status:           entities.RoutePlanned,
			TotalKM:          plan.TotalKM,
			EstimatedMinutes: plan.EstimatedMinutes,
			GeneratedAt:      now,
		}
		for i, shipment := range plan.Shipments {
			route.Stops = append(route.Stops, entities.RouteStop{
				ShipmentID: shipment.ShipmentID,
				Sequence:   i + 1,
			})
		}
		if err := uc.Routes.SaveRoute(ctx, route); err != nil {
			return nil, err
		}
		if err := uc.Shipments.AssignToRoute(ctx, route.RouteID, route.Stops); err != nil {
			return nil, err
		}
		logger.Info("route planned",
			"event", "route_planned",
			"module", "commerce-operations/delivery-service",
			"layer", "application",
			"route_id", route.RouteID,
			"vehicle_plate", route.VehiclePlate,
			"stops", len(route.Stops),
			"total_km", route.TotalKM,
			"estimated_minutes", route.EstimatedMinutes,
		)
		routes = append(routes, route)
	}

	uc.publishRoutesGenerated(ctx, routes, now)
	return routes, nil
}

// publishRoutesGenerated announces the planning run. Delivery failures stay
// inside the publisher; route persistence already committed.
func (uc GenerateRoutesUseCase) publishRoutesGenerated(ctx context.Context, routes []entities.Route, generatedAt time.Time) {
	if uc.Publisher == nil {
		return
	}
	summaries := make([]events.RouteSummary, 0, len(routes))
	for _, route := range routes {
		summaries = append(summaries, events.RouteSummary{
			RouteID:       route.RouteID,
			VehiclePlate:  route.VehiclePlate,
			StopCount:     len(route.Stops),
			TotalKM:       strconv.FormatFloat(route.TotalKM, 'f', 2, 64),
			EstimatedMins: route.EstimatedMinutes,
		})
	}
	uc.Publisher.Publish(ctx, events.TypeRoutesGenerated, events.DeliveryRoutesGenerated{
		GeneratedAt: generatedAt,
		Routes:      summaries,
	})
}

func (uc GenerateRoutesUseCase) now() time.Time {
	if uc.Clock != nil {
		return uc.Clock.Now().UTC()
	}
	return time.Now().UTC()
}

func (uc GenerateRoutesUseCase) resolveLogger() *slog.Logger {
	if uc.Logger != nil {
		return uc.Logger
	}
	return slog.Default()
}
