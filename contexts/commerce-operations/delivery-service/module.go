package deliveryservice

import (
	"log/slog"

	httpadapter "mercurio/contexts/commerce-operations/delivery-service/adapters/http"
	"mercurio/contexts/commerce-operations/delivery-service/application/commands"
	"mercurio/contexts/commerce-operations/delivery-service/application/consumers"
	"mercurio/contexts/commerce-operations/delivery-service/application/workers"
	"mercurio/contexts/commerce-operations/delivery-service/domain/services"
	"mercurio/contexts/commerce-operations/delivery-service/ports"
)

// Module is the composition surface for the delivery context. Runtime wiring
// consumes OrderCreated (queue handler), Handler (HTTP), and Geocoding
// (drained on shutdown).
type Module struct {
	OrderCreated consumers.OrderCreatedConsumer
	Handler      httpadapter.Handler
	Geocoding    *workers.GeocodeWorker
}

type Dependencies struct {
	Shipments    ports.ShipmentRepository
	Vehicles     ports.VehicleRepository
	Routes       ports.RouteRepository
	Geocoder     ports.Geocoder
	Publisher    ports.EventPublisher
	Ledger       ports.EventLedger
	Clock        ports.Clock
	IDGenerator  ports.IDGenerator
	LeadTimeDays int
	Logger       *slog.Logger
}

func NewModule(deps Dependencies) Module {
	geocoding := workers.NewGeocodeWorker(deps.Shipments, deps.Geocoder, deps.Logger)

	orderCreated := consumers.OrderCreatedConsumer{
		Repo:         deps.Shipments,
		Ledger:       deps.Ledger,
		Geocoding:    geocoding,
		Clock:        deps.Clock,
		IDs:          deps.IDGenerator,
		LeadTimeDays: deps.LeadTimeDays,
		Logger:       deps.Logger,
	}

	generateRoutes := commands.GenerateRoutesUseCase{
		Shipments: deps.Shipments,
		Vehicles:  deps.Vehicles,
		Routes:    deps.Routes,
		Planner:   services.NewGreedyPlanner(deps.Logger),
		Publisher: deps.Publisher,
		Clock:     deps.Clock,
		IDs:       deps.IDGenerator,
		Logger:    deps.Logger,
	}

	return Module{
		OrderCreated: orderCreated,
		Handler: httpadapter.Handler{
			GenerateRoutes: generateRoutes,
			Shipments:      deps.Shipments,
			Logger:         deps.Logger,
		},
		Geocoding: geocoding,
	}
}
