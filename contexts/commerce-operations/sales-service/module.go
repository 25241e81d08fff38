package salesservice

import (
	"log/slog"

	"mercurio/contexts/commerce-operations/sales-service/application/consumers"
	"mercurio/contexts/commerce-operations/sales-service/ports"
)

// Module is the composition surface for sales accumulation. Runtime wiring
// registers OrderCreated.Handle with the platform consumer.
type Module struct {
	OrderCreated consumers.OrderCreatedConsumer
}

type Dependencies struct {
	Repo   ports.SalesPlanRepository
	Ledger ports.EventLedger
	Clock  ports.Clock
	Logger *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		OrderCreated: consumers.OrderCreatedConsumer{
			Repo:   deps.Repo,
			Ledger: deps.Ledger,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
	}
}
