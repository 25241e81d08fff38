package ports

import (
	"context"
	"time"

	"mercurio/internal/shared/ledger"
	"mercurio/internal/shared/money"
)

// SalesPlanRepository owns sales-plan persistence and the transaction
// boundary that couples a plan update with its ledger row.
type SalesPlanRepository interface {
	// AccumulateSales must atomically add amount to the plan's running total
	// and insert the ledger record. A lost unique-index race returns
	// ledger.ErrAlreadyProcessed with the accumulation rolled back.
	AccumulateSales(ctx context.Context, sellerID string, period string, amount money.Amount, record ledger.ProcessedEvent) error
	// MarkProcessedOnly records the ledger row without touching any plan,
	// for facts that carry no seller.
	MarkProcessedOnly(ctx context.Context, record ledger.ProcessedEvent) error
}

// EventLedger answers whether an inbound event already produced its effect.
type EventLedger interface {
	HasBeenProcessed(ctx context.Context, eventID string) (bool, error)
}

// Clock allows deterministic testing of quarter attribution.
type Clock interface {
	Now() time.Time
}
