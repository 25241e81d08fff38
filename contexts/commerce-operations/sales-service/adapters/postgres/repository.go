package postgresadapter

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	domainerrors "mercurio/contexts/commerce-operations/sales-service/domain/errors"
	"mercurio/internal/shared/ledger"
	"mercurio/internal/shared/money"
)

// LedgerTable is this context's processed-events ledger. Sales and delivery
// both consume order_created from their own queues; separate tables keep one
// context's ledger row from masking the other's.
const LedgerTable = "sales_processed_events"

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// AccumulateSales adds amount to the seller's plan for the period and inserts
// the ledger row in one transaction. The amount travels as its canonical
// decimal string and is cast to NUMERIC in the database, so the addition
// happens in exact decimal arithmetic.
func (r *Repository) AccumulateSales(
	ctx context.Context,
	sellerID string,
	period string,
	amount money.Amount,
	record ledger.ProcessedEvent,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&salesPlanModel{}).
			Where("seller_id = ? AND sales_period = ?", sellerID, period).
			Updates(map[string]any{
				"accumulate": gorm.Expr("accumulate + CAST(? AS NUMERIC)", amount.String()),
				"updated_at": record.ProcessedAt.UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrSalesPlanNotFound
		}
		return ledger.NewStoreFor(tx, LedgerTable).MarkAsProcessed(ctx, record)
	})
}

func (r *Repository) MarkProcessedOnly(ctx context.Context, record ledger.ProcessedEvent) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return ledger.NewStoreFor(tx, LedgerTable).MarkAsProcessed(ctx, record)
	})
}

type salesPlanModel struct {
	PlanID      string    `gorm:"column:plan_id;primaryKey"`
	SellerID    string    `gorm:"column:seller_id;index:idx_sales_plans_seller_period,unique"`
	SalesPeriod string    `gorm:"column:sales_period;index:idx_sales_plans_seller_period,unique"`
	Goal        string    `gorm:"column:goal;type:numeric(14,2)"`
	Accumulate  string    `gorm:"column:accumulate;type:numeric(14,2)"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (salesPlanModel) TableName() string {
	return "sales_plans"
}
