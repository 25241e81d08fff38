package consumers

import (
	"context"
	"errors"
	"testing"
	"time"

	domainerrors "mercurio/contexts/commerce-operations/sales-service/domain/errors"
	"mercurio/internal/shared/ledger"
	"mercurio/internal/shared/money"
)

type fakeSalesPlanRepo struct {
	totals        map[string]money.Amount
	periods       []string
	processed     map[string]bool
	accumulateErr error
	markedOnly    int
}

func newFakeSalesPlanRepo() *fakeSalesPlanRepo {
	return &fakeSalesPlanRepo{
		totals:    make(map[string]money.Amount),
		processed: make(map[string]bool),
	}
}

func (f *fakeSalesPlanRepo) AccumulateSales(_ context.Context, sellerID, period string, amount money.Amount, record ledger.ProcessedEvent) error {
	if f.accumulateErr != nil {
		return f.accumulateErr
	}
	if f.processed[record.EventID] {
		return ledger.ErrAlreadyProcessed
	}
	f.totals[sellerID] = f.totals[sellerID].Add(amount)
	f.periods = append(f.periods, period)
	f.processed[record.EventID] = true
	return nil
}

func (f *fakeSalesPlanRepo) MarkProcessedOnly(_ context.Context, record ledger.ProcessedEvent) error {
	if f.processed[record.EventID] {
		return ledger.ErrAlreadyProcessed
	}
	f.processed[record.EventID] = true
	f.markedOnly++
	return nil
}

func (f *fakeSalesPlanRepo) HasBeenProcessed(_ context.Context, eventID string) (bool, error) {
	return f.processed[eventID], nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newSalesConsumer(repo *fakeSalesPlanRepo) OrderCreatedConsumer {
	return OrderCreatedConsumer{
		Repo:   repo,
		Ledger: repo,
		Clock:  fixedClock{at: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
	}
}

func orderCreatedBody(eventID, sellerID, amount string) []byte {
	body := `{"event_id":"` + eventID + `","event_type":"order_created","microservice":"order-service",` +
		`"order_id":"o-1","customer_id":"c-1","total_amount":"` + amount + `"`
	if sellerID != "" {
		body += `,"seller_id":"` + sellerID + `"`
	}
	return []byte(body + "}")
}

func TestHandleAccumulatesQuarterTotal(t *testing.T) {
	repo := newFakeSalesPlanRepo()
	consumer := newSalesConsumer(repo)

	if err := consumer.Handle(context.Background(), orderCreatedBody("e1", "s-1", "1000.00")); err != nil {
		t.Fatalf("first handle failed: %v", err)
	}
	if err := consumer.Handle(context.Background(), orderCreatedBody("e2", "s-1", "500.00")); err != nil {
		t.Fatalf("second handle failed: %v", err)
	}

	if got := repo.totals["s-1"].String(); got != "1500.00" {
		t.Fatalf("expected 1500.00 accumulated, got %s", got)
	}
	for _, period := range repo.periods {
		if period != "Q3-2026" {
			t.Fatalf("expected quarter Q3-2026, got %s", period)
		}
	}
}

func TestHandleSkipsAlreadyProcessedEvent(t *testing.T) {
	repo := newFakeSalesPlanRepo()
	consumer := newSalesConsumer(repo)

	body := orderCreatedBody("e1", "s-1", "1000.00")
	if err := consumer.Handle(context.Background(), body); err != nil {
		t.Fatalf("first handle failed: %v", err)
	}
	if err := consumer.Handle(context.Background(), body); err != nil {
		t.Fatalf("duplicate handle failed: %v", err)
	}

	if got := repo.totals["s-1"].String(); got != "1000.00" {
		t.Fatalf("duplicate delivery must not accumulate twice, got %s", got)
	}
}

func TestHandleTreatsLedgerRaceAsSuccess(t *testing.T) {
	repo := newFakeSalesPlanRepo()
	repo.accumulateErr = ledger.ErrAlreadyProcessed
	consumer := newSalesConsumer(repo)

	if err := consumer.Handle(context.Background(), orderCreatedBody("e1", "s-1", "1000.00")); err != nil {
		t.Fatalf("lost ledger race must be success, got %v", err)
	}
}

func TestHandleMarksSellerlessOrderProcessed(t *testing.T) {
	repo := newFakeSalesPlanRepo()
	consumer := newSalesConsumer(repo)

	if err := consumer.Handle(context.Background(), orderCreatedBody("e1", "", "1000.00")); err != nil {
		t.Fatalf("handle failed: %v", err)
	}

	if repo.markedOnly != 1 {
		t.Fatalf("sellerless order must still be recorded, markedOnly=%d", repo.markedOnly)
	}
	if len(repo.totals) != 0 {
		t.Fatalf("sellerless order must not touch plans, got %v", repo.totals)
	}
	if err := consumer.Handle(context.Background(), orderCreatedBody("e1", "", "1000.00")); err != nil {
		t.Fatalf("redelivery of sellerless order failed: %v", err)
	}
	if repo.markedOnly != 1 {
		t.Fatalf("redelivery must short-circuit, markedOnly=%d", repo.markedOnly)
	}
}

func TestHandleLeavesMessageWhenPlanMissing(t *testing.T) {
	repo := newFakeSalesPlanRepo()
	repo.accumulateErr = domainerrors.ErrSalesPlanNotFound
	consumer := newSalesConsumer(repo)

	err := consumer.Handle(context.Background(), orderCreatedBody("e1", "s-1", "1000.00"))
	if !errors.Is(err, domainerrors.ErrSalesPlanNotFound) {
		t.Fatalf("missing plan must surface for redelivery, got %v", err)
	}
}

func TestHandleDropsMalformedBody(t *testing.T) {
	repo := newFakeSalesPlanRepo()
	consumer := newSalesConsumer(repo)

	if err := consumer.Handle(context.Background(), []byte(`{not json`)); err != nil {
		t.Fatalf("malformed body must be acknowledged, got %v", err)
	}
	if err := consumer.Handle(context.Background(), []byte(`{"event_type":"order_created","order_id":"o-1"}`)); err != nil {
		t.Fatalf("missing event_id must be acknowledged, got %v", err)
	}
	if len(repo.totals) != 0 || repo.markedOnly != 0 {
		t.Fatalf("rejected bodies must not reach the repository")
	}
}
