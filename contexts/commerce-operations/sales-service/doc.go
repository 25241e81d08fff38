// Package salesservice reacts to order facts by accumulating seller sales
// plans. Effects are additive and guarded by the processed-events ledger, so
// duplicate and out-of-order deliveries converge on the same running total.
package salesservice
