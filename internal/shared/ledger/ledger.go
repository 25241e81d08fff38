package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrAlreadyProcessed reports that a ledger row for the event_id already
// exists. Handlers treat it as "effect already applied", not failure.
var ErrAlreadyProcessed = errors.New("event already processed")

// ProcessedEvent records that an inbound fact has produced its local effect.
// The row is written in the same transaction as the effect it guards and is
// never updated or deleted afterwards.
type ProcessedEvent struct {
	ID              string
	EventID         string
	EventType       string
	Microservice    string
	PayloadSnapshot string
	ProcessedAt     time.Time
}

// NewProcessedEvent builds a ledger record for an inbound event.
func NewProcessedEvent(eventID, eventType, microservice, payloadSnapshot string, processedAt time.Time) ProcessedEvent {
	return ProcessedEvent{
		ID:              uuid.NewString(),
		EventID:         eventID,
		EventType:       eventType,
		Microservice:    microservice,
		PayloadSnapshot: payloadSnapshot,
		ProcessedAt:     processedAt.UTC(),
	}
}

// Store reads and writes one consuming context's ledger table. Every context
// that consumes the fan-out keeps its own table, so the event_id uniqueness
// guard is scoped to that context's effect. Bind the store to the gorm
// transaction that carries the guarded business mutation:
//
//	db.Transaction(func(tx *gorm.DB) error {
//	    ... business write ...
//	    return ledger.NewStoreFor(tx, table).MarkAsProcessed(ctx, record)
//	})
type Store struct {
	db    *gorm.DB
	table string
}

// NewStoreFor binds the store to a consumer-owned ledger table.
func NewStoreFor(db *gorm.DB, table string) *Store {
	return &Store{db: db, table: table}
}

// HasBeenProcessed answers whether event_id already produced a local effect.
func (s *Store) HasBeenProcessed(ctx context.Context, eventID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Table(s.table).
		Where("event_id = ?", eventID).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkAsProcessed inserts the ledger row. A concurrent delivery losing the
// unique-index race on event_id gets ErrAlreadyProcessed; the caller must
// roll back its uncommitted work and report success.
func (s *Store) MarkAsProcessed(ctx context.Context, record ProcessedEvent) error {
	row := processedEventModel{
		ID:              record.ID,
		EventID:         record.EventID,
		EventType:       record.EventType,
		Microservice:    record.Microservice,
		PayloadSnapshot: record.PayloadSnapshot,
		ProcessedAt:     record.ProcessedAt.UTC(),
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if err := s.db.WithContext(ctx).Table(s.table).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyProcessed
		}
		return err
	}
	return nil
}

type processedEventModel struct {
	ID              string    `gorm:"column:id;primaryKey"`
	EventID         string    `gorm:"column:event_id;uniqueIndex"`
	EventType       string    `gorm:"column:event_type"`
	Microservice    string    `gorm:"column:microservice"`
	PayloadSnapshot string    `gorm:"column:payload_snapshot"`
	ProcessedAt     time.Time `gorm:"column:processed_at"`
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
