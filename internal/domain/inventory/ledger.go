package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// LedgerStatus represents the status of a stock ledger entry
type LedgerStatus string

const (
	LedgerStatusPending   LedgerStatus = "PENDING"
	LedgerStatusExecuted  LedgerStatus = "EXECUTED"
	LedgerStatusCancelled LedgerStatus = "CANCELLED"
)

// IsValid checks if the status is a valid LedgerStatus
func (s LedgerStatus) IsValid() bool {
	switch s {
	case LedgerStatusPending, LedgerStatusExecuted, LedgerStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of LedgerStatus
func (s LedgerStatus) String() string {
	return string(s)
}

// DefaultUnitOfMeasure is the unit stock lines are recorded in
const DefaultUnitOfMeasure = "UND"

// LedgerLine records one product's stock movement
type LedgerLine struct {
	ID            uuid.UUID
	EntryID       uuid.UUID
	ProductID     uuid.UUID
	StockBefore   int64
	StockAfter    int64
	Difference    int64
	UnitOfMeasure string
}

// LedgerEntry is the stock transaction written when a production order is
// executed. Each line keeps the stock it found so cancellation can restore it.
type LedgerEntry struct {
	shared.BaseEntity
	Code               string
	ProductionOrderID  uuid.UUID
	WarehouseID        uuid.UUID
	Status             LedgerStatus
	Reason             string
	ExecutedAt         *time.Time
	CancelledAt        *time.Time
	CancelledBy        string
	CancellationReason string
	Lines              []LedgerLine
}

// LedgerCode builds the human readable code of a production ledger entry
func LedgerCode(sequence int64) string {
	return fmt.Sprintf("TRX-OP-%d", sequence)
}

// NewLedgerEntry creates a pending ledger entry for a production order
func NewLedgerEntry(code string, productionOrderID, warehouseID uuid.UUID, reason string) (*LedgerEntry, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Ledger code cannot be empty")
	}
	if productionOrderID == uuid.Nil || warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Ledger entry requires a production order and a warehouse")
	}
	return &LedgerEntry{
		BaseEntity:        shared.NewBaseEntity(),
		Code:              code,
		ProductionOrderID: productionOrderID,
		WarehouseID:       warehouseID,
		Status:            LedgerStatusPending,
		Reason:            reason,
		Lines:             make([]LedgerLine, 0),
	}, nil
}

// AddMovement records a product movement: produced units enter stock and the
// units consumed by orders leave it.
func (e *LedgerEntry) AddMovement(productID uuid.UUID, stockBefore, produced, consumed int64) (*LedgerLine, error) {
	if e.Status != LedgerStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Movements can only be added to a pending ledger entry")
	}
	if produced < 0 || consumed < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Produced and consumed quantities cannot be negative")
	}
	after := stockBefore + produced - consumed
	e.Lines = append(e.Lines, LedgerLine{
		ID:            uuid.New(),
		EntryID:       e.ID,
		ProductID:     productID,
		StockBefore:   stockBefore,
		StockAfter:    after,
		Difference:    after - stockBefore,
		UnitOfMeasure: DefaultUnitOfMeasure,
	})
	return &e.Lines[len(e.Lines)-1], nil
}

// MarkExecuted transitions PENDING -> EXECUTED
func (e *LedgerEntry) MarkExecuted(at time.Time) error {
	if e.Status != LedgerStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot execute ledger entry in %s status", e.Status))
	}
	e.Status = LedgerStatusExecuted
	e.ExecutedAt = &at
	e.UpdatedAt = at
	return nil
}

// Cancel transitions EXECUTED -> CANCELLED
func (e *LedgerEntry) Cancel(by, reason string, at time.Time) error {
	if e.Status != LedgerStatusExecuted {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel ledger entry in %s status", e.Status))
	}
	e.Status = LedgerStatusCancelled
	e.CancelledAt = &at
	e.CancelledBy = by
	e.CancellationReason = reason
	e.UpdatedAt = at
	return nil
}
