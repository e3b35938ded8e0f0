package production

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// LedgerService moves default-warehouse stock when a production order is
// executed or cancelled. Both directions run inside the caller's transaction
// and lock every stock row they touch.
type LedgerService struct {
	lineItems  production.LineItemRepository
	warehouses inventory.WarehouseRepository
	stock      inventory.StockRepository
	ledger     inventory.LedgerRepository
	logger     *zap.Logger
}

func newLedgerService(repos Repositories, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		lineItems:  repos.LineItems(),
		warehouses: repos.Warehouses(),
		stock:      repos.Stock(),
		ledger:     repos.Ledger(),
		logger:     logger,
	}
}

// Apply writes an executed ledger entry with one line per line item:
//
//	stock_after = stock_before + total_to_produce - ordered_quantity_new
func (s *LedgerService) Apply(ctx context.Context, o *production.ProductionOrder, at time.Time) (*inventory.LedgerEntry, error) {
	warehouse, err := s.warehouses.FindDefault(ctx)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, shared.NewDomainError(production.CodeConsistencyViolation, "No default warehouse is configured")
	}
	if err != nil {
		return nil, err
	}

	items, err := s.lineItems.FindByProductionOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	// Fixed lock order across concurrent executions
	sort.Slice(items, func(i, j int) bool {
		return bytes.Compare(items[i].ProductID[:], items[j].ProductID[:]) < 0
	})

	entry, err := inventory.NewLedgerEntry(inventory.LedgerCode(o.Sequence), o.ID, warehouse.ID,
		fmt.Sprintf("Production order #%d executed", o.Sequence))
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		stock, err := s.stock.FindForUpdate(ctx, item.ProductID, warehouse.ID)
		if err != nil {
			return nil, err
		}
		line, err := entry.AddMovement(item.ProductID, stock.Quantity, item.TotalToProduce, item.OrderedQuantityNew)
		if err != nil {
			return nil, err
		}
		stock.SetQuantity(line.StockAfter)
		if err := s.stock.Save(ctx, stock); err != nil {
			return nil, err
		}
	}
	if err := entry.MarkExecuted(at); err != nil {
		return nil, err
	}
	if err := s.ledger.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry executed",
		zap.String("production_order_id", o.ID.String()),
		zap.String("code", entry.Code),
		zap.Int("lines", len(entry.Lines)),
	)
	return entry, nil
}

// Revert restores the stock_before of every line of the executed entry and
// cancels it. An order executed without an entry has nothing to restore.
func (s *LedgerService) Revert(ctx context.Context, o *production.ProductionOrder, by, reason string, at time.Time) (*inventory.LedgerEntry, error) {
	entry, err := s.ledger.FindExecutedForUpdate(ctx, o.ID)
	if errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("no executed ledger entry to revert",
			zap.String("production_order_id", o.ID.String()),
		)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lines := append([]inventory.LedgerLine(nil), entry.Lines...)
	sort.Slice(lines, func(i, j int) bool {
		return bytes.Compare(lines[i].ProductID[:], lines[j].ProductID[:]) < 0
	})
	for _, line := range lines {
		stock, err := s.stock.FindForUpdate(ctx, line.ProductID, entry.WarehouseID)
		if err != nil {
			return nil, err
		}
		stock.SetQuantity(line.StockBefore)
		if err := s.stock.Save(ctx, stock); err != nil {
			return nil, err
		}
	}

	if reason == "" {
		reason = fmt.Sprintf("Production order #%d cancelled", o.Sequence)
	}
	if err := entry.Cancel(by, reason, at); err != nil {
		return nil, err
	}
	if err := s.ledger.Save(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("ledger entry cancelled",
		zap.String("production_order_id", o.ID.String()),
		zap.String("code", entry.Code),
	)
	return entry, nil
}
