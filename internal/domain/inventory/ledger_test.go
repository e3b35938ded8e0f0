package inventory

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

func newEntry(t *testing.T) *LedgerEntry {
	t.Helper()
	e, err := NewLedgerEntry(LedgerCode(7), uuid.New(), uuid.New(), "Ejecución OP #7")
	require.NoError(t, err)
	return e
}

func TestLedgerCode(t *testing.T) {
	assert.Equal(t, "TRX-OP-12", LedgerCode(12))
}

func TestLedgerEntry_AddMovement(t *testing.T) {
	e := newEntry(t)

	line, err := e.AddMovement(uuid.New(), 2, 19, 21)
	require.NoError(t, err)
	assert.Equal(t, int64(2), line.StockBefore)
	assert.Equal(t, int64(0), line.StockAfter)
	assert.Equal(t, int64(-2), line.Difference)
	assert.Equal(t, DefaultUnitOfMeasure, line.UnitOfMeasure)
	assert.Equal(t, e.ID, line.EntryID)

	_, err = e.AddMovement(uuid.New(), 0, -1, 0)
	assert.Error(t, err)
}

func TestLedgerEntry_Lifecycle(t *testing.T) {
	e := newEntry(t)
	now := time.Now()

	err := e.Cancel("ops", "too early", now)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	require.NoError(t, e.MarkExecuted(now))
	assert.Equal(t, LedgerStatusExecuted, e.Status)
	require.NotNil(t, e.ExecutedAt)

	_, err = e.AddMovement(uuid.New(), 0, 1, 0)
	assert.Error(t, err, "executed entries are immutable")

	require.NoError(t, e.Cancel("ops", "wrong date", now))
	assert.Equal(t, LedgerStatusCancelled, e.Status)
	assert.Equal(t, "ops", e.CancelledBy)
	assert.Equal(t, "wrong date", e.CancellationReason)
	require.NotNil(t, e.CancelledAt)

	assert.Error(t, e.MarkExecuted(now))
	assert.Error(t, e.Cancel("ops", "again", now))
}

func TestNewLedgerEntry_Validation(t *testing.T) {
	_, err := NewLedgerEntry("", uuid.New(), uuid.New(), "")
	assert.Error(t, err)
	_, err = NewLedgerEntry("TRX-OP-1", uuid.Nil, uuid.New(), "")
	assert.Error(t, err)
}

func TestNewWarehouse(t *testing.T) {
	w, err := NewWarehouse("BOD-01", "Bodega Central", true)
	require.NoError(t, err)
	assert.True(t, w.IsDefault)

	_, err = NewWarehouse("", "Bodega", false)
	assert.Error(t, err)
}
