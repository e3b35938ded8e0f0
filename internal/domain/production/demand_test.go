package production

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
)

func newOrder(t *testing.T, number string, dispatch time.Time, status sales.OrderStatus) *sales.CustomerOrder {
	t.Helper()
	o, err := sales.NewCustomerOrder(number, uuid.New(), dispatch, status)
	require.NoError(t, err)
	return o
}

func addLine(t *testing.T, o *sales.CustomerOrder, productID uuid.UUID, qty int64, flagged bool) *sales.OrderLine {
	t.Helper()
	l, err := o.AddLine(productID, qty, flagged, decimal.NewFromInt(1500))
	require.NoError(t, err)
	return l
}

func TestAggregateDemand_EligibilityRules(t *testing.T) {
	productA, productB := uuid.New(), uuid.New()

	processed := newOrder(t, "ORD-1", day(7), sales.OrderStatusProcessed)
	addLine(t, processed, productA, 1, false)
	addLine(t, processed, productB, 1, false)

	partial := newOrder(t, "ORD-2", day(7), sales.OrderStatusPartiallyScheduled)
	addLine(t, partial, productA, 8, true)
	addLine(t, partial, productA, 3, false)

	pending := newOrder(t, "ORD-3", day(7), sales.OrderStatusPending)
	addLine(t, pending, productA, 50, true)

	canceled := newOrder(t, "ORD-4", day(7), sales.OrderStatusCanceled)
	addLine(t, canceled, productA, 70, true)

	orders := []sales.CustomerOrder{*processed, *partial, *pending, *canceled}
	d := AggregateDemand(orders, DemandFilter{})

	total := d.For(productA).OrderedQuantity + d.For(productB).OrderedQuantity
	assert.Equal(t, int64(10), total, "flagged 8 plus the processed order's 2 lines")
	assert.Equal(t, int64(9), d.For(productA).OrderedQuantity)
	assert.Len(t, d.For(productA).Contributions, 2)
	assert.ElementsMatch(t, []uuid.UUID{processed.ID, partial.ID}, d.OrderIDs())
}

func TestAggregateDemand_WindowAndProductFilter(t *testing.T) {
	hot, cold := uuid.New(), uuid.New()

	inside := newOrder(t, "ORD-10", day(8), sales.OrderStatusProcessed)
	addLine(t, inside, hot, 4, false)
	addLine(t, inside, cold, 6, false)

	outside := newOrder(t, "ORD-11", day(12), sales.OrderStatusProcessed)
	addLine(t, outside, hot, 100, false)

	w := window(t, 7, 9)
	d := AggregateDemand([]sales.CustomerOrder{*inside, *outside}, DemandFilter{
		Window:         &w,
		IncludeProduct: func(id uuid.UUID) bool { return id == hot },
	})

	require.Len(t, d, 1)
	assert.Equal(t, int64(4), d.For(hot).OrderedQuantity)
	assert.Equal(t, int64(0), d.For(cold).OrderedQuantity)
}

func TestAggregateDemand_LineFilterAndOrdering(t *testing.T) {
	product := uuid.New()

	late := newOrder(t, "ORD-22", day(9), sales.OrderStatusProcessed)
	l1 := addLine(t, late, product, 2, false)
	early := newOrder(t, "ORD-21", day(7), sales.OrderStatusProcessed)
	l2 := addLine(t, early, product, 3, false)
	skipped := addLine(t, early, product, 5, false)

	d := AggregateDemand([]sales.CustomerOrder{*late, *early}, DemandFilter{
		IncludeLine: func(id uuid.UUID) bool { return id != skipped.ID },
	})

	cs := d.For(product).Contributions
	require.Len(t, cs, 2)
	assert.Equal(t, l2.ID, cs[0].LineID, "earlier dispatch first")
	assert.Equal(t, l1.ID, cs[1].LineID)
	assert.Equal(t, int64(5), d.For(product).OrderedQuantity)
}

func TestDemand_Empty(t *testing.T) {
	d := AggregateDemand(nil, DemandFilter{})
	assert.True(t, d.IsEmpty())
	assert.Empty(t, d.ProductIDs())
	assert.Equal(t, int64(0), d.For(uuid.New()).OrderedQuantity)
}
