package production

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
)

// applyPlan mimics what the pivot repository does with a plan
func applyPlan(p Pivot, plan PivotPlan) Pivot {
	p.Orders = append(p.Orders, plan.NewOrders...)
	p.Lines = append(p.Lines, plan.NewLines...)
	for _, r := range plan.RefreshedLines {
		for i := range p.Lines {
			if p.Lines[i].OrderLineID == r.OrderLineID {
				p.Lines[i] = r
			}
		}
	}
	return p
}

func TestPlanPivotSync_DateRangeDiscoversOnceThenReuses(t *testing.T) {
	first, second := uuid.New(), uuid.New()
	orders := make([]sales.CustomerOrder, 0, 5)
	for i := 0; i < 5; i++ {
		o := newOrder(t, "ORD-"+string(rune('A'+i)), day(7+i%2), sales.OrderStatusProcessed)
		addLine(t, o, first, 2, false)
		orders = append(orders, *o)
	}
	op := newRangeOrder(t, 1, 7, 8)
	w := op.Window
	now := time.Now()
	products := map[uuid.UUID]ProductSnapshot{first: {Name: "Arroz", Code: "ARZ"}, second: {Name: "Pollo", Code: "POL"}}

	plan := PlanPivotSync(op, Pivot{}, AggregateDemand(orders, DemandFilter{Window: &w}), first, products, now)
	assert.Len(t, plan.NewOrders, 5)
	assert.Len(t, plan.NewLines, 5)
	assert.Equal(t, "Arroz", plan.NewLines[0].ProductName)
	pivot := applyPlan(Pivot{}, plan)

	// a sixth order shows up and every order now also asks for the second product
	late := newOrder(t, "ORD-Z", day(8), sales.OrderStatusProcessed)
	addLine(t, late, second, 9, false)
	for i := range orders {
		addLine(t, &orders[i], second, 1, false)
	}
	orders = append(orders, *late)

	plan = PlanPivotSync(op, pivot, AggregateDemand(orders, DemandFilter{Window: &w}), second, products, now)
	assert.Empty(t, plan.NewOrders, "discovery runs only while the pivot is empty")
	assert.Len(t, plan.NewLines, 5, "lines are added only for the seeded orders")
	pivot = applyPlan(pivot, plan)

	assert.Len(t, pivot.Orders, 5)
	assert.False(t, pivot.HasOrder(late.ID))
}

func TestPlanPivotSync_DateRangeSeedClaimsOnlyAttachedProduct(t *testing.T) {
	stew, bread := uuid.New(), uuid.New()
	mixed := newOrder(t, "ORD-1", day(7), sales.OrderStatusProcessed)
	addLine(t, mixed, stew, 4, false)
	addLine(t, mixed, bread, 20, false)
	breadOnly := newOrder(t, "ORD-2", day(8), sales.OrderStatusProcessed)
	addLine(t, breadOnly, bread, 3, false)

	op := newRangeOrder(t, 1, 7, 8)
	w := op.Window
	demand := AggregateDemand([]sales.CustomerOrder{*mixed, *breadOnly}, DemandFilter{Window: &w})

	plan := PlanPivotSync(op, Pivot{}, demand, stew, nil, time.Now())
	assert.Len(t, plan.NewOrders, 2)
	require.Len(t, plan.NewLines, 1)
	assert.Equal(t, stew, plan.NewLines[0].ProductID)
	assert.Equal(t, int64(4), plan.NewLines[0].QuantityCovered)

	pivot := applyPlan(Pivot{}, plan)
	assert.True(t, pivot.HasOrder(breadOnly.ID))
	assert.Empty(t, pivot.LinesFor(bread))
}

func TestPlanPivotSync_ExplicitNeverGrows(t *testing.T) {
	product := uuid.New()
	orders := make([]sales.CustomerOrder, 0, 10)
	for i := 0; i < 10; i++ {
		o := newOrder(t, "ORD-"+string(rune('a'+i)), day(7), sales.OrderStatusProcessed)
		addLine(t, o, product, 1, false)
		orders = append(orders, *o)
	}
	op, err := NewFromOrders(1, day(6), window(t, 7, 7), nil, "")
	require.NoError(t, err)
	now := time.Now()

	pivot := applyPlan(Pivot{}, SeedPivot(op, AggregateDemand(orders, DemandFilter{}), nil, now))
	require.Len(t, pivot.Orders, 10)
	require.Len(t, pivot.Lines, 10)

	more := make([]sales.CustomerOrder, 0, 8)
	for i := 0; i < 8; i++ {
		o := newOrder(t, "NEW-"+string(rune('a'+i)), day(7), sales.OrderStatusProcessed)
		addLine(t, o, product, 1, false)
		more = append(more, *o)
	}
	all := append(append([]sales.CustomerOrder{}, orders...), more...)

	plan := PlanPivotSync(op, pivot, AggregateDemand(all, DemandFilter{}), product, nil, now)
	assert.Empty(t, plan.NewOrders)
	assert.Empty(t, plan.NewLines)
	assert.Empty(t, plan.RefreshedLines, "nothing changed on the claimed lines")

	pivot = applyPlan(pivot, plan)
	assert.Len(t, pivot.Orders, 10)
	assert.Len(t, pivot.Lines, 10)
}

func TestPlanPivotSync_ExplicitRefreshesClaimedLines(t *testing.T) {
	product := uuid.New()
	o := newOrder(t, "ORD-1", day(7), sales.OrderStatusProcessed)
	line := addLine(t, o, product, 5, false)
	op, err := NewFromOrders(1, day(6), window(t, 7, 7), nil, "")
	require.NoError(t, err)
	now := time.Now()

	pivot := applyPlan(Pivot{}, SeedPivot(op, AggregateDemand([]sales.CustomerOrder{*o}, DemandFilter{}), nil, now))
	o.Lines[0].Quantity = 3

	plan := PlanPivotSync(op, pivot, AggregateDemand([]sales.CustomerOrder{*o}, DemandFilter{}), product, nil, now)
	require.Len(t, plan.RefreshedLines, 1)
	assert.Equal(t, line.ID, plan.RefreshedLines[0].OrderLineID)
	assert.Equal(t, int64(3), plan.RefreshedLines[0].QuantityCovered)
	assert.Equal(t, "4500", plan.RefreshedLines[0].TotalPrice.String())
}

func TestPlanPivotSync_EmptyDemandIsNoOp(t *testing.T) {
	op := newRangeOrder(t, 1, 7, 8)
	plan := PlanPivotSync(op, Pivot{}, Demand{}, uuid.New(), nil, time.Now())
	assert.True(t, plan.IsEmpty())
}
