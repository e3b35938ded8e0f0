package production

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
)

// OverlapResolver computes how much of a product's demand earlier production
// orders already claimed
type OverlapResolver struct {
	orders    production.ProductionOrderRepository
	pivots    production.PivotRepository
	lineItems production.LineItemRepository
}

// NewOverlapResolver creates a new OverlapResolver
func NewOverlapResolver(orders production.ProductionOrderRepository, pivots production.PivotRepository, lineItems production.LineItemRepository) *OverlapResolver {
	return &OverlapResolver{orders: orders, pivots: pivots, lineItems: lineItems}
}

// PreviousCoverage returns the largest quantity of productID that a single
// earlier, overlapping, non-cancelled order claimed inside the shared part of
// both dispatch windows. Claims come from the candidates' pivot snapshots;
// a candidate without a line item for productID never made it and claims
// nothing.
func (r *OverlapResolver) PreviousCoverage(ctx context.Context, o *production.ProductionOrder, productID uuid.UUID) (int64, error) {
	candidates, err := r.orders.FindCoverageCandidates(ctx, o)
	if err != nil {
		return 0, err
	}

	claims := make([]production.CandidateCoverage, 0, len(candidates))
	for i := range candidates {
		prior := &candidates[i]
		if !production.IsCoverageCandidate(o, prior) {
			continue
		}
		overlap, ok := o.Window.Intersect(prior.Window)
		if !ok {
			continue
		}
		makes, err := r.makesProduct(ctx, prior.ID, productID)
		if err != nil {
			return 0, err
		}
		if !makes {
			continue
		}
		covered, err := r.pivots.SumCovered(ctx, prior.ID, productID, overlap)
		if err != nil {
			return 0, err
		}
		claims = append(claims, production.CandidateCoverage{
			ProductionOrderID: prior.ID,
			Window:            overlap,
			Covered:           covered,
		})
	}
	return production.PreviousCoverage(claims), nil
}

func (r *OverlapResolver) makesProduct(ctx context.Context, productionOrderID, productID uuid.UUID) (bool, error) {
	_, err := r.lineItems.FindOne(ctx, productionOrderID, productID)
	if errors.Is(err, shared.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}
