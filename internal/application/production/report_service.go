package production

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportService builds the read-side views of production orders
type ReportService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewReportService creates a new ReportService
func NewReportService(scope TransactionScope, logger *zap.Logger) *ReportService {
	return &ReportService{scope: scope, logger: logger}
}

// ReportRows consolidates the line items of the given production orders per
// production area and product
func (s *ReportService) ReportRows(ctx context.Context, productionOrderIDs []uuid.UUID) ([]production.AreaReport, error) {
	if len(productionOrderIDs) == 0 {
		return nil, shared.NewDomainError(production.CodeValidation, "At least one production order is required")
	}

	var reports []production.AreaReport
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		rows, err := repos.Reports().LineItemRows(ctx, productionOrderIDs)
		if err != nil {
			return err
		}
		coverage, err := repos.Reports().ExcludedCompanyCoverage(ctx, productionOrderIDs)
		if err != nil {
			return err
		}
		reports = production.BuildReport(rows, coverage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reports, nil
}

// ProductionDetail reports how much of each line of a customer order was
// covered by executed production orders
func (s *ReportService) ProductionDetail(ctx context.Context, customerOrderID uuid.UUID) (*production.ProductionDetail, error) {
	var detail production.ProductionDetail
	err := s.scope.Execute(ctx, func(repos Repositories) error {
		d, err := productionDetail(ctx, repos, customerOrderID)
		if err != nil {
			return err
		}
		detail = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func productionDetail(ctx context.Context, repos Repositories, customerOrderID uuid.UUID) (production.ProductionDetail, error) {
	order, err := repos.CustomerOrders().FindByID(ctx, customerOrderID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return production.ProductionDetail{}, shared.NewDomainError(shared.ErrNotFound.Code, "Customer order not found")
		}
		return production.ProductionDetail{}, err
	}
	produced, err := repos.Reports().ProducedByLine(ctx, customerOrderID)
	if err != nil {
		return production.ProductionDetail{}, err
	}

	productIDs := make([]uuid.UUID, 0, len(order.Lines))
	for _, l := range order.Lines {
		productIDs = append(productIDs, l.ProductID)
	}
	products, err := repos.Products().FindByIDs(ctx, productIDs)
	if err != nil {
		return production.ProductionDetail{}, err
	}
	snapshots := make(map[uuid.UUID]production.ProductSnapshot, len(products))
	for i := range products {
		snapshots[products[i].ID] = production.ProductSnapshot{Name: products[i].Name, Code: products[i].Code}
	}
	return production.BuildProductionDetail(order, snapshots, produced), nil
}
