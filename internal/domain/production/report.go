package production

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/sales"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NoAreaName labels products that belong to no production area
const NoAreaName = "Sin Área Productiva"

// ReportLineItemRow is one line item of one production order, repeated per
// production area of its product
type ReportLineItemRow struct {
	ProductionOrderID  uuid.UUID
	Sequence           int64
	ProductID          uuid.UUID
	ProductCode        string
	ProductName        string
	AreaID             uuid.NullUUID
	AreaName           string
	OrderedQuantity    int64
	OrderedQuantityNew int64
	ManualQuantity     int64
	TotalToProduce     int64
	CurrentStock       int64
}

// CompanyCoverageRow is a pivot line ref of a company excluded from the consolidated report
type CompanyCoverageRow struct {
	ProductionOrderID uuid.UUID
	ProductID         uuid.UUID
	OrderID           uuid.UUID
	OrderLineID       uuid.UUID
	CompanyID         uuid.UUID
	CompanyName       string
	QuantityCovered   int64
}

// OrderColumn holds a product's quantities in one production order
type OrderColumn struct {
	ProductionOrderID  uuid.UUID `json:"production_order_id"`
	Sequence           int64     `json:"sequence"`
	OrderedQuantityNew int64     `json:"ordered_quantity_new"`
	ManualQuantity     int64     `json:"manual_quantity"`
	TotalToProduce     int64     `json:"total_to_produce"`
}

// CompanyTotal is the deduplicated quantity an excluded company ordered
type CompanyTotal struct {
	CompanyID   uuid.UUID `json:"company_id"`
	CompanyName string    `json:"company_name"`
	Quantity    int64     `json:"quantity"`
}

// ReportRow is one product within one production area
type ReportRow struct {
	ProductID            uuid.UUID      `json:"product_id"`
	ProductCode          string         `json:"product_code"`
	ProductName          string         `json:"product_name"`
	CurrentStock         int64          `json:"current_stock"`
	TotalOrderedQuantity int64          `json:"total_ordered_quantity"`
	TotalToProduce       int64          `json:"total_to_produce"`
	Orders               []OrderColumn  `json:"orders"`
	ExcludedCompanies    []CompanyTotal `json:"excluded_companies"`
}

// AreaReport groups the rows of one production area
type AreaReport struct {
	AreaID               *uuid.UUID  `json:"area_id,omitempty"`
	AreaName             string      `json:"area_name"`
	TotalOrderedQuantity int64       `json:"total_ordered_quantity"`
	TotalToProduce       int64       `json:"total_to_produce"`
	Rows                 []ReportRow `json:"rows"`
}

// BuildReport consolidates line items per production area and product.
// total_ordered_quantity sums ordered_quantity_new so demand shared by
// overlapping production orders is counted once.
func BuildReport(rows []ReportLineItemRow, coverage []CompanyCoverageRow) []AreaReport {
	companyTotals := DedupeCompanyCoverage(coverage)

	type areaKey struct {
		id   uuid.NullUUID
		name string
	}
	areas := make(map[areaKey]*AreaReport)
	products := make(map[areaKey]map[uuid.UUID]*ReportRow)

	for _, r := range rows {
		key := areaKey{id: r.AreaID, name: r.AreaName}
		if !r.AreaID.Valid {
			key = areaKey{name: NoAreaName}
		}
		area, ok := areas[key]
		if !ok {
			area = &AreaReport{AreaName: key.name}
			if key.id.Valid {
				id := key.id.UUID
				area.AreaID = &id
			}
			areas[key] = area
			products[key] = make(map[uuid.UUID]*ReportRow)
		}
		row, ok := products[key][r.ProductID]
		if !ok {
			row = &ReportRow{
				ProductID:         r.ProductID,
				ProductCode:       r.ProductCode,
				ProductName:       r.ProductName,
				CurrentStock:      r.CurrentStock,
				ExcludedCompanies: companyTotals[r.ProductID],
			}
			if row.ExcludedCompanies == nil {
				row.ExcludedCompanies = []CompanyTotal{}
			}
			products[key][r.ProductID] = row
		}
		row.TotalOrderedQuantity += r.OrderedQuantityNew
		row.TotalToProduce += r.TotalToProduce
		row.Orders = append(row.Orders, OrderColumn{
			ProductionOrderID:  r.ProductionOrderID,
			Sequence:           r.Sequence,
			OrderedQuantityNew: r.OrderedQuantityNew,
			ManualQuantity:     r.ManualQuantity,
			TotalToProduce:     r.TotalToProduce,
		})
	}

	col := collate.New(language.Spanish, collate.IgnoreCase)
	out := make([]AreaReport, 0, len(areas))
	for key, area := range areas {
		for _, row := range products[key] {
			sort.Slice(row.Orders, func(i, j int) bool { return row.Orders[i].Sequence < row.Orders[j].Sequence })
			area.Rows = append(area.Rows, *row)
			area.TotalOrderedQuantity += row.TotalOrderedQuantity
			area.TotalToProduce += row.TotalToProduce
		}
		sort.Slice(area.Rows, func(i, j int) bool {
			if c := col.CompareString(area.Rows[i].ProductName, area.Rows[j].ProductName); c != 0 {
				return c < 0
			}
			return area.Rows[i].ProductCode < area.Rows[j].ProductCode
		})
		out = append(out, *area)
	}
	sort.Slice(out, func(i, j int) bool {
		// the no-area group always goes last
		iNone, jNone := out[i].AreaID == nil, out[j].AreaID == nil
		if iNone != jNone {
			return jNone
		}
		return col.CompareString(out[i].AreaName, out[j].AreaName) < 0
	})
	return out
}

// DedupeCompanyCoverage sums excluded-company claims per product. The same
// order line claimed by several overlapping production orders counts once,
// with its largest claimed quantity.
func DedupeCompanyCoverage(rows []CompanyCoverageRow) map[uuid.UUID][]CompanyTotal {
	type lineKey struct{ product, line uuid.UUID }
	best := make(map[lineKey]CompanyCoverageRow)
	for _, r := range rows {
		k := lineKey{r.ProductID, r.OrderLineID}
		if prev, ok := best[k]; !ok || r.QuantityCovered > prev.QuantityCovered {
			best[k] = r
		}
	}

	type companyKey struct{ product, company uuid.UUID }
	sums := make(map[companyKey]*CompanyTotal)
	for _, r := range best {
		k := companyKey{r.ProductID, r.CompanyID}
		ct, ok := sums[k]
		if !ok {
			ct = &CompanyTotal{CompanyID: r.CompanyID, CompanyName: r.CompanyName}
			sums[k] = ct
		}
		ct.Quantity += r.QuantityCovered
	}

	out := make(map[uuid.UUID][]CompanyTotal)
	for k, ct := range sums {
		out[k.product] = append(out[k.product], *ct)
	}
	for _, list := range out {
		sort.Slice(list, func(i, j int) bool { return list[i].CompanyName < list[j].CompanyName })
	}
	return out
}

// LineProduction is the production progress of one customer order line
type LineProduction struct {
	OrderLineID        uuid.UUID              `json:"order_line_id"`
	ProductID          uuid.UUID              `json:"product_id"`
	ProductCode        string                 `json:"product_code"`
	ProductName        string                 `json:"product_name"`
	RequiredQuantity   int64                  `json:"required_quantity"`
	ProducedQuantity   int64                  `json:"produced_quantity"`
	PendingQuantity    int64                  `json:"pending_quantity"`
	CoveragePercentage decimal.Decimal        `json:"coverage_percentage"`
	Status             sales.ProductionStatus `json:"status"`
}

// ProductionSummary aggregates the lines of an order
type ProductionSummary struct {
	TotalProducts           int             `json:"total_products"`
	FullyProducedCount      int             `json:"fully_produced_count"`
	PartiallyProducedCount  int             `json:"partially_produced_count"`
	NotProducedCount        int             `json:"not_produced_count"`
	TotalCoveragePercentage decimal.Decimal `json:"total_coverage_percentage"`
}

// ProductionDetail is the production breakdown of a customer order
type ProductionDetail struct {
	CustomerOrderID uuid.UUID              `json:"customer_order_id"`
	OrderNumber     string                 `json:"order_number"`
	Status          sales.ProductionStatus `json:"production_status"`
	Summary         ProductionSummary      `json:"summary"`
	Lines           []LineProduction       `json:"lines"`
}

// LineStatus classifies produced against required quantities
func LineStatus(required, produced int64) sales.ProductionStatus {
	switch {
	case produced <= 0:
		return sales.ProductionStatusNotProduced
	case produced >= required:
		return sales.ProductionStatusFullyProduced
	default:
		return sales.ProductionStatusPartiallyProduced
	}
}

// CoveragePercentage is produced/required*100 rounded to one decimal, zero when nothing is required
func CoveragePercentage(required, produced int64) decimal.Decimal {
	if required <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(produced).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(required)).
		Round(1)
}

// BuildProductionDetail computes the breakdown of an order. Only lines that
// count for production are required; produced maps order line ids to the
// quantity claimed by executed production orders.
func BuildProductionDetail(order *sales.CustomerOrder, products map[uuid.UUID]ProductSnapshot, produced map[uuid.UUID]int64) ProductionDetail {
	d := ProductionDetail{
		CustomerOrderID: order.ID,
		OrderNumber:     order.OrderNumber,
		Lines:           make([]LineProduction, 0, len(order.Lines)),
	}

	var totalRequired, totalProduced int64
	for _, l := range order.Lines {
		if order.Status == sales.OrderStatusPartiallyScheduled && !l.PartiallyScheduled {
			continue
		}
		p := produced[l.ID]
		lp := LineProduction{
			OrderLineID:        l.ID,
			ProductID:          l.ProductID,
			ProductCode:        products[l.ProductID].Code,
			ProductName:        products[l.ProductID].Name,
			RequiredQuantity:   l.Quantity,
			ProducedQuantity:   p,
			PendingQuantity:    max(0, l.Quantity-p),
			CoveragePercentage: CoveragePercentage(l.Quantity, p),
			Status:             LineStatus(l.Quantity, p),
		}
		switch lp.Status {
		case sales.ProductionStatusFullyProduced:
			d.Summary.FullyProducedCount++
		case sales.ProductionStatusPartiallyProduced:
			d.Summary.PartiallyProducedCount++
		default:
			d.Summary.NotProducedCount++
		}
		totalRequired += l.Quantity
		totalProduced += p
		d.Lines = append(d.Lines, lp)
	}

	d.Summary.TotalProducts = len(d.Lines)
	d.Summary.TotalCoveragePercentage = CoveragePercentage(totalRequired, totalProduced)
	d.Status = OrderProductionStatus(d.Lines)
	return d
}

// OrderProductionStatus rolls line statuses up to the order
func OrderProductionStatus(lines []LineProduction) sales.ProductionStatus {
	if len(lines) == 0 {
		return sales.ProductionStatusNotProduced
	}
	full, started := 0, false
	for _, l := range lines {
		switch l.Status {
		case sales.ProductionStatusFullyProduced:
			full++
			started = true
		case sales.ProductionStatusPartiallyProduced:
			started = true
		}
	}
	switch {
	case full == len(lines):
		return sales.ProductionStatusFullyProduced
	case started:
		return sales.ProductionStatusPartiallyProduced
	}
	return sales.ProductionStatusNotProduced
}
