package production

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/inventory"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
)

// CreateFromOrdersRequest creates a production order over selected customer orders
type CreateFromOrdersRequest struct {
	OrderIDs            []uuid.UUID `json:"order_ids" binding:"required,min=1"`
	PreparationDatetime time.Time   `json:"preparation_datetime" binding:"required"`
	ProductionAreaIDs   []uuid.UUID `json:"production_area_ids"`
	Description         string      `json:"description" binding:"max=500"`
}

// CreateFromDateRangeRequest creates a production order over a dispatch window.
// Dates use the YYYY-MM-DD layout.
type CreateFromDateRangeRequest struct {
	InitialDispatchDate string      `json:"initial_dispatch_date" binding:"required,datetime=2006-01-02"`
	FinalDispatchDate   string      `json:"final_dispatch_date" binding:"required,datetime=2006-01-02"`
	PreparationDatetime time.Time   `json:"preparation_datetime" binding:"required"`
	ProductionAreaIDs   []uuid.UUID `json:"production_area_ids"`
	Description         string      `json:"description" binding:"max=500"`
}

// AddOrUpdateProductRequest attaches a product or edits its manual quantity.
// A missing quantity keeps the current override; zero clears it.
type AddOrUpdateProductRequest struct {
	Quantity *int64 `json:"quantity"`
}

// SetStatusRequest changes the status of a production order
type SetStatusRequest struct {
	Status      string `json:"status" binding:"required,oneof=PENDING EXECUTED CANCELLED"`
	CancelledBy string `json:"cancelled_by" binding:"max=100"`
	Reason      string `json:"reason" binding:"max=500"`
}

// OrderLineChange reports an upstream edit of a customer order line
type OrderLineChange struct {
	LineID      uuid.UUID `json:"line_id" binding:"required"`
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	OldQuantity int64     `json:"old_quantity" binding:"min=0"`
	NewQuantity int64     `json:"new_quantity" binding:"min=0"`
	Deleted     bool      `json:"deleted"`
}

// ListFilter represents filter options for the production order list
type ListFilter struct {
	Status   string `form:"status" binding:"omitempty,oneof=PENDING EXECUTED CANCELLED"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID                 uuid.UUID `json:"id"`
	ProductID          uuid.UUID `json:"product_id"`
	OrderedQuantity    int64     `json:"ordered_quantity"`
	OrderedQuantityNew int64     `json:"ordered_quantity_new"`
	Quantity           int64     `json:"quantity"`
	TotalToProduce     int64     `json:"total_to_produce"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProductionOrderResponse represents a production order in API responses
type ProductionOrderResponse struct {
	ID                  uuid.UUID          `json:"id"`
	Sequence            int64              `json:"sequence"`
	PreparationDatetime time.Time          `json:"preparation_datetime"`
	InitialDispatchDate string             `json:"initial_dispatch_date"`
	FinalDispatchDate   string             `json:"final_dispatch_date"`
	Status              string             `json:"status"`
	CreationMode        string             `json:"creation_mode"`
	ProductionAreaIDs   []uuid.UUID        `json:"production_area_ids"`
	Description         string             `json:"description"`
	CancelledAt         *time.Time         `json:"cancelled_at,omitempty"`
	CancelledBy         string             `json:"cancelled_by,omitempty"`
	CancellationReason  string             `json:"cancellation_reason,omitempty"`
	LineItems           []LineItemResponse `json:"line_items,omitempty"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Version             int                `json:"version"`
}

// PivotOrderResponse is a claimed customer order
type PivotOrderResponse struct {
	OrderID      uuid.UUID `json:"order_id"`
	OrderNumber  string    `json:"order_number"`
	DispatchDate string    `json:"dispatch_date"`
	OrderStatus  string    `json:"order_status"`
	CompanyID    uuid.UUID `json:"company_id"`
}

// PivotLineResponse is a claimed customer order line
type PivotLineResponse struct {
	OrderID         uuid.UUID       `json:"order_id"`
	OrderLineID     uuid.UUID       `json:"order_line_id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductCode     string          `json:"product_code"`
	ProductName     string          `json:"product_name"`
	QuantityCovered int64           `json:"quantity_covered"`
	DispatchDate    string          `json:"dispatch_date"`
	OrderNumber     string          `json:"order_number"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// PivotResponse is the snapshot a production order claims
type PivotResponse struct {
	ProductionOrderID uuid.UUID            `json:"production_order_id"`
	Orders            []PivotOrderResponse `json:"orders"`
	Lines             []PivotLineResponse  `json:"lines"`
}

// LedgerLineResponse is one stock movement
type LedgerLineResponse struct {
	ProductID     uuid.UUID `json:"product_id"`
	StockBefore   int64     `json:"stock_before"`
	StockAfter    int64     `json:"stock_after"`
	Difference    int64     `json:"difference"`
	UnitOfMeasure string    `json:"unit_of_measure"`
}

// LedgerEntryResponse is the stock transaction of a status change
type LedgerEntryResponse struct {
	ID                 uuid.UUID            `json:"id"`
	Code               string               `json:"code"`
	Status             string               `json:"status"`
	WarehouseID        uuid.UUID            `json:"warehouse_id"`
	ExecutedAt         *time.Time           `json:"executed_at,omitempty"`
	CancelledAt        *time.Time           `json:"cancelled_at,omitempty"`
	CancelledBy        string               `json:"cancelled_by,omitempty"`
	CancellationReason string               `json:"cancellation_reason,omitempty"`
	Lines              []LedgerLineResponse `json:"lines"`
}

// SetStatusResponse carries the order after the change and the ledger entry it wrote, if any
type SetStatusResponse struct {
	Order  ProductionOrderResponse `json:"order"`
	Ledger *LedgerEntryResponse    `json:"ledger,omitempty"`
}

// RecomputeResponse reports a production status recompute run
type RecomputeResponse struct {
	Processed int `json:"processed"`
}

// ToProductionOrderResponse converts a domain ProductionOrder to a response
func ToProductionOrderResponse(o *production.ProductionOrder, items []production.LineItem) ProductionOrderResponse {
	resp := ProductionOrderResponse{
		ID:                  o.ID,
		Sequence:            o.Sequence,
		PreparationDatetime: o.PreparationDatetime,
		InitialDispatchDate: o.Window.Initial.Format(time.DateOnly),
		FinalDispatchDate:   o.Window.Final.Format(time.DateOnly),
		Status:              o.Status.String(),
		CreationMode:        o.Mode().Kind().String(),
		ProductionAreaIDs:   o.ProductionAreaIDs,
		Description:         o.Description,
		CancelledAt:         o.CancelledAt,
		CancelledBy:         o.CancelledBy,
		CancellationReason:  o.CancellationReason,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Version:             o.Version,
	}
	if resp.ProductionAreaIDs == nil {
		resp.ProductionAreaIDs = []uuid.UUID{}
	}
	if items != nil {
		resp.LineItems = make([]LineItemResponse, len(items))
		for i := range items {
			resp.LineItems[i] = ToLineItemResponse(&items[i])
		}
	}
	return resp
}

// ToLineItemResponse converts a domain LineItem to a response
func ToLineItemResponse(li *production.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:                 li.ID,
		ProductID:          li.ProductID,
		OrderedQuantity:    li.OrderedQuantity,
		OrderedQuantityNew: li.OrderedQuantityNew,
		Quantity:           li.Quantity,
		TotalToProduce:     li.TotalToProduce,
		UpdatedAt:          li.UpdatedAt,
	}
}

// ToPivotResponse converts a pivot snapshot to a response
func ToPivotResponse(productionOrderID uuid.UUID, p production.Pivot) PivotResponse {
	resp := PivotResponse{
		ProductionOrderID: productionOrderID,
		Orders:            make([]PivotOrderResponse, len(p.Orders)),
		Lines:             make([]PivotLineResponse, len(p.Lines)),
	}
	for i, o := range p.Orders {
		resp.Orders[i] = PivotOrderResponse{
			OrderID:      o.OrderID,
			OrderNumber:  o.OrderNumber,
			DispatchDate: o.DispatchDate.Format(time.DateOnly),
			OrderStatus:  o.OrderStatus,
			CompanyID:    o.CompanyID,
		}
	}
	for i, l := range p.Lines {
		resp.Lines[i] = PivotLineResponse{
			OrderID:         l.OrderID,
			OrderLineID:     l.OrderLineID,
			ProductID:       l.ProductID,
			ProductCode:     l.ProductCode,
			ProductName:     l.ProductName,
			QuantityCovered: l.QuantityCovered,
			DispatchDate:    l.DispatchDate.Format(time.DateOnly),
			OrderNumber:     l.OrderNumber,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      l.TotalPrice,
		}
	}
	return resp
}

// ToLedgerEntryResponse converts a ledger entry to a response; nil stays nil
func ToLedgerEntryResponse(e *inventory.LedgerEntry) *LedgerEntryResponse {
	if e == nil {
		return nil
	}
	resp := &LedgerEntryResponse{
		ID:                 e.ID,
		Code:               e.Code,
		Status:             e.Status.String(),
		WarehouseID:        e.WarehouseID,
		ExecutedAt:         e.ExecutedAt,
		CancelledAt:        e.CancelledAt,
		CancelledBy:        e.CancelledBy,
		CancellationReason: e.CancellationReason,
		Lines:              make([]LedgerLineResponse, len(e.Lines)),
	}
	for i, l := range e.Lines {
		resp.Lines[i] = LedgerLineResponse{
			ProductID:     l.ProductID,
			StockBefore:   l.StockBefore,
			StockAfter:    l.StockAfter,
			Difference:    l.Difference,
			UnitOfMeasure: l.UnitOfMeasure,
		}
	}
	return resp
}
