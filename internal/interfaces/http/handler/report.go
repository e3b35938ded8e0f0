package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	appproduction "github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/application/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// maxReportOrders caps how many production orders one report consolidates
const maxReportOrders = 100

// ReportHandler serves the production reports and the customer order
// production status endpoints
type ReportHandler struct {
	BaseHandler
	reports *appproduction.ReportService
	status  *appproduction.ProductionStatusService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reports *appproduction.ReportService, status *appproduction.ProductionStatusService) *ReportHandler {
	return &ReportHandler{reports: reports, status: status}
}

// ReportRows godoc
// @ID           getProductionReportRows
//
//	@Summary		Consolidated production report
//	@Description	Groups the line items of the given production orders by production area
//	@Tags			production-reports
//	@Produce		json
//	@Param			ids	query		string	true	"Comma separated production order IDs"
//	@Success		200	{object}	APIResponse[[]production.AreaReport]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/production/reports/rows [get]
func (h *ReportHandler) ReportRows(c *gin.Context) {
	ids, err := parseIDList(c.QueryArray("ids"))
	if err != nil {
		h.BadRequest(c, "Invalid production order ID format")
		return
	}
	if len(ids) == 0 {
		h.BadRequest(c, "At least one production order ID is required")
		return
	}
	if len(ids) > maxReportOrders {
		h.BadRequest(c, "Too many production orders in one report")
		return
	}

	rows, err := h.reports.ReportRows(c.Request.Context(), ids)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if rows == nil {
		rows = []production.AreaReport{}
	}

	h.Success(c, rows)
}

// ProductionDetail godoc
// @ID           getCustomerOrderProductionDetail
//
//	@Summary		Production detail of a customer order
//	@Description	Required and produced units per line, counting executed production orders only
//	@Tags			production-reports
//	@Produce		json
//	@Param			id	path		string	true	"Customer order ID"	format(uuid)
//	@Success		200	{object}	APIResponse[production.ProductionDetail]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/production/customer-orders/{id}/detail [get]
func (h *ReportHandler) ProductionDetail(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "customer order")
	if !ok {
		return
	}

	detail, err := h.reports.ProductionDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, detail)
}

// RecomputeStatus godoc
// @ID           recomputeCustomerOrderProductionStatus
//
//	@Summary		Recompute pending customer order production statuses
//	@Description	Processes one batch of customer orders queued for a production status update
//	@Tags			production-reports
//	@Produce		json
//	@Success		200	{object}	APIResponse[appproduction.RecomputeResponse]
//	@Failure		500	{object}	ErrorResponse
//	@Router			/production/customer-orders/production-status/recompute [post]
func (h *ReportHandler) RecomputeStatus(c *gin.Context) {
	n, err := h.status.RecomputePending(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	logger.GetGinLogger(c).Info("Production status recomputed", zap.Int("processed", n))
	h.Success(c, appproduction.RecomputeResponse{Processed: n})
}

// parseIDList accepts both ?ids=a,b and ?ids=a&ids=b
func parseIDList(values []string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	seen := make(map[uuid.UUID]struct{})
	for _, value := range values {
		for _, raw := range strings.Split(value, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, err
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
