package handler

import (
	"github.com/gin-gonic/gin"
	appproduction "github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/application/production"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ProductionOrderHandler handles production order API endpoints
type ProductionOrderHandler struct {
	BaseHandler
	service *appproduction.ProductionOrderService
}

// NewProductionOrderHandler creates a new ProductionOrderHandler
func NewProductionOrderHandler(service *appproduction.ProductionOrderService) *ProductionOrderHandler {
	return &ProductionOrderHandler{service: service}
}

// CreateFromOrders godoc
// @ID           createProductionOrderFromOrders
//
//	@Summary		Create a production order from customer orders
//	@Description	Claims the PROCESSED and PARTIALLY_SCHEDULED orders among order_ids and computes one line item per product
//	@Tags			production-orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		appproduction.CreateFromOrdersRequest	true	"Selected customer orders"
//	@Success		201		{object}	APIResponse[appproduction.ProductionOrderResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/production/orders/from-orders [post]
func (h *ProductionOrderHandler) CreateFromOrders(c *gin.Context) {
	var req appproduction.CreateFromOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.service.CreateFromOrders(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// CreateFromDateRange godoc
// @ID           createProductionOrderFromDateRange
//
//	@Summary		Create a production order over a dispatch window
//	@Description	Creates an empty production order; products are attached afterwards
//	@Tags			production-orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		appproduction.CreateFromDateRangeRequest	true	"Dispatch window"
//	@Success		201		{object}	APIResponse[appproduction.ProductionOrderResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/production/orders/from-range [post]
func (h *ProductionOrderHandler) CreateFromDateRange(c *gin.Context) {
	var req appproduction.CreateFromDateRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.service.CreateFromDateRange(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List godoc
// @ID           listProductionOrders
//
//	@Summary		List production orders
//	@Tags			production-orders
//	@Produce		json
//	@Param			status		query		string	false	"Status filter"	Enums(PENDING, EXECUTED, CANCELLED)
//	@Param			page		query		int		false	"Page number"	default(1)
//	@Param			page_size	query		int		false	"Page size"		default(20)	maximum(100)
//	@Param			order_by	query		string	false	"Sort field"	default(created_at)
//	@Param			order_dir	query		string	false	"Sort order"	Enums(asc, desc)	default(desc)
//	@Success		200			{object}	APIResponse[[]appproduction.ProductionOrderResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/production/orders [get]
func (h *ProductionOrderHandler) List(c *gin.Context) {
	var filter appproduction.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID godoc
// @ID           getProductionOrderById
//
//	@Summary		Get a production order with its line items
//	@Tags			production-orders
//	@Produce		json
//	@Param			id	path		string	true	"Production order ID"	format(uuid)
//	@Success		200	{object}	APIResponse[appproduction.ProductionOrderResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/production/orders/{id} [get]
func (h *ProductionOrderHandler) GetByID(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "production order")
	if !ok {
		return
	}

	order, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Pivots godoc
// @ID           getProductionOrderPivots
//
//	@Summary		Get the customer orders and lines a production order claims
//	@Tags			production-orders
//	@Produce		json
//	@Param			id	path		string	true	"Production order ID"	format(uuid)
//	@Success		200	{object}	APIResponse[appproduction.PivotResponse]
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/production/orders/{id}/pivots [get]
func (h *ProductionOrderHandler) Pivots(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "production order")
	if !ok {
		return
	}

	pivots, err := h.service.Pivots(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, pivots)
}

// AddOrUpdateProduct godoc
// @ID           putProductionOrderProduct
//
//	@Summary		Attach a product or change its manual quantity
//	@Description	Recomputes the product's line item. A missing quantity keeps the stored override; zero clears it.
//	@Tags			production-orders
//	@Accept			json
//	@Produce		json
//	@Param			id			path		string									true	"Production order ID"	format(uuid)
//	@Param			product_id	path		string									true	"Product ID"			format(uuid)
//	@Param			request		body		appproduction.AddOrUpdateProductRequest	false	"Manual quantity"
//	@Success		200			{object}	APIResponse[appproduction.LineItemResponse]
//	@Failure		400			{object}	ErrorResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		422			{object}	ErrorResponse
//	@Failure		500			{object}	ErrorResponse
//	@Router			/production/orders/{id}/products/{product_id} [put]
func (h *ProductionOrderHandler) AddOrUpdateProduct(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "production order")
	if !ok {
		return
	}
	productID, ok := h.pathUUID(c, "product_id", "product")
	if !ok {
		return
	}

	var req appproduction.AddOrUpdateProductRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.ValidationError(c, err)
			return
		}
	}

	item, err := h.service.AddOrUpdateProduct(c.Request.Context(), id, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// SetStatus godoc
// @ID           setProductionOrderStatus
//
//	@Summary		Change the status of a production order
//	@Description	EXECUTED writes a stock ledger entry; cancelling an executed order reverts it
//	@Tags			production-orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Production order ID"	format(uuid)
//	@Param			request	body		appproduction.SetStatusRequest	true	"Target status"
//	@Success		200		{object}	APIResponse[appproduction.SetStatusResponse]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/production/orders/{id}/status [post]
func (h *ProductionOrderHandler) SetStatus(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "production order")
	if !ok {
		return
	}

	var req appproduction.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	ctx, log := logger.WithProductionOrderID(c.Request.Context(), logger.GetGinLogger(c), id.String())
	resp, err := h.service.SetStatus(ctx, id, req)
	if err != nil {
		log.Warn("Status change rejected", zap.String("status", req.Status), zap.Error(err))
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteProductionOrder
//
//	@Summary		Delete a cancelled production order
//	@Tags			production-orders
//	@Param			id	path	string	true	"Production order ID"	format(uuid)
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/production/orders/{id} [delete]
func (h *ProductionOrderHandler) Delete(c *gin.Context) {
	id, ok := h.pathUUID(c, "id", "production order")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// OrderLineChanged godoc
// @ID           postOrderLineChange
//
//	@Summary		Report a change to a customer order line
//	@Description	A decreased or deleted line recalculates the PENDING production orders claiming it
//	@Tags			production-orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		appproduction.OrderLineChange	true	"Line change"
//	@Success		200		{object}	APIResponse[LineChangeResult]
//	@Failure		400		{object}	ErrorResponse
//	@Failure		500		{object}	ErrorResponse
//	@Router			/production/order-line-changes [post]
func (h *ProductionOrderHandler) OrderLineChanged(c *gin.Context) {
	var change appproduction.OrderLineChange
	if err := c.ShouldBindJSON(&change); err != nil {
		h.ValidationError(c, err)
		return
	}

	n, err := h.service.OnOrderLineChanged(c.Request.Context(), change)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, LineChangeResult{Recomputed: n})
}
