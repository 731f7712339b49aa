package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docex/internal/domain"
	"docex/internal/port"
	"docex/internal/service"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100
)

// OrderHandler handles the order browsing endpoints.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func pageParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPerPage)))
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}

// List handles GET /api/database/orders
// @Summary List orders
// @Description List orders from the extracted workbook, the reference workbook, or both
// @Tags database
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Page size (max 100)"
// @Param source query string false "reference, extracted, or all (default extracted)"
// @Param customer_id query string false "Filter by customer id"
// @Success 200 {object} APIResponse{data=[]domain.Order} "One page of orders"
// @Failure 400 {object} APIResponse "Invalid source"
// @Router /database/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	page, perPage := pageParams(c)
	filter := port.OrderListFilter{
		Page:       page,
		PerPage:    perPage,
		CustomerID: c.Query("customer_id"),
		Source:     domain.OrderSource(c.Query("source")),
	}

	orders, total, err := h.orders.ListOrders(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, orders, NewPagMeta(page, perPage, total))
}

// Get handles GET /api/database/orders/:id
// @Summary Get one order
// @Description Get a single order with its line items
// @Tags database
// @Produce json
// @Param id path int true "Sales order id"
// @Success 200 {object} APIResponse{data=service.OrderWithDetails} "Order with line items"
// @Failure 404 {object} APIResponse "Order not found"
// @Router /database/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidation, "order id must be an integer")
		return
	}

	order, err := h.orders.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, order)
}

// ListDetails handles GET /api/database/details
// @Summary List order details
// @Description List the line rows of one order
// @Tags database
// @Produce json
// @Param order_id query int true "Sales order id"
// @Success 200 {object} APIResponse{data=[]domain.OrderDetail} "Line rows"
// @Failure 400 {object} APIResponse "Missing order_id"
// @Router /database/details [get]
func (h *OrderHandler) ListDetails(c *gin.Context) {
	orderID, err := strconv.Atoi(c.Query("order_id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidation, "order_id query parameter is required")
		return
	}

	details, err := h.orders.ListOrderDetails(c.Request.Context(), orderID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, details)
}
