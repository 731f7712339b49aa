package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docex/internal/service"
)

// ReferenceHandler handles the product and customer catalog endpoints.
type ReferenceHandler struct {
	ref *service.ReferenceService
}

// NewReferenceHandler creates a new ReferenceHandler.
func NewReferenceHandler(ref *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{ref: ref}
}

// ListProducts handles GET /api/database/products
// @Summary List products
// @Tags database
// @Produce json
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Page size (max 100)"
// @Success 200 {object} APIResponse{data=[]domain.Product} "One page of products"
// @Router /database/products [get]
func (h *ReferenceHandler) ListProducts(c *gin.Context) {
	page, perPage := pageParams(c)
	products, total, err := h.ref.ListProducts(c.Request.Context(), page, perPage)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, products, NewPagMeta(page, perPage, total))
}

// SearchProducts handles GET /api/database/products/search
// @Summary Look up a product by number
// @Tags database
// @Produce json
// @Param product_number query string true "Exact product number"
// @Success 200 {object} APIResponse{data=domain.Product} "Matching product"
// @Failure 404 {object} APIResponse "Product not found"
// @Router /database/products/search [get]
func (h *ReferenceHandler) SearchProducts(c *gin.Context) {
	number := c.Query("product_number")
	if number == "" {
		RespondError(c, http.StatusBadRequest, CodeValidation, "product_number query parameter is required")
		return
	}

	product, err := h.ref.GetProductByNumber(c.Request.Context(), number)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, product)
}

// GetCustomer handles GET /api/database/customers/:id
// @Summary Get one customer
// @Tags database
// @Produce json
// @Param id path int true "Customer id"
// @Success 200 {object} APIResponse{data=domain.Customer} "Matching customer"
// @Failure 404 {object} APIResponse "Customer not found"
// @Router /database/customers/{id} [get]
func (h *ReferenceHandler) GetCustomer(c *gin.Context) {
	customerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, CodeValidation, "customer id must be an integer")
		return
	}

	customer, err := h.ref.GetCustomer(c.Request.Context(), customerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customer)
}

// SearchCustomers handles GET /api/database/customers/search
// @Summary Search customers by name
// @Tags database
// @Produce json
// @Param q query string true "Name substring, case-insensitive"
// @Param limit query int false "Maximum matches (default 10)"
// @Success 200 {object} APIResponse{data=[]domain.Customer} "Matching customers"
// @Router /database/customers/search [get]
func (h *ReferenceHandler) SearchCustomers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		RespondError(c, http.StatusBadRequest, CodeValidation, "q query parameter is required")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}

	customers, err := h.ref.SearchCustomers(c.Request.Context(), query, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, customers)
}
