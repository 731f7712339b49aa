package router

import (
	"github.com/gin-gonic/gin"

	"docex/internal/handler"
	"docex/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	allowedOrigins []string,
	invoiceH *handler.InvoiceHandler,
	orderH *handler.OrderHandler,
	refH *handler.ReferenceHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Liveness probe
	r.GET("/healthz", healthH.Healthz)

	api := r.Group("/api")
	api.GET("/health", healthH.Health)
	api.GET("/llm/status", healthH.LLMStatus)

	// Invoice extraction
	invoices := api.Group("/invoices")
	invoices.POST("/upload", invoiceH.Upload)
	invoices.POST("/extract", invoiceH.Extract)
	invoices.POST("/upload-stream", invoiceH.UploadStream)
	invoices.POST("/apply-edit", invoiceH.ApplyEdit)
	invoices.POST("/save-edited", invoiceH.SaveEdited)

	// Spreadsheet browsing
	db := api.Group("/database")
	db.GET("/orders", orderH.List)
	db.GET("/orders/:id", orderH.Get)
	db.GET("/details", orderH.ListDetails)
	db.GET("/products", refH.ListProducts)
	db.GET("/products/search", refH.SearchProducts)
	db.GET("/customers/:id", refH.GetCustomer)
	db.GET("/customers/search", refH.SearchCustomers)
	db.GET("/stats", statsH.Get)

	return r
}
