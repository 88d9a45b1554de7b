package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"stocktrack/internal/http/handlers"
	"stocktrack/internal/web"
)

// NewRouter mounts the web UI, the swagger viewer and the JSON API. Reads and
// the UI are public; mutations require a JWT.
func NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(RateLimitMiddleware)

	// Server-rendered UI.
	r.Get("/", web.DashboardHandler)
	r.Get("/products", web.ProductsPageHandler)
	r.Post("/products/add", web.AddProductFormHandler)
	r.Post("/products/stock", web.RecordStockFormHandler)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)

		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/search", handlers.SearchProductsHandler)
		r.Get("/products/low-stock", handlers.LowStockProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Get("/products/{id}/transactions", handlers.GetTransactionsHandler)
		r.Get("/products/{id}/transactions/export", handlers.ExportTransactionsHandler)
		r.Get("/transactions", handlers.GetAllTransactionsHandler)

		r.Get("/reports/inventory", handlers.InventoryReportHandler)
		r.Get("/reports/sales", handlers.SalesReportHandler)
		r.Get("/reports/activity", handlers.ActivityReportHandler)
		r.Get("/reports/export", handlers.ExportReportHandler)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware)
			r.Post("/products", handlers.CreateProductHandler)
			r.Put("/products/{id}", handlers.UpdateProductHandler)
			r.Delete("/products/{id}", handlers.DeleteProductHandler)
			r.Post("/products/import", handlers.ImportProductsHandler)
			r.Post("/products/{id}/transactions", handlers.RecordTransactionHandler)
			r.Post("/reports/cache/clear", handlers.ClearReportCacheHandler)
		})
	})

	return r
}
