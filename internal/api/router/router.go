package router

import (
	"github.com/RoyceAzure/lab/storefront/internal/api"
	m "github.com/RoyceAzure/lab/storefront/internal/api/middleware"
	"github.com/RoyceAzure/lab/storefront/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))
	r.Use(m.RecoverMiddleware(logger))
	r.Use(m.AuthPayloadMiddleware(tokenMaker))

	// 公開路由
	r.Post("/signup", server.AuthHandler.Signup)
	r.Post("/signin", server.AuthHandler.Signin)
	r.Get("/categories", server.CatalogHandler.GetCategories)
	r.Get("/products", server.CatalogHandler.GetProducts)
	r.Get("/products/{id}", server.CatalogHandler.GetProduct)

	// 需登入
	r.Group(func(r chi.Router) {
		r.Use(m.AuthMiddleware)

		r.Post("/categories", server.CatalogHandler.CreateCategory)
		r.Post("/products", server.CatalogHandler.CreateProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Post("/", server.CartHandler.AddToCart)
			r.Get("/", server.CartHandler.GetCart)
			r.Get("/total_quantity", server.CartHandler.GetTotalQuantity)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", server.OrderHandler.PlaceOrder)
			r.Get("/", server.OrderHandler.GetOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
		})
	})

	// 管理員限定
	r.Group(func(r chi.Router) {
		r.Use(m.AdminMiddleware)

		r.Put("/products/{id}", server.CatalogHandler.UpdateProduct)
		r.Delete("/products/{id}", server.CatalogHandler.DeleteProduct)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/sales/top", server.AdminHandler.TopSales)
			r.Get("/sales/history", server.AdminHandler.SalesHistory)
			r.Get("/products/{id}/stats", server.AdminHandler.ProductStats)
			r.Get("/revenue", server.AdminHandler.Revenue)
			r.Patch("/products/{id}/restock", server.AdminHandler.Restock)
		})
	})

	return r
}
