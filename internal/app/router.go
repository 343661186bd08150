package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/linemk/farmconnect/internal/app/handlers"
	"github.com/linemk/farmconnect/internal/lib/logger/handlers/urllog"
	"github.com/linemk/farmconnect/internal/security/jwtmiddleware"
	"github.com/linemk/farmconnect/internal/service"
)

// Services - набор сервисов, которые обслуживает роутер
type Services struct {
	Auth     service.AuthServiceInterface
	Products service.ProductService
	Orders   service.OrderService
	Payments service.PaymentService
}

// NewRouter собирает chi-роутер со всеми эндпоинтами API
func NewRouter(log *slog.Logger, jwtSecret string, svc Services) http.Handler {
	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	router.Route("/api", func(r chi.Router) {
		// пользователи
		r.Post("/register", handlers.RegisterHandler(log, svc.Auth))
		r.Post("/login", handlers.LoginHandler(log, svc.Auth))

		// каталог товаров
		r.Route("/products", func(r chi.Router) {
			r.Post("/", handlers.CreateProductHandler(log, svc.Products))
			r.Get("/", handlers.ListProductsHandler(log, svc.Products))
			r.Get("/farmer/{id}", handlers.ListFarmerProductsHandler(log, svc.Products))
			r.Get("/{id}", handlers.GetProductHandler(log, svc.Products))
			r.Put("/{id}", handlers.UpdateProductHandler(log, svc.Products))
			r.Delete("/{id}", handlers.DeleteProductHandler(log, svc.Products))
		})

		r.Post("/payments", handlers.PaymentHandler(log, svc.Payments))

		// заказы
		r.Post("/orders", handlers.PlaceOrderHandler(log, svc.Orders))
		r.Get("/orders/buyer/{id}", handlers.BuyerOrdersHandler(log, svc.Orders))

		r.Group(func(r chi.Router) {
			r.Use(jwtmiddleware.NewJWTMiddleware(jwtSecret))
			r.Get("/users/me", handlers.ProfileHandler(log, svc.Auth))
		})
	})

	return router
}
