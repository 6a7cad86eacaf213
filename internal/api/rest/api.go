package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/CameronXie/mealserve/internal/api/rest/handlers"
	"github.com/CameronXie/mealserve/internal/api/rest/middlewares"
)

type RouterConfig struct {
	SignupHandler            http.Handler
	PlaceOrderHandler        http.Handler
	ListPendingOrdersHandler http.Handler
	CompleteOrdersHandler    http.Handler
	RequestLogger            middlewares.Middleware
	AuthorisationMiddleware  middlewares.Middleware
}

// NewRouter registers the public routes and the authorised /api/v1 routes defined by cfg.
func NewRouter(cfg *RouterConfig) *mux.Router {
	router := mux.NewRouter()
	router.Use(cfg.RequestLogger.Handle)

	router.HandleFunc("/health", handlers.HealthHandler).Methods(http.MethodGet)
	router.Handle("/accounts/signup", cfg.SignupHandler).Methods(http.MethodPost)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(cfg.AuthorisationMiddleware.Handle)
	api.Handle("/stores/{id:[0-9]+}/orders", cfg.PlaceOrderHandler).Methods(http.MethodPost)
	api.Handle("/owner/orders", cfg.ListPendingOrdersHandler).Methods(http.MethodGet)
	api.Handle("/owner/customers/{id:[0-9]+}/orders/complete", cfg.CompleteOrdersHandler).Methods(http.MethodPost)

	return router
}
