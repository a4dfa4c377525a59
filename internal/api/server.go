package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Server is the HTTP front of the service: the public widget routes under
// /apps/cod and the merchant routes under /api.
type Server struct {
	port    string
	router  *chi.Mux
	handler *OrderHandler
}

// NewServer creates and configures a Server.
func NewServer(port string, handler *OrderHandler) *Server {
	server := &Server{
		port:    port,
		handler: handler,
	}
	server.router = server.setupRouter()
	return server
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	address := fmt.Sprintf(":%s", s.port)
	fmt.Printf("HTTP server listening on %s\n", address)
	return http.ListenAndServe(address, otelhttp.NewHandler(s.router, "codgate-http"))
}

// setupRouter wires the routes.
func (s *Server) setupRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Public storefront routes. The widget runs on the shop's own domain,
	// so these need CORS with preflight support.
	router.Route("/apps/cod", func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Post("/order", s.handler.CreateOrder)
		r.Post("/partial", s.handler.CreatePartialCheckout)
		r.Get("/customer", s.handler.LookupCustomer)
		r.Get("/price", s.handler.QuotePrice)
		r.Options("/*", preflightHandler)
	})

	// Merchant dashboard routes.
	router.Route("/api", func(r chi.Router) {
		r.Post("/order/{orderName}/status", s.handler.UpdateStatus)
		r.Get("/orders", s.handler.ListOrders)
	})

	router.Handle("/metrics", promhttp.Handler())

	return router
}

// corsMiddleware opens the public endpoints to cross-origin storefronts.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		setCORSHeaders(w)
		next.ServeHTTP(w, r)
	})
}

// preflightHandler answers the widget's CORS preflight with a no-op.
func preflightHandler(w http.ResponseWriter, _ *http.Request) {
	setCORSHeaders(w)
	w.WriteHeader(http.StatusNoContent)
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}
