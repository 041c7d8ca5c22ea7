// Package server assembles the HTTP handler that fronts the RPC services.
package server

import (
	"net/http"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/groupledger/internal/auth"
	"github.com/mmynk/groupledger/internal/middleware"
	"github.com/mmynk/groupledger/pkg/api/apiconnect"
)

// Services are the RPC implementations served under their Connect paths.
type Services struct {
	Groups   apiconnect.GroupServiceHandler
	Expenses apiconnect.ExpenseServiceHandler
	Ledger   apiconnect.LedgerServiceHandler
}

// New returns the router: RPC services behind auth, logging and metrics
// interceptors, plus /healthz and /metrics.
func New(svc Services, jwtManager *auth.JWTManager, corsOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms", "Idempotency-Key"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)
	mount := func(path string, h http.Handler) {
		router.Handle(path+"*", h)
	}
	mount(apiconnect.NewGroupServiceHandler(svc.Groups, interceptors))
	mount(apiconnect.NewExpenseServiceHandler(svc.Expenses, interceptors))
	mount(apiconnect.NewLedgerServiceHandler(svc.Ledger, interceptors))

	return router
}
