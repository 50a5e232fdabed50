package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Loans       *LoanHandler
	Evaluations *EvaluationHandler
	Packages    *PackageHandler
}

// NewRouter builds the API router. A nil limiter disables rate limiting.
func NewRouter(h Handlers, limiter *RateLimiter, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(instrument)
	if requestTimeout > 0 {
		r.Use(middleware.Timeout(requestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		if limiter != nil {
			r.Use(RateLimitMiddleware(limiter))
		}

		r.Post("/loan/calculate", h.Loans.CalculateLoan)
		r.Post("/loan/schedule", h.Loans.BuildSchedule)
		r.Post("/loan/risk", h.Evaluations.ClassifyRisk)
		r.Post("/loan/payment-status", h.Evaluations.PaymentStatus)
		r.Post("/loans/assess", h.Evaluations.AssessLoans)
		r.Post("/loans/payments/summary", h.Evaluations.SummarizePayments)

		r.Route("/packages", func(r chi.Router) {
			r.Post("/", h.Packages.Create)
			r.Get("/", h.Packages.List)
			r.Post("/eligible", h.Evaluations.EligiblePackages)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Packages.Get)
				r.Put("/", h.Packages.Update)
				r.Delete("/", h.Packages.Delete)
				r.Get("/quote", h.Packages.Quote)
				r.Post("/eligibility", h.Evaluations.CheckPackageEligibility)
			})
		})
	})

	return r
}
