package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/openbesluit/reportgen/internal/platform/logger"
)

// NewRouter builds the HTTP routing tree for the service.
func NewRouter(
	reports *ReportHandler,
	meetings *MeetingHandler,
	jobs *JobHandler,
	log *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/reports/{id}/generate", reports.GenerateReport)
	r.Get("/meetings/{id}/reports", meetings.ListReports)
	r.Post("/meetings/{id}/bundle", meetings.GenerateBundle)
	r.Post("/report-generation-jobs", jobs.SubmitJob)
	r.Get("/report-generation-jobs/{id}", jobs.GetJob)

	return r
}

// requestLogger attaches a request-scoped logger to the context so every
// log line down the call chain carries the request ID.
func requestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqLog := log.With(slog.String("request_id", middleware.GetReqID(r.Context())))
			ctx := logger.WithLogger(r.Context(), reqLog)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
