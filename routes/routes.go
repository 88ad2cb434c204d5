package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"roadwaysledger/handlers"
	"roadwaysledger/logger"
	"roadwaysledger/metrics"
)

// SetupRoutes builds the REST surface consumed by the ledger UI.
func SetupRoutes(
	userHandler *handlers.UserHandler,
	biltyHandler *handlers.BiltyHandler,
	initialHandler *handlers.InitialHandler,
	corsOrigins []string,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogger(log), metricsMiddleware)

	wrap := handlers.RecoverWrapper

	api := r.PathPrefix("/api").Subrouter()

	// User routes
	api.HandleFunc("/login", wrap(userHandler.Login)).Methods(http.MethodPost)
	api.HandleFunc("/users", wrap(userHandler.Signup)).Methods(http.MethodPost)

	// Bilty routes
	api.HandleFunc("/bilty", wrap(biltyHandler.ListBilty)).Methods(http.MethodGet)
	api.HandleFunc("/bilty", wrap(biltyHandler.CreateBilty)).Methods(http.MethodPost)
	api.HandleFunc("/bilty/{id:[0-9]+}", wrap(biltyHandler.GetBilty)).Methods(http.MethodGet)
	api.HandleFunc("/bilty/{id:[0-9]+}", wrap(biltyHandler.UpdateBilty)).Methods(http.MethodPut)
	api.HandleFunc("/bilty/{id:[0-9]+}", wrap(biltyHandler.DeleteBilty)).Methods(http.MethodDelete)

	// Company profile
	api.HandleFunc("/initial", wrap(initialHandler.GetInitial)).Methods(http.MethodGet)
	api.HandleFunc("/initial", wrap(initialHandler.SaveInitial)).Methods(http.MethodPost)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         300,
	})
	return c.Handler(r)
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}

// routeName keeps metric labels bounded by using the route template.
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeName(r)
		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func requestLogger(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.statusCode,
				"duration_ms", time.Since(start).Milliseconds(),
				"request_id", r.Header.Get("X-Request-ID"),
			)
		})
	}
}
