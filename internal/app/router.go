package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"gorm.io/gorm"

	userhttp "github.com/tair/foodgram/internal/user/delivery/http"
	"github.com/tair/foodgram/pkg/database"
	"github.com/tair/foodgram/pkg/httpx"
)

type healthResponse struct {
	Status string `json:"status"`
}

// healthCheck pings the database
func healthCheck(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			httpx.RespondJSON(w, http.StatusServiceUnavailable, httpx.ErrorResponse{Error: "database unavailable"})
			return
		}
		httpx.RespondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}
}

// NewRouter mounts every route and wraps the result with CORS and tracing
func NewRouter(h *Handlers, db *gorm.DB, gatherer prometheus.Gatherer, corsOrigins []string) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(httpx.Recoverer, httpx.RequestLogger)

	api := router.PathPrefix("/api").Subrouter()
	h.User.RegisterRoutes(api)
	h.Recipe.RegisterRoutes(api)
	h.Recipe.RegisterRedirect(router)

	router.HandleFunc("/health", healthCheck(db)).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	userhttp.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return otelhttp.NewHandler(c.Handler(router), "foodgram-http")
}
