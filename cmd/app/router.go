package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"autoClassifieds/internal/config"
	handlers "autoClassifieds/internal/handler"
	"autoClassifieds/internal/middleware"
)

type RouterDeps struct {
	Handlers *handlers.Handlers
	Tokens   middleware.TokenVerifier
	Status   middleware.StatusRecorder
	Metrics  http.Handler
	HTTP     config.HTTP
}

func NewRouter(deps RouterDeps) http.Handler {
	h := deps.Handlers
	limiter := middleware.NewRateLimiter(deps.HTTP.RateLimitRPS, deps.HTTP.RateLimitBurst, 10*time.Minute)

	r := mux.NewRouter()
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics).Methods(http.MethodGet)
	}

	api := r.PathPrefix("/api").Subrouter()
	api.Use(mux.MiddlewareFunc(middleware.OptionalAuth(deps.Tokens)))

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	// auth
	api.HandleFunc("/auth/check-email", h.CheckEmail).Methods(http.MethodPost)
	api.Handle("/auth/login", limiter.Middleware(http.HandlerFunc(h.Login))).Methods(http.MethodPost)
	api.Handle("/auth/me", middleware.RequireAuth(http.HandlerFunc(h.Me))).Methods(http.MethodGet)

	// listings
	api.Handle("/listings", limiter.Middleware(http.HandlerFunc(h.PublishListing))).Methods(http.MethodPost)
	api.HandleFunc("/listings", h.ListListings).Methods(http.MethodGet)
	api.HandleFunc("/listings/{id}", h.GetListing).Methods(http.MethodGet)
	api.Handle("/listings/{id}", middleware.RequireAuth(http.HandlerFunc(h.EditListing))).Methods(http.MethodPut)
	api.Handle("/listings/{id}/status", middleware.RequireAuth(http.HandlerFunc(h.SetListingStatus))).Methods(http.MethodPatch)

	// admin
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/listings", h.AdminListListings).Methods(http.MethodGet)
	admin.HandleFunc("/listings/{id}", h.AdminDeleteListing).Methods(http.MethodDelete)
	admin.HandleFunc("/banners", h.AdminListBanners).Methods(http.MethodGet)
	admin.HandleFunc("/banners", h.AdminCreateBanner).Methods(http.MethodPost)

	return middleware.Chain(
		r,
		middleware.Logging(deps.Status),
		middleware.Recovery,
		middleware.CORS(deps.HTTP.AllowedOrigins),
	)
}
