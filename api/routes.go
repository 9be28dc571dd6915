package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"loadboard/pkg/metrics"
)

func RegisterRoutes(h *Handler, m *metrics.Metrics) http.Handler {
	r := mux.NewRouter()
	r.Use(m.Middleware, h.logRequests)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)

	public := r.PathPrefix("/api").Subrouter()
	public.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)
	public.HandleFunc("/plans", h.Plans).Methods(http.MethodGet)
	public.HandleFunc("/truck-types", h.TruckTypes).Methods(http.MethodGet)

	private := r.PathPrefix("/api").Subrouter()
	private.Use(h.requireSession)
	private.HandleFunc("/auth/logout", h.Logout).Methods(http.MethodPost)
	private.HandleFunc("/auth/me", h.Me).Methods(http.MethodGet)
	private.HandleFunc("/auth/subscription", h.UpdateSubscription).Methods(http.MethodPut)
	private.HandleFunc("/auth/truck-types", h.UpdateTruckTypes).Methods(http.MethodPut)

	private.HandleFunc("/loads", h.Feed).Methods(http.MethodGet)
	private.HandleFunc("/loads", h.PostLoad).Methods(http.MethodPost)
	private.HandleFunc("/loads/scan", h.Scan).Methods(http.MethodPost)
	private.HandleFunc("/loads/{load_id}", h.GetLoad).Methods(http.MethodGet)
	private.HandleFunc("/loads/{load_id}/interest", h.ExpressInterest).Methods(http.MethodPost)
	private.HandleFunc("/loads/{load_id}/interest", h.RemoveInterest).Methods(http.MethodDelete)
	private.HandleFunc("/loads/{load_id}/drivers", h.InterestedDrivers).Methods(http.MethodGet)

	private.HandleFunc("/me/interested-loads", h.MyInterestedLoads).Methods(http.MethodGet)
	private.HandleFunc("/me/loads", h.MyLoads).Methods(http.MethodGet)
	private.HandleFunc("/drivers", h.Drivers).Methods(http.MethodGet)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	return handlers.RecoveryHandler()(cors(r))
}

func NewServer(port int, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
