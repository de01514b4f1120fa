package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterDeps bundles everything the HTTP surface needs. All handlers are
// constructed by the caller so tests can swap in fakes.
type RouterDeps struct {
	Auth          *AuthMiddleware
	Handshakes    *HandshakeHandler
	Listings      *ListingHandler
	Notifications *NotificationHandler
	Reputation    *ReputationHandler
	Users         *UserHandler
	Files         *FilesHandler
}

// NewRouter builds the full route table. Everything under /api requires an
// authenticated institutional account; /healthz, /metrics and file serving
// stay public.
func NewRouter(deps RouterDeps) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware, MetricsMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/files/{key:.+}", deps.Files.Serve).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(deps.Auth.Handler)

	hs := api.PathPrefix("/handshakes").Subrouter()
	hs.HandleFunc("/initiate/{listingId}", deps.Handshakes.Initiate).Methods(http.MethodPost)
	hs.HandleFunc("/mine", deps.Handshakes.ListMine).Methods(http.MethodGet)
	hs.HandleFunc("/{id}", deps.Handshakes.Get).Methods(http.MethodGet)
	hs.HandleFunc("/{id}/accept", deps.Handshakes.Accept).Methods(http.MethodPost)
	hs.HandleFunc("/{id}/return", deps.Handshakes.MarkReturned).Methods(http.MethodPut)
	hs.HandleFunc("/{id}/confirm", deps.Handshakes.ConfirmReturn).Methods(http.MethodPost)
	hs.HandleFunc("/{id}/review", deps.Handshakes.SubmitReview).Methods(http.MethodPost)

	ls := api.PathPrefix("/listings").Subrouter()
	ls.HandleFunc("", deps.Listings.Create).Methods(http.MethodPost)
	ls.HandleFunc("", deps.Listings.ListAvailable).Methods(http.MethodGet)
	ls.HandleFunc("/mine", deps.Listings.ListMine).Methods(http.MethodGet)
	ls.HandleFunc("/{id}", deps.Listings.Get).Methods(http.MethodGet)
	ls.HandleFunc("/{id}", deps.Listings.Update).Methods(http.MethodPut)
	ls.HandleFunc("/{id}", deps.Listings.Remove).Methods(http.MethodDelete)

	nt := api.PathPrefix("/notifications").Subrouter()
	nt.HandleFunc("", deps.Notifications.List).Methods(http.MethodGet)
	nt.HandleFunc("/{id}/read", deps.Notifications.MarkAsRead).Methods(http.MethodPut)

	api.HandleFunc("/reputation/log", deps.Reputation.ListMyLog).Methods(http.MethodGet)

	api.HandleFunc("/users/me", deps.Users.GetMe).Methods(http.MethodGet)
	api.HandleFunc("/users/me", deps.Users.UpdateMe).Methods(http.MethodPut)

	return r
}
