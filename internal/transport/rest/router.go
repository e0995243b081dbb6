package rest

import "net/http"

// NewRouter registers the dictionary and health endpoints.
func NewRouter(health *HealthHandler, dict *DictionaryHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /api/search", dict.Search)
	mux.HandleFunc("GET /api/article", dict.Article)
	return mux
}
