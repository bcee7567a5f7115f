// Package api exposes the upload, render and generate endpoints.
package api

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires all routes.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLog)

	r.HandleFunc("/api/v1/furniture", h.UploadFurniture).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/furniture", h.ListFurniture).Methods(http.MethodGet)
	r.HandleFunc("/api/v1/render", h.RenderScene).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/generate", h.GenerateRenderings).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/healthz", h.Healthz).Methods(http.MethodGet)

	return r
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[API] %s %s", r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}
