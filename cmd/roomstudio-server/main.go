package main

import (
	"log"
	"net/http"

	"roomstudio/internal/api"
	"roomstudio/internal/catalog"
	"roomstudio/internal/compose"
	"roomstudio/internal/config"
	"roomstudio/internal/vision"
)

func main() {
	cfg := config.Load()

	handler := &api.Handler{
		Store:     catalog.NewStore(),
		Renderer:  compose.NewRenderer(cfg.CanvasWidth, cfg.CanvasHeight),
		Generator: vision.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GenerateTimeout),
	}

	router := api.NewRouter(handler)

	log.Printf("Server started at %s (canvas %dx%d)", cfg.Addr, cfg.CanvasWidth, cfg.CanvasHeight)
	log.Fatal(http.ListenAndServe(cfg.Addr, router))
}
