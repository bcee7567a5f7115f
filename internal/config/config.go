// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs at startup.
type Config struct {
	Addr            string
	CanvasWidth     int
	CanvasHeight    int
	GeminiAPIKey    string
	GeminiModel     string
	GenerateTimeout time.Duration
}

// Load reads the environment. A missing .env file is fine; missing keys
// fall back to defaults, except the API key which stays empty (the
// generate endpoint then reports the generator as unavailable).
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[Config] skipping .env: %v", err)
	}
	return Config{
		Addr:            getenv("ROOMSTUDIO_ADDR", ":8080"),
		CanvasWidth:     getint("CANVAS_WIDTH", 900),
		CanvasHeight:    getint("CANVAS_HEIGHT", 600),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     os.Getenv("GEMINI_MODEL"),
		GenerateTimeout: time.Duration(getint("GENERATE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[Config] ignoring %s=%q: not a positive integer", key, v)
		return fallback
	}
	return n
}
