package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"log"
	"net/http"

	"roomstudio/internal/catalog"
	"roomstudio/internal/compose"
	"roomstudio/internal/vision"
)

// maxUploadBytes bounds furniture photo uploads.
const maxUploadBytes = 32 << 20

// Handler holds the dependencies for the HTTP surface.
type Handler struct {
	Store     *catalog.Store
	Renderer  *compose.Renderer
	Generator vision.ImageGenerator
}

// UploadFurniture ingests one furniture photo from a multipart form. Field
// "image" carries the file, optional field "name" overrides the filename.
func (h *Handler) UploadFurniture(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		log.Printf("[Furniture] parse form: %v", err)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		http.Error(w, "failed to read upload", http.StatusBadRequest)
		log.Printf("[Furniture] read upload: %v", err)
		return
	}

	name := r.FormValue("name")
	if name == "" {
		name = header.Filename
	}

	item, err := catalog.Decode(name, data)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, catalog.ErrUnsupportedFormat) {
			status = http.StatusUnsupportedMediaType
		}
		http.Error(w, err.Error(), status)
		log.Printf("[Furniture] decode %q: %v", name, err)
		return
	}
	h.Store.Add(item)

	writeJSON(w, http.StatusCreated, furnitureResponse(item))
	log.Printf("[Furniture] stored %q as %s", item.Name, item.ID)
}

// ListFurniture returns all stored items with thumbnails.
func (h *Handler) ListFurniture(w http.ResponseWriter, r *http.Request) {
	items := h.Store.List()
	out := make([]FurnitureResponse, 0, len(items))
	for _, it := range items {
		out = append(out, furnitureResponse(it))
	}
	writeJSON(w, http.StatusOK, out)
}

// RenderScene flattens a serialized scene into a JPEG composite. An empty
// scene is valid and yields a background-only frame.
func (h *Handler) RenderScene(w http.ResponseWriter, r *http.Request) {
	var req SceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, _, err := buildScene(h.Store, req, h.Renderer.Width, h.Renderer.Height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Printf("[Render] build scene: %v", err)
		return
	}

	data, mime, err := h.Renderer.Flatten(s)
	if err != nil {
		http.Error(w, "failed to flatten scene", http.StatusInternalServerError)
		log.Printf("[Render] flatten: %v", err)
		return
	}

	writeJSON(w, http.StatusOK, RenderResponse{
		Image: base64.StdEncoding.EncodeToString(data),
		MIME:  mime,
	})
}

// GenerateRenderings flattens the scene, assembles the prompt, and asks
// the image model for photorealistic variants.
func (h *Handler) GenerateRenderings(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, names, err := buildScene(h.Store, req.Scene, h.Renderer.Width, h.Renderer.Height)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		log.Printf("[Generate] build scene: %v", err)
		return
	}

	composite, mime, err := h.Renderer.Flatten(s)
	if err != nil {
		http.Error(w, "failed to flatten scene", http.StatusInternalServerError)
		log.Printf("[Generate] flatten: %v", err)
		return
	}

	prompt := vision.BuildPrompt(vision.PromptSpec{
		Description: req.Description,
		Style:       req.Style,
		Dimensions:  req.Dimensions,
		Furniture:   names,
	})

	images, err := h.Generator.Generate(r.Context(), prompt, composite, mime, req.Quantity)
	if err != nil {
		http.Error(w, "rendering generation failed", http.StatusBadGateway)
		log.Printf("[Generate] %v", err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{Images: images})
	log.Printf("[Generate] produced %d rendering(s)", len(images))
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func furnitureResponse(it *catalog.Item) FurnitureResponse {
	w, hgt := it.Raster.Size()
	var buf bytes.Buffer
	if err := png.Encode(&buf, it.Thumbnail()); err != nil {
		log.Printf("[Furniture] thumbnail %s: %v", it.ID, err)
	}
	return FurnitureResponse{
		ID:        it.ID.String(),
		Name:      it.Name,
		Width:     w,
		Height:    hgt,
		Thumbnail: base64.StdEncoding.EncodeToString(buf.Bytes()),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}
