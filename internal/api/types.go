package api

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"

	"roomstudio/internal/catalog"
	"roomstudio/internal/scene"
	"roomstudio/internal/vision"
)

// SceneRequest is the serialized scene a client sends for rendering or
// generation. Placed images reference uploaded catalog items by id or
// carry inline base64 data.
type SceneRequest struct {
	Background BackgroundRequest    `json:"background"`
	Images     []PlacedImageRequest `json:"images"`
	Elements   []ElementRequest     `json:"elements"`
}

// BackgroundRequest sets either a fill color or a backdrop photo.
type BackgroundRequest struct {
	Color string `json:"color,omitempty"`
	Data  string `json:"data,omitempty"`
}

// PlacedImageRequest positions one furniture image on the canvas.
type PlacedImageRequest struct {
	ItemID string  `json:"itemId,omitempty"`
	Data   string  `json:"data,omitempty"`
	Name   string  `json:"name,omitempty"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ElementRequest is one committed annotation.
type ElementRequest struct {
	Kind        scene.Kind    `json:"kind"`
	Points      []scene.Point `json:"points"`
	Color       string        `json:"color"`
	StrokeWidth float64       `json:"strokeWidth"`
}

// FurnitureResponse describes a stored catalog item.
type FurnitureResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Thumbnail string `json:"thumbnail"`
}

// RenderResponse carries the flattened composite.
type RenderResponse struct {
	Image string `json:"image"`
	MIME  string `json:"mime"`
}

// GenerateRequest asks for photorealistic renderings of a composed scene.
type GenerateRequest struct {
	Scene       SceneRequest `json:"scene"`
	Description string       `json:"description"`
	Style       string       `json:"style"`
	Dimensions  string       `json:"dimensions"`
	Quantity    int          `json:"quantity"`
}

// GenerateResponse carries the rendered variants.
type GenerateResponse struct {
	Images []vision.Image `json:"images"`
}

// buildScene reconstructs a scene model from a request. It returns the
// display names of the furniture used, for the prompt builder.
func buildScene(store *catalog.Store, req SceneRequest, width, height int) (*scene.Scene, []string, error) {
	s := scene.New(width, height)

	switch {
	case req.Background.Data != "":
		raw, err := base64.StdEncoding.DecodeString(req.Background.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("background image: %w", err)
		}
		it, err := catalog.Decode("background", raw)
		if err != nil {
			return nil, nil, err
		}
		s.SetBackgroundImage(it.Raster)
	case req.Background.Color != "":
		s.SetBackgroundColor(req.Background.Color)
	}

	var names []string
	for i, pr := range req.Images {
		var raster *scene.Raster
		name := pr.Name
		switch {
		case pr.ItemID != "":
			id, err := uuid.Parse(pr.ItemID)
			if err != nil {
				return nil, nil, fmt.Errorf("image %d: bad item id %q", i, pr.ItemID)
			}
			item := store.Get(id)
			if item == nil {
				return nil, nil, fmt.Errorf("image %d: unknown item %s", i, pr.ItemID)
			}
			raster = item.Raster
			if name == "" {
				name = item.Name
			}
		case pr.Data != "":
			raw, err := base64.StdEncoding.DecodeString(pr.Data)
			if err != nil {
				return nil, nil, fmt.Errorf("image %d: %w", i, err)
			}
			item, err := catalog.Decode(name, raw)
			if err != nil {
				return nil, nil, err
			}
			raster = item.Raster
		default:
			return nil, nil, fmt.Errorf("image %d: neither itemId nor data", i)
		}

		pi := s.AddImage(raster)
		if pr.Width > 0 && pr.Height > 0 {
			if !pi.SetRect(pr.X, pr.Y, pr.Width, pr.Height) {
				return nil, nil, fmt.Errorf("image %d: size below minimum", i)
			}
		}
		if name != "" {
			names = append(names, name)
		}
	}

	for i, er := range req.Elements {
		if !scene.ValidKind(er.Kind) {
			return nil, nil, fmt.Errorf("element %d: unknown kind %q", i, er.Kind)
		}
		if len(er.Points) == 0 {
			return nil, nil, fmt.Errorf("element %d: no points", i)
		}
		if er.Kind.TwoPoint() && len(er.Points) != 2 {
			return nil, nil, fmt.Errorf("element %d: %s needs exactly two points", i, er.Kind)
		}
		color := er.Color
		if color == "" {
			color = "#000000"
		}
		sw := er.StrokeWidth
		if sw <= 0 {
			sw = 4
		}
		s.AppendElement(&scene.DrawnElement{
			ID:          uuid.New(),
			Kind:        er.Kind,
			Points:      er.Points,
			Color:       color,
			StrokeWidth: sw,
		})
	}

	return s, names, nil
}
