package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomstudio/internal/catalog"
	"roomstudio/internal/compose"
	"roomstudio/internal/scene"
	"roomstudio/internal/vision"
)

type stubGenerator struct {
	prompt string
	count  int
}

func (g *stubGenerator) Generate(_ context.Context, prompt string, composite []byte, mime string, count int) ([]vision.Image, error) {
	g.prompt = prompt
	g.count = count
	return []vision.Image{{Data: base64.StdEncoding.EncodeToString(composite), MIME: mime}}, nil
}

func newTestRouter(t *testing.T) (*Handler, http.Handler) {
	t.Helper()
	h := &Handler{
		Store:     catalog.NewStore(),
		Renderer:  compose.NewRenderer(200, 150),
		Generator: &stubGenerator{},
	}
	return h, NewRouter(h)
}

func pngBase64(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	_, router := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRenderSceneRoundTrip(t *testing.T) {
	_, router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/render", SceneRequest{
		Background: BackgroundRequest{Color: "#FAF3DD"},
		Images: []PlacedImageRequest{
			{Data: pngBase64(t, 60, 40), Name: "sofa", X: 20, Y: 20, Width: 60, Height: 40},
		},
		Elements: []ElementRequest{
			{Kind: "rect", Points: pts(10, 10, 110, 60), Color: "#FF0000", StrokeWidth: 5},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp RenderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, compose.MIMEJPEG, resp.MIME)

	raw, err := base64.StdEncoding.DecodeString(resp.Image)
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestRenderEmptySceneSucceeds(t *testing.T) {
	_, router := newTestRouter(t)
	rec := postJSON(t, router, "/api/v1/render", SceneRequest{})
	assert.Equal(t, http.StatusOK, rec.Code, "empty composition is valid, not an error")
}

func TestRenderRejectsUnknownItem(t *testing.T) {
	_, router := newTestRouter(t)
	rec := postJSON(t, router, "/api/v1/render", SceneRequest{
		Images: []PlacedImageRequest{{ItemID: "0b8f6f47-9a3e-4a5e-9a51-0a2f3c9d7e11"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderRejectsBadElement(t *testing.T) {
	_, router := newTestRouter(t)
	rec := postJSON(t, router, "/api/v1/render", SceneRequest{
		Elements: []ElementRequest{{Kind: "line", Points: pts(1, 1), Color: "#000000"}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "two-point kinds need exactly two points")
}

func TestUploadAndListFurniture(t *testing.T) {
	_, router := newTestRouter(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", "sofa.png")
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(pngBase64(t, 120, 80))
	require.NoError(t, err)
	_, err = part.Write(raw)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("name", "grey sofa"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/furniture", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created FurnitureResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "grey sofa", created.Name)
	assert.Equal(t, 120, created.Width)
	assert.Equal(t, 80, created.Height)
	assert.NotEmpty(t, created.Thumbnail)

	listReq := httptest.NewRequest(http.MethodGet, "/api/v1/furniture", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	require.Equal(t, http.StatusOK, listRec.Code)

	var list []FurnitureResponse
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	// Render referencing the stored item by id.
	renderRec := postJSON(t, router, "/api/v1/render", SceneRequest{
		Images: []PlacedImageRequest{{ItemID: created.ID, X: 10, Y: 10, Width: 60, Height: 40}},
	})
	assert.Equal(t, http.StatusOK, renderRec.Code, renderRec.Body.String())
}

func TestGenerateUsesPromptAndComposite(t *testing.T) {
	h, router := newTestRouter(t)

	rec := postJSON(t, router, "/api/v1/generate", GenerateRequest{
		Scene: SceneRequest{
			Images: []PlacedImageRequest{{Data: pngBase64(t, 60, 40), Name: "oak table"}},
		},
		Description: "bright and airy",
		Style:       "scandinavian",
		Dimensions:  "4m x 5m",
		Quantity:    2,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp GenerateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Images, 1)
	assert.Equal(t, compose.MIMEJPEG, resp.Images[0].MIME)

	stub := h.Generator.(*stubGenerator)
	assert.Equal(t, 2, stub.count)
	assert.Contains(t, stub.prompt, "oak table")
	assert.Contains(t, stub.prompt, "scandinavian")
	assert.Contains(t, stub.prompt, "4m x 5m")
}

func pts(xy ...float64) []scene.Point {
	out := make([]scene.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, scene.Pt(xy[i], xy[i+1]))
	}
	return out
}
