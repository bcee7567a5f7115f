package main

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"roomstudio/internal/catalog"
	"roomstudio/internal/compose"
	"roomstudio/internal/editor"
	"roomstudio/internal/scene"
)

const (
	screenWidth  = 1280
	screenHeight = 800
	fontSize     = 10
	leftPanel    = 100
	rightPanel   = 200
	topBar       = 50

	canvasWidth  = 900
	canvasHeight = 600
)

// GUI Control types
type Button struct {
	rect     rl.Rectangle
	text     string
	hover    bool
	selected bool
}

type Slider struct {
	rect  rl.Rectangle
	value float32
	min   float32
	max   float32
	label string
}

// furniture is one loaded photo shown in the right-panel strip.
type furniture struct {
	name   string
	raster *scene.Raster
	tex    rl.Texture2D
	hasTex bool
}

// Application state
type App struct {
	scene    *scene.Scene
	editor   *editor.Editor
	renderer *compose.Renderer

	decodes   chan catalog.DecodeResult
	furniture []*furniture

	toolButtons  []Button
	colorPalette []string
	bgPalette    []string
	sizeSlider   Slider

	canvasTex       rl.Texture2D
	pixels          []color.RGBA
	pointerInCanvas bool
	statusMsg       string
}

// Initialize application
func NewApp() *App {
	s := scene.New(canvasWidth, canvasHeight)
	app := &App{
		scene:    s,
		editor:   editor.New(s),
		renderer: compose.NewRenderer(canvasWidth, canvasHeight),
		decodes:  make(chan catalog.DecodeResult, 16),
	}

	// Initialize tool buttons
	tools := []editor.Tool{
		editor.ToolSelect, editor.ToolFreehand, editor.ToolEraser,
		editor.ToolLine, editor.ToolRect, editor.ToolCircle,
	}
	x := float32(10)
	y := float32(50)
	for i, t := range tools {
		app.toolButtons = append(app.toolButtons, Button{
			rect:     rl.Rectangle{X: x + float32(i%2)*40, Y: y + float32(i/2)*40, Width: 36, Height: 36},
			text:     t.String()[:1],
			selected: t == app.editor.Tool(),
		})
	}

	// Initialize stroke color palette
	app.colorPalette = []string{
		"#000000", "#FFFFFF", "#FF0000", "#00A550", "#1E3FCC",
		"#FFD500", "#FF7F00", "#7F3FBF", "#FF69B4", "#8B5A2B",
		"#808080", "#404040", "#C0C0C0", "#87CEEB", "#FF00FF",
	}
	// Background fills share the palette but act on the scene.
	app.bgPalette = []string{"#FFFFFF", "#F5F0E8", "#E8E8E8", "#D9E4DD", "#FAF3DD"}

	// Initialize stroke size slider
	app.sizeSlider = Slider{
		rect:  rl.Rectangle{X: 10, Y: 330, Width: 80, Height: 20},
		value: float32(app.editor.StrokeWidth()),
		min:   1,
		max:   30,
		label: "SIZE",
	}

	return app
}

// LoadFurnitureDir queues every image in dir for asynchronous decode. The
// canvas stays responsive; each photo appears in the strip once ready.
func (app *App) LoadFurnitureDir(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("[Catalog] read %s: %v", dir, err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("[Catalog] read %s: %v", path, err)
			continue
		}
		raster := catalog.LoadAsync(entry.Name(), data, app.decodes)
		app.furniture = append(app.furniture, &furniture{name: entry.Name(), raster: raster})
	}
}

// drainDecodes applies finished decodes on the UI loop.
func (app *App) drainDecodes() {
	for {
		select {
		case res := <-app.decodes:
			if res.Err != nil {
				log.Printf("[Catalog] %v", res.Err)
				app.statusMsg = fmt.Sprintf("FAILED TO LOAD %s", res.Name)
				continue
			}
			res.Apply()
		default:
			return
		}
	}
}

// Screen to canvas coordinates
func screenToCanvas(mousePos rl.Vector2) scene.Point {
	return scene.Pt(float64(mousePos.X-leftPanel), float64(mousePos.Y-topBar))
}

func inCanvas(mousePos rl.Vector2) bool {
	return mousePos.X > leftPanel && mousePos.X < leftPanel+canvasWidth &&
		mousePos.Y > topBar && mousePos.Y < topBar+canvasHeight
}

// Update application
func (app *App) Update() {
	app.drainDecodes()

	mousePos := rl.GetMousePosition()

	// Handle tool buttons
	tools := []editor.Tool{
		editor.ToolSelect, editor.ToolFreehand, editor.ToolEraser,
		editor.ToolLine, editor.ToolRect, editor.ToolCircle,
	}
	for i := range app.toolButtons {
		btn := &app.toolButtons[i]
		btn.hover = rl.CheckCollisionPointRec(mousePos, btn.rect)

		if btn.hover && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			for j := range app.toolButtons {
				app.toolButtons[j].selected = false
			}
			btn.selected = true
			app.editor.SetTool(tools[i])
		}
	}

	// Handle stroke color palette (hidden while the eraser is armed)
	if app.editor.Tool() != editor.ToolEraser {
		paletteY := float32(380)
		for i, hex := range app.colorPalette {
			x := float32(10 + (i%3)*28)
			y := paletteY + float32(i/3)*28
			rect := rl.Rectangle{X: x, Y: y, Width: 24, Height: 24}
			if rl.CheckCollisionPointRec(mousePos, rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
				app.editor.SetStrokeColor(hex)
			}
		}
	}

	// Handle background fills
	bgY := float32(560)
	for i, hex := range app.bgPalette {
		rect := rl.Rectangle{X: float32(10 + (i%3)*28), Y: bgY + float32(i/3)*28, Width: 24, Height: 24}
		if rl.CheckCollisionPointRec(mousePos, rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			app.scene.SetBackgroundColor(hex)
		}
	}

	// Handle stroke size slider
	if rl.CheckCollisionPointRec(mousePos, app.sizeSlider.rect) && rl.IsMouseButtonDown(rl.MouseLeftButton) {
		relX := mousePos.X - app.sizeSlider.rect.X
		app.sizeSlider.value = app.sizeSlider.min + (relX/app.sizeSlider.rect.Width)*(app.sizeSlider.max-app.sizeSlider.min)
		app.sizeSlider.value = clamp(app.sizeSlider.value, app.sizeSlider.min, app.sizeSlider.max)
		app.editor.SetStrokeWidth(float64(app.sizeSlider.value))
	}

	// Handle furniture strip: click places the photo, shift+click makes it
	// the room backdrop.
	thumbY := float32(topBar + 10)
	for _, f := range app.furniture {
		rect := rl.Rectangle{X: screenWidth - rightPanel + 10, Y: thumbY, Width: rightPanel - 20, Height: 70}
		thumbY += 80
		if rl.CheckCollisionPointRec(mousePos, rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
				app.scene.SetBackgroundImage(f.raster)
				app.statusMsg = fmt.Sprintf("BACKDROP: %s", f.name)
			} else {
				app.scene.AddImage(f.raster)
				app.statusMsg = fmt.Sprintf("PLACED: %s", f.name)
			}
		}
	}

	// Pointer events over the canvas
	if inCanvas(mousePos) {
		app.pointerInCanvas = true
		p := screenToCanvas(mousePos)

		if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			app.editor.PointerDown(p)
		} else {
			app.editor.PointerMove(p)
		}
		if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
			app.editor.PointerUp()
		}

		switch app.editor.CursorAt(p) {
		case editor.CursorResizeNWSE:
			rl.SetMouseCursor(rl.MouseCursorResizeNWSE)
		case editor.CursorResizeNESW:
			rl.SetMouseCursor(rl.MouseCursorResizeNESW)
		case editor.CursorMove:
			rl.SetMouseCursor(rl.MouseCursorResizeAll)
		default:
			rl.SetMouseCursor(rl.MouseCursorCrosshair)
		}
	} else if app.pointerInCanvas {
		app.editor.PointerLeave()
		app.pointerInCanvas = false
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}

	// Export the flattened composite
	if rl.IsKeyDown(rl.KeyLeftControl) && rl.IsKeyPressed(rl.KeyS) {
		data, _, err := app.renderer.Flatten(app.scene)
		if err != nil {
			log.Printf("[Export] %v", err)
			return
		}
		if err := os.WriteFile("composition.jpg", data, 0o644); err != nil {
			log.Printf("[Export] write composition.jpg: %v", err)
			return
		}
		app.statusMsg = "SAVED composition.jpg"
		log.Printf("[Export] wrote composition.jpg (%d bytes)", len(data))
	}
}

// uploadFrame copies the composed CPU frame into the canvas texture.
func (app *App) uploadFrame(frame *image.RGBA) {
	if app.pixels == nil {
		app.pixels = make([]color.RGBA, canvasWidth*canvasHeight)
	}
	for i := range app.pixels {
		app.pixels[i] = color.RGBA{
			R: frame.Pix[i*4+0],
			G: frame.Pix[i*4+1],
			B: frame.Pix[i*4+2],
			A: frame.Pix[i*4+3],
		}
	}
	rl.UpdateTexture(app.canvasTex, app.pixels)
}

// Draw application
func (app *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 40, G: 40, B: 40, A: 255})

	mousePos := rl.GetMousePosition()

	// Compose the frame with the editor overlay
	ov := compose.Overlay{
		Current:  app.editor.Current(),
		Selected: app.editor.SelectedImage(),
	}
	if at, w, ok := app.editor.BrushPreview(); ok {
		ov.BrushAt = &at
		ov.BrushWidth = w
	}
	app.uploadFrame(app.renderer.Frame(app.scene, ov))

	// Draw left toolbar
	rl.DrawRectangle(0, 0, leftPanel, screenHeight, rl.Color{R: 50, G: 50, B: 50, A: 255})
	rl.DrawText("ROOM STUDIO", 10, 10, fontSize, rl.White)
	rl.DrawText("TOOLS", 10, 35, fontSize, rl.LightGray)

	tools := []editor.Tool{
		editor.ToolSelect, editor.ToolFreehand, editor.ToolEraser,
		editor.ToolLine, editor.ToolRect, editor.ToolCircle,
	}
	for i, btn := range app.toolButtons {
		fill := rl.Color{R: 70, G: 70, B: 70, A: 255}
		if btn.selected {
			fill = rl.Color{R: 100, G: 100, B: 150, A: 255}
		} else if btn.hover {
			fill = rl.Color{R: 80, G: 80, B: 80, A: 255}
		}
		rl.DrawRectangleRec(btn.rect, fill)
		rl.DrawRectangleLinesEx(btn.rect, 1, rl.Color{R: 90, G: 90, B: 90, A: 255})

		textX := int32(btn.rect.X + btn.rect.Width/2 - 4)
		textY := int32(btn.rect.Y + btn.rect.Height/2 - 4)
		rl.DrawText(btn.text, textX, textY, fontSize, rl.White)

		if btn.hover {
			rl.DrawText(tools[i].String(), int32(mousePos.X+10), int32(mousePos.Y), fontSize, rl.Yellow)
		}
	}

	// Draw stroke size slider
	rl.DrawText(app.sizeSlider.label, int32(app.sizeSlider.rect.X), int32(app.sizeSlider.rect.Y-12), fontSize, rl.LightGray)
	rl.DrawRectangleRec(app.sizeSlider.rect, rl.Color{R: 60, G: 60, B: 60, A: 255})
	sliderPos := app.sizeSlider.rect.X + (app.sizeSlider.value-app.sizeSlider.min)/(app.sizeSlider.max-app.sizeSlider.min)*app.sizeSlider.rect.Width
	rl.DrawRectangle(int32(sliderPos-2), int32(app.sizeSlider.rect.Y), 4, int32(app.sizeSlider.rect.Height), rl.White)
	rl.DrawText(fmt.Sprintf("%.0f", app.editor.StrokeWidth()), int32(app.sizeSlider.rect.X), int32(app.sizeSlider.rect.Y+25), fontSize, rl.White)

	// Draw stroke color palette (hidden for the eraser)
	if app.editor.Tool() != editor.ToolEraser {
		rl.DrawText("COLORS", 10, 365, fontSize, rl.LightGray)
		paletteY := float32(380)
		for i, hex := range app.colorPalette {
			x := float32(10 + (i%3)*28)
			y := paletteY + float32(i/3)*28
			rect := rl.Rectangle{X: x, Y: y, Width: 24, Height: 24}
			rl.DrawRectangleRec(rect, hexToRL(hex))
			if app.editor.StrokeColor() == hex {
				rl.DrawRectangleLinesEx(rect, 2, rl.White)
			} else {
				rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 70, G: 70, B: 70, A: 255})
			}
		}
	}

	// Draw background fills
	rl.DrawText("BACKGROUND", 10, 545, fontSize, rl.LightGray)
	bgY := float32(560)
	for i, hex := range app.bgPalette {
		rect := rl.Rectangle{X: float32(10 + (i%3)*28), Y: bgY + float32(i/3)*28, Width: 24, Height: 24}
		rl.DrawRectangleRec(rect, hexToRL(hex))
		if app.scene.Background.Color == hex {
			rl.DrawRectangleLinesEx(rect, 2, rl.White)
		} else {
			rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 70, G: 70, B: 70, A: 255})
		}
	}

	// Draw right panel (furniture strip)
	rl.DrawRectangle(screenWidth-rightPanel, 0, rightPanel, screenHeight, rl.Color{R: 50, G: 50, B: 50, A: 255})
	rl.DrawText("FURNITURE", screenWidth-rightPanel+10, 10, fontSize, rl.White)
	rl.DrawText("CLICK: PLACE", screenWidth-rightPanel+10, 25, fontSize, rl.LightGray)
	rl.DrawText("SHIFT+CLICK: BACKDROP", screenWidth-rightPanel+10, 37, fontSize, rl.LightGray)

	thumbY := float32(topBar + 10)
	for _, f := range app.furniture {
		rect := rl.Rectangle{X: screenWidth - rightPanel + 10, Y: thumbY, Width: rightPanel - 20, Height: 70}
		thumbY += 80

		rl.DrawRectangleRec(rect, rl.Color{R: 60, G: 60, B: 60, A: 255})
		if f.raster.Ready() {
			if !f.hasTex {
				f.tex = rl.LoadTextureFromImage(rl.NewImageFromImage(f.raster.Image()))
				f.hasTex = true
			}
			src := rl.Rectangle{Width: float32(f.tex.Width), Height: float32(f.tex.Height)}
			dst := rl.Rectangle{X: rect.X + 2, Y: rect.Y + 2, Width: 56, Height: 56}
			rl.DrawTexturePro(f.tex, src, dst, rl.Vector2{}, 0, rl.White)
		} else {
			rl.DrawText("LOADING", int32(rect.X+4), int32(rect.Y+24), fontSize, rl.Gray)
		}
		rl.DrawText(f.name, int32(rect.X+62), int32(rect.Y+28), fontSize, rl.White)
		rl.DrawRectangleLinesEx(rect, 1, rl.Color{R: 70, G: 70, B: 70, A: 255})
	}

	// Draw top bar
	rl.DrawRectangle(leftPanel, 0, screenWidth-leftPanel-rightPanel, topBar, rl.Color{R: 60, G: 60, B: 60, A: 255})
	info := fmt.Sprintf("TOOL: %s | SIZE: %.0f | CTRL+S: EXPORT", app.editor.Tool(), app.editor.StrokeWidth())
	if app.statusMsg != "" {
		info += " | " + app.statusMsg
	}
	rl.DrawText(info, leftPanel+10, 20, fontSize, rl.White)

	// Draw canvas
	rl.DrawTexture(app.canvasTex, leftPanel, topBar, rl.White)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: leftPanel, Y: topBar, Width: canvasWidth, Height: canvasHeight},
		2, rl.Color{R: 100, G: 100, B: 100, A: 255},
	)

	rl.EndDrawing()
}

// Helper functions
func clamp(value, min, max float32) float32 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func hexToRL(hex string) rl.Color {
	var r, g, b uint8
	fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	return rl.Color{R: r, G: g, B: b, A: 255}
}

func main() {
	rl.InitWindow(screenWidth, screenHeight, "Room Studio")
	rl.SetTargetFPS(60)

	app := NewApp()
	if len(os.Args) > 1 {
		app.LoadFurnitureDir(os.Args[1])
	}

	// Seed the canvas texture from the first composed frame.
	frame := app.renderer.Frame(app.scene, compose.Overlay{})
	app.canvasTex = rl.LoadTextureFromImage(rl.NewImageFromImage(frame))

	for !rl.WindowShouldClose() {
		app.Update()
		app.Draw()
	}

	// Clean up
	for _, f := range app.furniture {
		if f.hasTex {
			rl.UnloadTexture(f.tex)
		}
	}
	rl.UnloadTexture(app.canvasTex)
	rl.CloseWindow()
}
