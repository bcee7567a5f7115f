// Package editor interprets pointer input against the scene model. It is a
// small state machine: idle, drawing, dragging an image, or resizing one.
// All scene mutation funnels through here.
package editor

import "roomstudio/internal/scene"

// State is the current interaction mode.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateDragging
	StateResizing
)

const (
	// EraserWidth is fixed and intentionally wider than the default
	// stroke; the stroke-width control does not affect it.
	EraserWidth = 24

	defaultStrokeColor = "#000000"
	defaultStrokeWidth = 4
)

// Editor drives pointer-event dispatch over a scene. It holds only
// transient references (selected index, engaged handle, last pointer
// position) into the scene, never copies of its data.
type Editor struct {
	Scene *scene.Scene

	tool        Tool
	strokeColor string
	strokeWidth float64

	state    State
	selected int
	handle   Handle
	last     scene.Point
	current  *scene.DrawnElement

	hover   scene.Point
	hasHover bool
}

// New creates an idle editor over the given scene with the select tool
// armed.
func New(s *scene.Scene) *Editor {
	return &Editor{
		Scene:       s,
		tool:        ToolSelect,
		strokeColor: defaultStrokeColor,
		strokeWidth: defaultStrokeWidth,
		selected:    -1,
	}
}

// Tool returns the active tool.
func (e *Editor) Tool() Tool { return e.tool }

// SetTool switches the active tool and clears any image selection, so
// resize handles are never shown while a drawing tool is armed.
func (e *Editor) SetTool(t Tool) {
	e.tool = t
	if e.state == StateIdle {
		e.selected = -1
		e.handle = HandleNone
	}
}

// StrokeColor returns the current stroke color (hex).
func (e *Editor) StrokeColor() string { return e.strokeColor }

// SetStrokeColor sets the color used by subsequent draws.
func (e *Editor) SetStrokeColor(hex string) { e.strokeColor = hex }

// StrokeWidth returns the current stroke width.
func (e *Editor) StrokeWidth() float64 { return e.strokeWidth }

// SetStrokeWidth sets the width used by subsequent draws (eraser excepted).
func (e *Editor) SetStrokeWidth(w float64) {
	if w >= 1 {
		e.strokeWidth = w
	}
}

// State returns the interaction state.
func (e *Editor) State() State { return e.state }

// SelectedImage returns the currently selected placed image, or nil.
func (e *Editor) SelectedImage() *scene.PlacedImage {
	if e.selected < 0 || e.selected >= len(e.Scene.Images) {
		return nil
	}
	return e.Scene.Images[e.selected]
}

// Current returns the in-progress, uncommitted element, or nil.
func (e *Editor) Current() *scene.DrawnElement { return e.current }

// BrushPreview returns the center and diameter of the live brush-size cue.
// It is shown only while a drawing tool is armed, no draw is active, and
// the pointer is over the canvas.
func (e *Editor) BrushPreview() (scene.Point, float64, bool) {
	if !e.tool.Drawing() || e.state == StateDrawing || !e.hasHover {
		return scene.Point{}, 0, false
	}
	w := e.strokeWidth
	if e.tool == ToolEraser {
		w = EraserWidth
	}
	return e.hover, w, true
}

// Hover returns the last known pointer position, if any.
func (e *Editor) Hover() (scene.Point, bool) {
	return e.hover, e.hasHover
}

// PointerDown starts a draw, a drag, or a resize depending on the tool.
func (e *Editor) PointerDown(p scene.Point) {
	e.hover, e.hasHover = p, true
	e.last = p

	if e.tool.Drawing() {
		w := e.strokeWidth
		if e.tool == ToolEraser {
			w = EraserWidth
		}
		e.current = scene.NewElement(e.tool.Kind(), p, e.strokeColor, w)
		e.state = StateDrawing
		return
	}

	// Corner handles of the selected image win over any image under the
	// pointer.
	if sel := e.SelectedImage(); sel != nil {
		if h := HandleAt(p, sel); h != HandleNone {
			e.handle = h
			e.state = StateResizing
			return
		}
	}

	if i := e.Scene.ImageAt(p); i >= 0 {
		e.selected = i
		e.state = StateDragging
		return
	}

	e.selected = -1
}

// PointerMove applies the action matching the current state: translate,
// resize, extend the active draw, or just track the hover position.
func (e *Editor) PointerMove(p scene.Point) {
	e.hover, e.hasHover = p, true

	switch e.state {
	case StateDragging:
		e.Scene.MoveImage(e.selected, p.X-e.last.X, p.Y-e.last.Y)
	case StateResizing:
		e.resizeTo(p)
	case StateDrawing:
		e.current.Extend(p)
	}
	e.last = p
}

// PointerUp commits any active draw and returns to idle. Selection is
// kept so the handles stay usable.
func (e *Editor) PointerUp() {
	e.finish()
}

// PointerLeave behaves as an implicit pointer-up and additionally forgets
// the hover position so no stale brush preview remains.
func (e *Editor) PointerLeave() {
	e.finish()
	e.hasHover = false
}

func (e *Editor) finish() {
	if e.state == StateDrawing && e.current != nil {
		e.Scene.AppendElement(e.current)
	}
	e.current = nil
	e.handle = HandleNone
	e.state = StateIdle
}

// resizeTo recomputes the selected image's rectangle from the fixed corner
// opposite the engaged handle and the pointer position. A result at or
// below the minimum size is rejected and the previous rectangle kept.
func (e *Editor) resizeTo(p scene.Point) {
	img := e.SelectedImage()
	if img == nil {
		return
	}
	var x, y, w, h float64
	switch e.handle {
	case HandleTopLeft:
		fx, fy := img.X+img.Width, img.Y+img.Height
		x, y, w, h = p.X, p.Y, fx-p.X, fy-p.Y
	case HandleTopRight:
		fy := img.Y + img.Height
		x, y, w, h = img.X, p.Y, p.X-img.X, fy-p.Y
	case HandleBottomLeft:
		fx := img.X + img.Width
		x, y, w, h = p.X, img.Y, fx-p.X, p.Y-img.Y
	case HandleBottomRight:
		x, y, w, h = img.X, img.Y, p.X-img.X, p.Y-img.Y
	default:
		return
	}
	e.Scene.ResizeImage(e.selected, x, y, w, h)
}

// CursorAt returns the pointer shape for an idle hover at p: a diagonal
// resize cursor near a handle of the selected image, otherwise a move
// cursor under the select tool.
func (e *Editor) CursorAt(p scene.Point) Cursor {
	if e.tool.Drawing() {
		return CursorDefault
	}
	switch HandleAt(p, e.SelectedImage()) {
	case HandleTopLeft, HandleBottomRight:
		return CursorResizeNWSE
	case HandleTopRight, HandleBottomLeft:
		return CursorResizeNESW
	}
	return CursorMove
}
