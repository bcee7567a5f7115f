package editor

import "roomstudio/internal/scene"

// Tool is the active input mode. Exactly one tool is active at a time and
// it decides how pointer events are interpreted.
type Tool int

const (
	ToolSelect Tool = iota
	ToolFreehand
	ToolEraser
	ToolLine
	ToolRect
	ToolCircle
)

// Drawing reports whether the tool creates drawn elements.
func (t Tool) Drawing() bool {
	return t != ToolSelect
}

// Kind maps a drawing tool to the element kind it produces.
func (t Tool) Kind() scene.Kind {
	switch t {
	case ToolFreehand:
		return scene.KindFreehand
	case ToolEraser:
		return scene.KindEraser
	case ToolLine:
		return scene.KindLine
	case ToolRect:
		return scene.KindRect
	case ToolCircle:
		return scene.KindCircle
	}
	return ""
}

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "SELECT"
	case ToolFreehand:
		return "PENCIL"
	case ToolEraser:
		return "ERASER"
	case ToolLine:
		return "LINE"
	case ToolRect:
		return "RECT"
	case ToolCircle:
		return "CIRCLE"
	}
	return "UNKNOWN"
}
