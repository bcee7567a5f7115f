package scene

import "github.com/google/uuid"

// Kind identifies the drawing tool that produced an element.
type Kind string

const (
	KindFreehand Kind = "freehand"
	KindEraser   Kind = "eraser"
	KindLine     Kind = "line"
	KindRect     Kind = "rect"
	KindCircle   Kind = "circle"
)

// ValidKind reports whether k names a known drawing kind.
func ValidKind(k Kind) bool {
	switch k {
	case KindFreehand, KindEraser, KindLine, KindRect, KindCircle:
		return true
	}
	return false
}

// TwoPoint reports whether the kind is defined by an anchor and a current
// point rather than an accumulated path. Line, rect and circle keep exactly
// two points; the second is replaced while the drag is active.
func (k Kind) TwoPoint() bool {
	return k == KindLine || k == KindRect || k == KindCircle
}

// DrawnElement is one committed or in-progress annotation.
type DrawnElement struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	Points      []Point   `json:"points"`
	Color       string    `json:"color"`
	StrokeWidth float64   `json:"strokeWidth"`
}

// NewElement starts an element anchored at the given point. Two-point kinds
// begin with both points at the anchor so a zero-length drag still renders.
func NewElement(kind Kind, at Point, color string, strokeWidth float64) *DrawnElement {
	pts := []Point{at}
	if kind.TwoPoint() {
		pts = append(pts, at)
	}
	return &DrawnElement{
		ID:          uuid.New(),
		Kind:        kind,
		Points:      pts,
		Color:       color,
		StrokeWidth: strokeWidth,
	}
}

// Extend advances the element with the current pointer position: freehand
// and eraser strokes append, two-point kinds replace their current point.
func (e *DrawnElement) Extend(p Point) {
	if e.Kind.TwoPoint() {
		e.Points[1] = p
		return
	}
	e.Points = append(e.Points, p)
}
