// Package vision talks to the generative image model: it assembles the
// instruction prompt and submits the flattened canvas composite.
package vision

import (
	"fmt"
	"strings"
)

// PromptSpec carries the user-supplied description fields that accompany
// the composite.
type PromptSpec struct {
	Description string   // freeform style/requirements text
	Style       string   // named interior style, e.g. "scandinavian"
	Dimensions  string   // room dimensions text fields, e.g. "4.5m x 6.0m"
	Furniture   []string // display names of the placed furniture items
}

// BuildPrompt turns the spec into a natural-language instruction for the
// image model. The attached composite shows the furniture placement and
// any sketched annotations; the prompt tells the model how to read it.
func BuildPrompt(spec PromptSpec) string {
	var b strings.Builder

	b.WriteString("Create a photorealistic interior design rendering based on the attached room composition.\n")
	b.WriteString("The attached image is a rough layout: placed furniture photos show which pieces to use and where, ")
	b.WriteString("sketched lines and shapes indicate walls, windows or placement hints.\n")

	if len(spec.Furniture) > 0 {
		b.WriteString(fmt.Sprintf("Incorporate these furniture pieces exactly as photographed: %s.\n",
			strings.Join(spec.Furniture, ", ")))
	}
	if d := strings.TrimSpace(spec.Dimensions); d != "" {
		b.WriteString(fmt.Sprintf("Room dimensions: %s.\n", d))
	}
	if st := strings.TrimSpace(spec.Style); st != "" {
		b.WriteString(fmt.Sprintf("Interior style: %s.\n", st))
	}
	if desc := strings.TrimSpace(spec.Description); desc != "" {
		b.WriteString("Additional requirements: ")
		b.WriteString(desc)
		b.WriteString("\n")
	}

	b.WriteString("Keep furniture proportions realistic, use natural lighting, and render at high detail.")
	return b.String()
}
