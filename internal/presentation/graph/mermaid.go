package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cfrac/pkg/domain"
)

// Overlay marks a rational of interest, typically an approximation, on the chain.
type Overlay struct {
	Highlight domain.Rational
}

// GenerateMermaid produces a Mermaid flowchart of the convergent chain of cf.
// It applies semantic styling:
// - Seed 1/0: ((Circle))
// - Exact value (last convergent): [[Subroutine]]
// - Default: [Rectangle]
// Each edge carries the coefficient that produced the next convergent.
func GenerateMermaid(cf domain.ContinuedFraction, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")
	sb.WriteString("    seed((\"1/0\"))\n")

	coefficients := cf.Coefficients()
	conv := cf.Convergents()
	prev := "seed"
	highlighted := ""

	for i, c := range conv {
		id := fmt.Sprintf("c%d", i)

		opener, closer := "[", "]"
		if i == len(conv)-1 {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, c, closer))
		sb.WriteString(fmt.Sprintf("    %s -- \"a%d = %d\" --> %s\n", prev, i, coefficients[i], id))

		if overlay != nil && highlighted == "" && c.Rational().Equivalent(overlay.Highlight) {
			highlighted = id
		}
		prev = id
	}

	if highlighted != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", highlighted))
	}

	return sb.String()
}
