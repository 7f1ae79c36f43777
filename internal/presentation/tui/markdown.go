package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/cfrac/pkg/domain"
)

// FormatExpansion describes the expansion of r as markdown.
func FormatExpansion(r domain.Rational, cf domain.ContinuedFraction) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", r)
	fmt.Fprintf(&sb, "**Continued fraction:** `%s`\n\n", cf)
	if cf.IsEmpty() {
		sb.WriteString("The expansion is empty (zero denominator).\n")
		return sb.String()
	}

	sb.WriteString("| i | a_i |\n|---|-----|\n")
	for i, a := range cf.Coefficients() {
		fmt.Fprintf(&sb, "| %d | %d |\n", i, a)
	}
	return sb.String()
}

// FormatReconstruction describes the rational encoded by cf.
func FormatReconstruction(cf domain.ContinuedFraction, r domain.Rational) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", cf)
	fmt.Fprintf(&sb, "**Value:** `%s`\n", r)
	if reduced := r.Reduced(); reduced != r {
		fmt.Fprintf(&sb, "\n**Lowest terms:** `%s`\n", reduced)
	}
	return sb.String()
}

// FormatConvergents lists the convergents next to the coefficient that produced them.
func FormatConvergents(r domain.Rational, cf domain.ContinuedFraction, conv []domain.Convergent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Convergents of %s\n\n", r)
	if len(conv) == 0 {
		sb.WriteString("No convergents (empty expansion).\n")
		return sb.String()
	}

	coefficients := cf.Coefficients()
	sb.WriteString("| i | a_i | h_i/k_i |\n|---|-----|---------|\n")
	for i, c := range conv {
		fmt.Fprintf(&sb, "| %d | %d | %s |\n", i, coefficients[i], c)
	}
	return sb.String()
}

// FormatApproximation describes the best approximation under a denominator bound.
func FormatApproximation(r domain.Rational, maxDen int64, approx domain.Rational) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Approximating %s\n\n", r)
	fmt.Fprintf(&sb, "- **Denominator bound:** %d\n", maxDen)
	fmt.Fprintf(&sb, "- **Best approximation:** `%s`\n", approx)
	if approx == r {
		sb.WriteString("\nThe value already fits the bound.\n")
	}
	return sb.String()
}
