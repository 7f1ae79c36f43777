package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/cfrac/internal/presentation/graph"
	"github.com/aretw0/cfrac/internal/presentation/tui"
	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/aretw0/cfrac/pkg/ports"
)

// Format selects how command results are written.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatMermaid  Format = "mermaid"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatMarkdown, FormatMermaid:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json, markdown or mermaid)", s)
}

// Output is where and how a command writes its result.
type Output struct {
	W      io.Writer
	Format Format
	// Render turns markdown into terminal output. Nil writes markdown as is.
	Render func(string) (string, error)
}

func (o Output) writeMarkdown(md string) error {
	if o.Render != nil {
		rendered, err := o.Render(md)
		if err != nil {
			return err
		}
		md = rendered
	}
	_, err := io.WriteString(o.W, md)
	return err
}

func (o Output) writeJSON(v any) error {
	enc := json.NewEncoder(o.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (o Output) writeText(format string, args ...any) error {
	_, err := fmt.Fprintf(o.W, format, args...)
	return err
}

// RunExpand prints the continued fraction of the rational in arg.
func RunExpand(ctx context.Context, calc ports.Calculator, arg string, out Output) error {
	r, err := parseRational(arg)
	if err != nil {
		return err
	}
	cf, err := calc.Expand(ctx, r.Num, r.Den)
	if err != nil {
		return err
	}
	reduced := domain.Reduce(r.Num, r.Den)

	switch out.Format {
	case FormatJSON:
		return out.writeJSON(struct {
			Rational     domain.Rational `json:"rational"`
			Coefficients []int64         `json:"coefficients"`
			Notation     string          `json:"notation"`
		}{reduced, cf.Coefficients(), cf.String()})
	case FormatMarkdown:
		return out.writeMarkdown(tui.FormatExpansion(reduced, cf))
	case FormatMermaid:
		return out.writeText("%s", graph.GenerateMermaid(cf, nil))
	}
	return out.writeText("%s\n", cf)
}

// RunReconstruct prints the rational encoded by the coefficients in arg.
func RunReconstruct(ctx context.Context, calc ports.Calculator, arg string, out Output) error {
	cf, err := domain.ParseContinuedFraction(arg)
	if err != nil {
		return err
	}
	r, err := calc.Reconstruct(ctx, cf.Coefficients())
	if err != nil {
		return err
	}

	switch out.Format {
	case FormatJSON:
		return out.writeJSON(struct {
			Rational domain.Rational `json:"rational"`
			Reduced  domain.Rational `json:"reduced"`
		}{r, r.Reduced()})
	case FormatMarkdown:
		return out.writeMarkdown(tui.FormatReconstruction(cf, r))
	case FormatMermaid:
		return out.writeText("%s", graph.GenerateMermaid(cf, nil))
	}
	return out.writeText("%s\n", r)
}

// RunConvergents prints one convergent per line.
func RunConvergents(ctx context.Context, calc ports.Calculator, arg string, out Output) error {
	r, err := parseRational(arg)
	if err != nil {
		return err
	}
	conv, err := calc.Convergents(ctx, r.Num, r.Den)
	if err != nil {
		return err
	}
	reduced := domain.Reduce(r.Num, r.Den)

	switch out.Format {
	case FormatJSON:
		return out.writeJSON(struct {
			Rational    domain.Rational     `json:"rational"`
			Convergents []domain.Convergent `json:"convergents"`
		}{reduced, conv})
	case FormatMarkdown, FormatMermaid:
		cf, err := calc.Expand(ctx, r.Num, r.Den)
		if err != nil {
			return err
		}
		if out.Format == FormatMermaid {
			return out.writeText("%s", graph.GenerateMermaid(cf, nil))
		}
		return out.writeMarkdown(tui.FormatConvergents(reduced, cf, conv))
	}

	for _, c := range conv {
		if err := out.writeText("%s\n", c); err != nil {
			return err
		}
	}
	return nil
}

// RunApproximate prints the best approximation of arg with denominator at most maxDen.
func RunApproximate(ctx context.Context, calc ports.Calculator, arg string, maxDen int64, out Output) error {
	r, err := parseRational(arg)
	if err != nil {
		return err
	}
	approx, err := calc.Approximate(ctx, r.Num, r.Den, maxDen)
	if err != nil {
		return err
	}
	reduced := domain.Reduce(r.Num, r.Den)

	switch out.Format {
	case FormatJSON:
		return out.writeJSON(struct {
			Rational       domain.Rational `json:"rational"`
			Approximation  domain.Rational `json:"approximation"`
			MaxDenominator int64           `json:"max_denominator"`
		}{reduced, approx, maxDen})
	case FormatMarkdown:
		return out.writeMarkdown(tui.FormatApproximation(reduced, maxDen, approx))
	case FormatMermaid:
		cf, err := calc.Expand(ctx, r.Num, r.Den)
		if err != nil {
			return err
		}
		return out.writeText("%s", graph.GenerateMermaid(cf, &graph.Overlay{Highlight: approx}))
	}
	return out.writeText("%s\n", approx)
}
