package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/cfrac"
	"github.com/aretw0/cfrac/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, format Format, fn func(context.Context, Output) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, fn(context.Background(), Output{W: &buf, Format: format}))
	return buf.String()
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", "markdown", "mermaid"} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

func TestRunExpand(t *testing.T) {
	eng := cfrac.New()

	t.Run("Text", func(t *testing.T) {
		out := run(t, FormatText, func(ctx context.Context, o Output) error {
			return RunExpand(ctx, eng, "-3/7", o)
		})
		assert.Equal(t, "[0; -2, -3]\n", out)
	})

	t.Run("JSON", func(t *testing.T) {
		out := run(t, FormatJSON, func(ctx context.Context, o Output) error {
			return RunExpand(ctx, eng, "178/110", o)
		})
		var got struct {
			Rational     domain.Rational `json:"rational"`
			Coefficients []int64         `json:"coefficients"`
		}
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, domain.Rational{Num: 89, Den: 55}, got.Rational)
		assert.Equal(t, []int64{1, 1, 1, 1, 1, 1, 1, 1, 2}, got.Coefficients)
	})

	t.Run("Markdown Rendered", func(t *testing.T) {
		var buf bytes.Buffer
		render := func(md string) (string, error) {
			return "RENDERED\n" + md, nil
		}
		o := Output{W: &buf, Format: FormatMarkdown, Render: render}
		require.NoError(t, RunExpand(context.Background(), eng, "415/93", o))
		assert.True(t, strings.HasPrefix(buf.String(), "RENDERED\n"))
		assert.Contains(t, buf.String(), "# 415/93")
	})

	t.Run("Mermaid", func(t *testing.T) {
		out := run(t, FormatMermaid, func(ctx context.Context, o Output) error {
			return RunExpand(ctx, eng, "355/113", o)
		})
		assert.Contains(t, out, "c2[[\"355/113\"]]")
	})

	t.Run("Errors", func(t *testing.T) {
		var buf bytes.Buffer
		err := RunExpand(context.Background(), eng, "0/0", Output{W: &buf})
		assert.ErrorIs(t, err, domain.ErrDegenerateRational)

		err = RunExpand(context.Background(), eng, "pi", Output{W: &buf})
		assert.ErrorIs(t, err, domain.ErrInvalidFormat)
		assert.Empty(t, buf.String())
	})
}

func TestRunReconstruct(t *testing.T) {
	eng := cfrac.New()

	out := run(t, FormatText, func(ctx context.Context, o Output) error {
		return RunReconstruct(ctx, eng, "[3; 7, 16]", o)
	})
	assert.Equal(t, "355/113\n", out)

	out = run(t, FormatJSON, func(ctx context.Context, o Output) error {
		return RunReconstruct(ctx, eng, "-3 -7", o)
	})
	assert.Contains(t, out, `"reduced"`)
	assert.Contains(t, out, `"num": -22`)

	var buf bytes.Buffer
	assert.ErrorIs(t, RunReconstruct(context.Background(), eng, "3; x", Output{W: &buf}), domain.ErrInvalidFormat)
}

func TestRunConvergents(t *testing.T) {
	eng := cfrac.New()

	out := run(t, FormatText, func(ctx context.Context, o Output) error {
		return RunConvergents(ctx, eng, "355/113", o)
	})
	assert.Equal(t, "3/1\n22/7\n355/113\n", out)

	out = run(t, FormatMarkdown, func(ctx context.Context, o Output) error {
		return RunConvergents(ctx, eng, "355/113", o)
	})
	assert.Contains(t, out, "| 1 | 7 | 22/7 |")

	out = run(t, FormatText, func(ctx context.Context, o Output) error {
		return RunConvergents(ctx, eng, "5/0", o)
	})
	assert.Empty(t, out)
}

func TestRunApproximate(t *testing.T) {
	eng := cfrac.New()

	out := run(t, FormatText, func(ctx context.Context, o Output) error {
		return RunApproximate(ctx, eng, "314159/100000", 100, o)
	})
	assert.Equal(t, "311/99\n", out)

	out = run(t, FormatMermaid, func(ctx context.Context, o Output) error {
		return RunApproximate(ctx, eng, "355/113", 10, o)
	})
	assert.Contains(t, out, "class c1 current;")

	var buf bytes.Buffer
	assert.ErrorIs(t, RunApproximate(context.Background(), eng, "22/7", 0, Output{W: &buf}), domain.ErrInvalidBound)
}
