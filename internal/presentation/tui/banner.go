package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the cfrac ASCII banner to w, colored for the detected profile.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"          __                 ", "#818cf8"},
		{"   ___   / _|_ __ __ _  ___  ", "#a78bfa"},
		{"  / __| | |_| '__/ _` |/ __| ", "#c084fc"},
		{" | (__  |  _| | | (_| | (__  ", "#e879f9"},
		{"  \\___| |_| |_|  \\__,_|\\___| ", "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
