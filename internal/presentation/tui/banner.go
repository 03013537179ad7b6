package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the multivar banner and version to w.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	lines := []struct {
		text  string
		color string
	}{
		{" _ __ ___  _   _| | |_(_)_   ____ _ _ __", "#38bdf8"},
		{"| '_ ` _ \\| | | | | __| \\ \\ / / _` | '__|", "#22d3ee"},
		{"| | | | | | |_| | | |_| |\\ V / (_| | |", "#2dd4bf"},
		{"|_| |_| |_|\\__,_|_|\\__|_| \\_/ \\__,_|_|", "#34d399"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  ∂f/∂x · ∇f · lim · ∮  v"+version).Faint())
	fmt.Fprintln(w)
}
