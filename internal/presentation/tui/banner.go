package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	// Indigo to rose gradient.
	lines := []struct{ text, color string }{
		{`   __ _ _   _| |_ ___  _ __ ___   __ _| |_ __ _ `, "#818cf8"},
		{`  / _' | | | | __/ _ \| '_ ' _ \ / _' | __/ _' |`, "#a78bfa"},
		{` | (_| | |_| | || (_) | | | | | | (_| | || (_| |`, "#c084fc"},
		{`  \__,_|\__,_|\__\___/|_| |_| |_|\__,_|\__\__,_|`, "#f472b6"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
