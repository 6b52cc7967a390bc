package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{"   ____            _ _          ", "#818cf8"},
	{"  / ___|  ___ _ __(_) |__   ___ ", "#a78bfa"},
	{"  \\___ \\ / __| '__| | '_ \\ / _ \\", "#c084fc"},
	{"   ___) | (__| |  | | |_) |  __/", "#e879f9"},
	{"  |____/ \\___|_|  |_|_.__/ \\___|", "#f472b6"},
}

// PrintBanner writes the Scribe banner followed by the build version.
// Colors degrade to the writer's detected profile, so piped output stays plain.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)
	fmt.Fprintln(w)
	for _, l := range bannerLines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w, out.String("  article assistant "+version).Faint())
	fmt.Fprintln(w)
}
