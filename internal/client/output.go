package client

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// printer writes colored status lines to the human-facing stream.
type printer struct {
	w io.Writer
}

func (p printer) success(format string, args ...any) {
	fmt.Fprintln(p.w, color.GreenString("✓")+" "+fmt.Sprintf(format, args...))
}

func (p printer) warn(format string, args ...any) {
	fmt.Fprintln(p.w, color.YellowString("!")+" "+fmt.Sprintf(format, args...))
}

func (p printer) hint(format string, args ...any) {
	fmt.Fprintln(p.w, color.CyanString("→")+" "+fmt.Sprintf(format, args...))
}

func (p printer) failure(err error) {
	fmt.Fprintln(p.w, color.RedString("✗")+" "+err.Error())
}

// startSpinner shows message while the slow key derivation runs. The spinner
// only draws on a terminal; the returned func stops it.
func startSpinner(w io.Writer, message string) func() {
	opt := spinner.WithWriter(w)
	if f, ok := w.(*os.File); ok {
		opt = spinner.WithWriterFile(f)
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, opt)
	s.Suffix = " " + message
	_ = s.Color("cyan")
	s.Start()
	return s.Stop
}
