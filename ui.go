package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	stepColor   = color.New(color.FgGreen, color.Bold)
	detailColor = color.New(color.Faint)
)

// logStep announces a major phase of the install.
func logStep(w io.Writer, format string, args ...interface{}) {
	stepColor.Fprint(w, "==> ")
	fmt.Fprintf(w, format+"\n", args...)
}

// logDetail prints a secondary line under the current step.
func logDetail(w io.Writer, format string, args ...interface{}) {
	detailColor.Fprintf(w, "    "+format+"\n", args...)
}
