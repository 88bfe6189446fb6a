package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "polling every %d seconds"
	a := 5
	Printfln(msg, a)
	// Output:
	// polling every 5 seconds
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	pterm.PrintDebugMessages = true

	msg := "temp value: %d"
	a := 42
	Debug(msg, a)
	// Output:
	// DEBUG: temp value: 42
}
