// Package ui provides styled console output for the AI gateway.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

// PrintBanner displays the startup banner.
func PrintBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	magenta := color.New(color.FgMagenta, color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Println()
	cyan.Println("╔══════════════════════════════════════════════╗")
	cyan.Print("║   ")
	magenta.Print("STUDENT MOVES · AI OPERATION GATEWAY")
	cyan.Println("       ║")
	cyan.Print("║   ")
	dim.Print("custom → gemini → openai, first win serves")
	cyan.Println("  ║")
	cyan.Println("╚══════════════════════════════════════════════╝")
	fmt.Println()
}

// PrintProviderLine displays one registered provider on startup.
func PrintProviderLine(name string, priority int, enabled, paid bool) {
	dim := color.New(color.FgHiBlack)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	dim.Printf("  [%d] ", priority)
	if enabled {
		green.Printf("%-8s", name)
	} else {
		yellow.Printf("%-8s (disabled)", name)
	}
	if paid {
		dim.Print("  paid")
	} else {
		dim.Print("  free")
	}
	fmt.Println()
}
