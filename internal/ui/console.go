// Package ui provides styled console output for the AI gateway.
// Operational events (fallbacks, cache hits, dead providers) get
// colorized badges so they stand out in a local terminal; structured
// logging still goes through slog.
package ui

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	// Badge colors
	successBadge = color.New(color.BgGreen, color.FgBlack, color.Bold)
	warningBadge = color.New(color.FgYellow, color.Bold)
	errorBadge   = color.New(color.BgRed, color.FgWhite, color.Bold)
	infoBadge    = color.New(color.FgCyan, color.Bold)

	// Text colors
	successText = color.New(color.FgGreen, color.Bold)
	warningText = color.New(color.FgYellow)
	errorText   = color.New(color.FgRed)
	mutedText   = color.New(color.FgHiBlack)
	accentText  = color.New(color.FgMagenta, color.Bold)
	moneyGreen  = color.New(color.FgHiGreen, color.Bold)
)

// PrintCacheHit logs a cache-served operation.
// Format: ⚡ [CACHE HIT] operation
func PrintCacheHit(operation string) {
	fmt.Print("⚡ ")
	successBadge.Print(" CACHE HIT ")
	fmt.Print(" ")
	successText.Println(operation)
}

// PrintFallback logs a provider failover.
// Format: ⚠️ [FALLBACK] fromProvider → toProvider
func PrintFallback(from, to string) {
	fmt.Print("⚠️  ")
	warningBadge.Print("[FALLBACK]")
	fmt.Print(" ")
	mutedText.Print(from)
	warningText.Print(" → ")
	accentText.Println(to)
}

// PrintAllFailed logs an exhausted fallback chain.
// Format: 💀 [ALL FAILED] operation (n providers tried)
func PrintAllFailed(operation string, attempts int) {
	fmt.Print("💀 ")
	errorBadge.Print(" ALL FAILED ")
	fmt.Print(" ")
	errorText.Print(operation)
	mutedText.Printf(" (%d providers tried)\n", attempts)
}

// PrintProviderToggle logs a runtime enable/disable.
func PrintProviderToggle(name string, enabled bool) {
	infoBadge.Print("[PROVIDER]")
	fmt.Print(" ")
	if enabled {
		successText.Printf("%s enabled\n", name)
	} else {
		warningText.Printf("%s disabled\n", name)
	}
}

// PrintSavings logs the accumulated cost savings.
// Format: 💰 [SAVED] $x.xxxx total
func PrintSavings(total float64) {
	fmt.Print("💰 ")
	moneyGreen.Printf("[SAVED] $%.4f total\n", total)
}

// PrintGatewayInfo logs general gateway information.
func PrintGatewayInfo(msg string) {
	infoBadge.Print("[GATEWAY]")
	fmt.Printf(" %s\n", msg)
}
