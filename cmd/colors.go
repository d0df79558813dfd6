package cmd

import (
	"github.com/fatih/color"

	"github.com/khanhnv2901/pwcheck/internal/strength"
)

var (
	colorSuccess = color.New(color.FgGreen).SprintFunc()
	colorInfo    = color.New(color.FgCyan).SprintFunc()
	colorTitle   = color.New(color.FgCyan, color.Bold).SprintFunc()
	colorWarn    = color.New(color.FgYellow).SprintFunc()
	colorError   = color.New(color.FgRed).SprintFunc()
	colorBest    = color.New(color.FgGreen, color.Bold).SprintFunc()
)

func colorForTier(t strength.Tier) func(a ...interface{}) string {
	switch t {
	case strength.VeryStrong:
		return colorBest
	case strength.Strong:
		return colorSuccess
	case strength.Medium:
		return colorWarn
	default:
		return colorError
	}
}

func colorForSeverity(s strength.Severity) func(a ...interface{}) string {
	switch s {
	case strength.Info:
		return colorSuccess
	case strength.Warning:
		return colorWarn
	default:
		return colorError
	}
}
