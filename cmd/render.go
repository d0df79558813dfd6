package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/khanhnv2901/pwcheck/internal/api"
	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var outputFormats = []string{outputText, outputJSON}

func validateOutputFormat(format string) error {
	for _, f := range outputFormats {
		if f == format {
			return nil
		}
	}
	return &InvalidFlagError{Flag: "output", Value: format, Allowed: outputFormats}
}

func renderReport(w io.Writer, report evaluator.Report, format string) error {
	if format == outputJSON {
		return writeJSONOutput(w, api.NewEvaluateResponse(report))
	}

	fmt.Fprintf(w, "\n%s %s\n", colorInfo("Password Strength:"), colorForTier(report.Strength.Tier)(report.Strength.Tier.String()))
	for _, fb := range report.Strength.Feedback {
		fmt.Fprintln(w, colorForSeverity(fb.Severity)(fb.Message))
	}
	if est := report.Estimate; est != nil {
		fmt.Fprintf(w, "%s %s (estimate %d/4)\n", colorInfo("Estimated crack time:"), est.CrackTime, est.Score)
	}

	fmt.Fprintf(w, "\n%s\n", colorInfo("Pwned Password Check:"))
	renderBreach(w, report.Breach)
	return nil
}

func renderBreach(w io.Writer, res breach.Result) {
	switch {
	case errors.Is(res.Err, apperrors.ErrBreachCheckDisabled):
		fmt.Fprintln(w, colorWarn("Breach check skipped (offline mode). Exposure is unknown."))
	case res.Err != nil:
		// A failed lookup must never read as "safe".
		fmt.Fprintln(w, colorError("Could not verify against breach data: "+res.Err.Error()))
		fmt.Fprintln(w, colorWarn("Treat this password as unverified."))
	case res.Found:
		fmt.Fprintln(w, colorError(fmt.Sprintf("Password found in data breach %d times. Avoid using this password.", res.Count)))
	default:
		fmt.Fprintln(w, colorSuccess("Password not found in any breaches."))
		fmt.Fprintln(w, colorSuccess("Your password appears safe from known breaches."))
	}
}

func renderBreachOnly(w io.Writer, res breach.Result, format string) error {
	if format == outputJSON {
		return writeJSONOutput(w, api.NewBreachStatus(res))
	}
	fmt.Fprintf(w, "%s\n", colorInfo("Pwned Password Check:"))
	renderBreach(w, res)
	return nil
}

func writeJSONOutput(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
