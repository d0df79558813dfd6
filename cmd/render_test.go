package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
	"github.com/khanhnv2901/pwcheck/internal/strength"
)

func TestValidateOutputFormat(t *testing.T) {
	for _, f := range []string{outputText, outputJSON} {
		if err := validateOutputFormat(f); err != nil {
			t.Errorf("validateOutputFormat(%q): %v", f, err)
		}
	}
	err := validateOutputFormat("yaml")
	var flagErr *InvalidFlagError
	if !errors.As(err, &flagErr) || flagErr.Flag != "output" {
		t.Fatalf("expected InvalidFlagError for output, got %v", err)
	}
}

func TestRenderBreach(t *testing.T) {
	disableColor(t)
	tests := []struct {
		name    string
		res     breach.Result
		want    string
		notWant string
	}{
		{"found", breach.Result{Found: true, Count: 5}, "Password found in data breach 5 times.", "appears safe"},
		{"not found", breach.Result{}, "Your password appears safe from known breaches.", "found in data breach"},
		{"failed", breach.Result{Err: errors.New("unexpected status 503")}, "Could not verify against breach data: unexpected status 503", "appears safe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			renderBreach(&buf, tt.res)
			if !strings.Contains(buf.String(), tt.want) {
				t.Fatalf("output %q missing %q", buf.String(), tt.want)
			}
			if strings.Contains(buf.String(), tt.notWant) {
				t.Fatalf("output %q must not contain %q", buf.String(), tt.notWant)
			}
		})
	}
}

func TestRenderReportEstimate(t *testing.T) {
	disableColor(t)
	report := evaluator.Report{
		Strength: strength.Result{Score: 2, Tier: strength.Weak},
		Estimate: &strength.Estimate{Score: 1, CrackTime: "3 minutes"},
	}
	var buf bytes.Buffer
	if err := renderReport(&buf, report, outputText); err != nil {
		t.Fatalf("renderReport: %v", err)
	}
	if !strings.Contains(buf.String(), "Estimated crack time: 3 minutes (estimate 1/4)") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	t.Cleanup(func() { versionCmd.SetOut(nil) })

	versionCmd.Run(versionCmd, nil)
	if got := buf.String(); got != "pwcheck version "+Version+"\n" {
		t.Fatalf("unexpected version output %q", got)
	}
}
