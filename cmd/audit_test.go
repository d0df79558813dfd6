package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
)

const auditInput = "password\n\nS3cure!Passw0rd\nqwerty\n"

func TestRunAuditText(t *testing.T) {
	disableColor(t)
	runner := &evaluator.Runner{
		Evaluator:   newTestEvaluator(t, &stubChecker{result: breach.Result{Found: true, Count: 7}}),
		Concurrency: 2,
	}

	var out bytes.Buffer
	if err := runAudit(context.Background(), strings.NewReader(auditInput), &out, runner, outputText); err != nil {
		t.Fatalf("runAudit: %v", err)
	}

	got := out.String()
	for _, want := range []string{"line 1 ", "line 3 ", "line 4 ", "breach: seen 7 times", "Summary: 3 checked", "3 breached", "2 common"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "line 2 ") {
		t.Error("blank line should be skipped")
	}
	for _, pw := range []string{"password", "qwerty", "S3cure"} {
		if strings.Contains(got, pw) {
			t.Errorf("password %q printed", pw)
		}
	}
}

func TestRunAuditJSON(t *testing.T) {
	runner := &evaluator.Runner{Evaluator: newTestEvaluator(t, nil)}

	var out bytes.Buffer
	if err := runAudit(context.Background(), strings.NewReader(auditInput), &out, runner, outputJSON); err != nil {
		t.Fatalf("runAudit: %v", err)
	}

	var result struct {
		Entries []struct {
			Line   int `json:"line"`
			Result struct {
				Breach struct {
					Verified bool `json:"verified"`
				} `json:"breach"`
			} `json:"result"`
		} `json:"entries"`
		Summary evaluator.Summary `json:"summary"`
	}
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v\n%s", err, out.String())
	}
	if len(result.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(result.Entries))
	}
	wantLines := []int{1, 3, 4}
	for i, e := range result.Entries {
		if e.Line != wantLines[i] {
			t.Errorf("entry %d: line %d, want %d", i, e.Line, wantLines[i])
		}
		if e.Result.Breach.Verified {
			t.Errorf("entry %d: offline result reported as verified", i)
		}
	}
	if result.Summary.Total != 3 || result.Summary.Unverified != 3 || result.Summary.Breached != 0 {
		t.Fatalf("unexpected summary %+v", result.Summary)
	}
}
