package cmd

import (
	"context"
	"sync"
	"testing"

	"github.com/fatih/color"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/digest"
	"github.com/khanhnv2901/pwcheck/internal/evaluator"
	"github.com/khanhnv2901/pwcheck/internal/strength"
)

// disableColor keeps rendered output free of escape codes for the test.
func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

// stubChecker reports a fixed breach result and remembers what it saw.
type stubChecker struct {
	mu     sync.Mutex
	result breach.Result
	seen   []string
}

func (s *stubChecker) Check(_ context.Context, password string) breach.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = append(s.seen, password)
	return s.result
}

type stubLookup struct {
	result breach.Result
	got    digest.Digest
}

func (s *stubLookup) Lookup(_ context.Context, d digest.Digest) breach.Result {
	s.got = d
	return s.result
}

func newTestEvaluator(t *testing.T, checker evaluator.BreachChecker) *evaluator.Evaluator {
	t.Helper()
	scorer, err := strength.NewScorer(strength.DefaultConfig())
	if err != nil {
		t.Fatalf("NewScorer: %v", err)
	}
	return evaluator.New(scorer, checker)
}
