package evaluator

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/strength"
)

type mapChecker struct {
	found    map[string]int
	failing  map[string]bool
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (m *mapChecker) Check(ctx context.Context, password string) breach.Result {
	n := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)

	if m.failing[password] {
		return breach.Result{Err: errors.New("unavailable")}
	}
	if c, ok := m.found[password]; ok {
		return breach.Result{Found: true, Count: c}
	}
	return breach.Result{}
}

func TestRunnerPreservesOrder(t *testing.T) {
	checker := &mapChecker{
		found:   map[string]int{"password": 100, "qwerty": 5},
		failing: map[string]bool{"flaky": true},
	}
	runner := &Runner{Evaluator: New(defaultScorer(t), checker), Concurrency: 3}

	passwords := []string{"password", "Tr0ub4dor&3xyz", "qwerty", "flaky", "abcdefgH1"}

	var mu sync.Mutex
	seen := map[int]bool{}
	reports := runner.EvaluateAll(context.Background(), passwords, func(i int, r Report) {
		mu.Lock()
		seen[i] = true
		mu.Unlock()
	})

	require.Len(t, reports, len(passwords))
	assert.Len(t, seen, len(passwords))
	assert.Equal(t, 100, reports[0].Breach.Count)
	assert.Equal(t, strength.VeryStrong, reports[1].Strength.Tier)
	assert.Equal(t, 5, reports[2].Breach.Count)
	assert.Error(t, reports[3].Breach.Err)
	assert.Equal(t, strength.Medium, reports[4].Strength.Tier)
	assert.LessOrEqual(t, checker.peak.Load(), int32(3))

	summary := Summarize(reports)
	assert.Equal(t, Summary{Total: 5, Breached: 2, Unverified: 1, Weak: 3, Common: 2}, summary)
}

func TestRunnerDefaultsToSerial(t *testing.T) {
	checker := &mapChecker{}
	runner := &Runner{Evaluator: New(defaultScorer(t), checker)}

	reports := runner.EvaluateAll(context.Background(), []string{"a", "b", "c", "d"}, nil)
	require.Len(t, reports, 4)
	assert.Equal(t, int32(1), checker.peak.Load())
}
