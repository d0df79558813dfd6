package evaluator

import (
	"context"
	"sync"

	"github.com/khanhnv2901/pwcheck/internal/strength"
)

// ReportFunc is called once per finished password with its input position.
type ReportFunc func(index int, report Report)

// Runner evaluates many passwords with a bounded worker pool. Outbound
// request pacing is the breach client's job.
type Runner struct {
	Evaluator   *Evaluator
	Concurrency int
}

// EvaluateAll returns one report per password, in input order. onReport,
// if set, may be called from several goroutines.
func (r *Runner) EvaluateAll(ctx context.Context, passwords []string, onReport ReportFunc) []Report {
	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	reports := make([]Report, len(passwords))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, pw := range passwords {
		wg.Add(1)
		go func(i int, pw string) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			// each goroutine owns reports[i]
			reports[i] = r.Evaluator.Evaluate(ctx, pw)
			if onReport != nil {
				onReport(i, reports[i])
			}
		}(i, pw)
	}

	wg.Wait()
	return reports
}

// Summary counts outcomes across a batch.
type Summary struct {
	Total      int `json:"total"`
	Breached   int `json:"breached"`
	Unverified int `json:"unverified"`
	Weak       int `json:"weak"`
	Common     int `json:"common"`
}

// Summarize tallies reports.
func Summarize(reports []Report) Summary {
	s := Summary{Total: len(reports)}
	for _, rep := range reports {
		switch {
		case rep.Breach.Err != nil:
			s.Unverified++
		case rep.Breach.Found:
			s.Breached++
		}
		if rep.Strength.Tier == strength.Weak {
			s.Weak++
		}
		for _, fb := range rep.Strength.Feedback {
			if fb.Severity == strength.Critical {
				s.Common++
				break
			}
		}
	}
	return s
}
