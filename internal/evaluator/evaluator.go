// Package evaluator combines the strength verdict and the breach lookup for
// one password.
package evaluator

import (
	"context"

	"go.uber.org/zap"

	"github.com/khanhnv2901/pwcheck/internal/breach"
	"github.com/khanhnv2901/pwcheck/internal/strength"
	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
)

// Scorer rates a password's composition.
type Scorer interface {
	Score(password string) strength.Result
}

// BreachChecker looks a password up in a breach corpus.
type BreachChecker interface {
	Check(ctx context.Context, password string) breach.Result
}

// Report is everything known about one password.
type Report struct {
	Strength strength.Result
	Breach   breach.Result
	Estimate *strength.Estimate
}

// Evaluator is stateless between calls and safe for concurrent use.
type Evaluator struct {
	scorer   Scorer
	checker  BreachChecker
	estimate bool
	logger   *zap.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithEstimate attaches a zxcvbn estimate to every report.
func WithEstimate(enabled bool) Option {
	return func(e *Evaluator) {
		e.estimate = enabled
	}
}

// WithLogger sets the logger used for lookup outcomes.
func WithLogger(l *zap.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// New returns an Evaluator. A nil checker disables the breach lookup.
func New(scorer Scorer, checker BreachChecker, opts ...Option) *Evaluator {
	e := &Evaluator{
		scorer:  scorer,
		checker: checker,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores password and checks it for breaches. Scoring always
// completes; a failed lookup only shows up in Report.Breach.Err.
func (e *Evaluator) Evaluate(ctx context.Context, password string) Report {
	report := Report{Strength: e.scorer.Score(password)}

	if e.estimate {
		est := strength.EstimateGuesses(password)
		report.Estimate = &est
	}

	if e.checker == nil {
		report.Breach = breach.Result{Err: apperrors.ErrBreachCheckDisabled}
		return report
	}

	report.Breach = e.checker.Check(ctx, password)
	if report.Breach.Err != nil {
		e.logger.Warn("breach lookup unavailable", zap.Error(report.Breach.Err))
	} else {
		e.logger.Debug("breach lookup complete",
			zap.Bool("found", report.Breach.Found),
			zap.Stringer("tier", report.Strength.Tier),
		)
	}
	return report
}
