package strength

import (
	"fmt"
	"strings"
	"unicode/utf8"

	consts "github.com/khanhnv2901/pwcheck/internal/shared/constants"
	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
)

// Feedback texts.
const (
	MsgUppercase = "Password should contain at least one uppercase letter."
	MsgLowercase = "Password should contain at least one lowercase letter."
	MsgDigit     = "Password should contain at least one digit."
	MsgSpecial   = "Password should contain at least one special character."
	MsgCommon    = "This is a commonly used password. Avoid using easy-to-guess passwords."
	MsgSecure    = "Password is strong and secure!"
)

// Config holds the tables the scorer consults.
type Config struct {
	MinLength      int
	ExtendedLength int
	SpecialChars   string
	Denylist       Denylist
}

// DefaultConfig returns the stock thresholds and the embedded denylist.
func DefaultConfig() Config {
	return Config{
		MinLength:      consts.MinLength,
		ExtendedLength: consts.ExtendedLength,
		SpecialChars:   consts.SpecialChars,
		Denylist:       DefaultDenylist(),
	}
}

// Validate checks that the thresholds make sense together.
func (c Config) Validate() error {
	switch {
	case c.MinLength <= 0:
		return fmt.Errorf("%w: min length must be positive, got %d", apperrors.ErrInvalidConfig, c.MinLength)
	case c.ExtendedLength < c.MinLength:
		return fmt.Errorf("%w: extended length %d is below min length %d", apperrors.ErrInvalidConfig, c.ExtendedLength, c.MinLength)
	case c.SpecialChars == "":
		return fmt.Errorf("%w: special character set is empty", apperrors.ErrInvalidConfig)
	}
	return nil
}

// Scorer rates passwords against a fixed rule set. It holds no mutable state
// and is safe for concurrent use.
type Scorer struct {
	cfg Config
}

// NewScorer validates cfg and returns a Scorer.
func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Score evaluates password. Each rule adds at most one point and at most one
// message, in rule order; the denylist message comes last and does not
// affect the score.
func (s *Scorer) Score(password string) Result {
	var (
		score    int
		feedback []Feedback
	)
	warn := func(msg string) {
		feedback = append(feedback, Feedback{Severity: Warning, Message: msg})
	}

	length := utf8.RuneCountInString(password)

	// The minimum length rule only scores; the extended length message
	// covers short passwords.
	if length >= s.cfg.MinLength {
		score++
	}
	if length >= s.cfg.ExtendedLength {
		score++
	} else {
		warn(fmt.Sprintf("Password should be at least %d characters long for higher security.", s.cfg.ExtendedLength))
	}

	if containsRange(password, 'A', 'Z') {
		score++
	} else {
		warn(MsgUppercase)
	}
	if containsRange(password, 'a', 'z') {
		score++
	} else {
		warn(MsgLowercase)
	}
	if containsRange(password, '0', '9') {
		score++
	} else {
		warn(MsgDigit)
	}
	if strings.ContainsAny(password, s.cfg.SpecialChars) {
		score++
	} else {
		warn(MsgSpecial)
	}

	if s.cfg.Denylist.Contains(password) {
		feedback = append(feedback, Feedback{Severity: Critical, Message: MsgCommon})
	}

	if len(feedback) == 0 {
		feedback = append(feedback, Feedback{Severity: Info, Message: MsgSecure})
	}

	return Result{
		Score:    score,
		Tier:     TierFor(score),
		Feedback: feedback,
	}
}

func containsRange(s string, lo, hi rune) bool {
	for _, r := range s {
		if r >= lo && r <= hi {
			return true
		}
	}
	return false
}
