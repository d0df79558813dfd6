package strength

// Tier is the qualitative bucket derived from a score.
type Tier int

const (
	Weak Tier = iota
	Medium
	Strong
	VeryStrong
)

// TierFor maps a score onto its tier: >=6 VeryStrong, 5 Strong, 4 Medium,
// anything lower Weak.
func TierFor(score int) Tier {
	switch {
	case score >= 6:
		return VeryStrong
	case score == 5:
		return Strong
	case score == 4:
		return Medium
	default:
		return Weak
	}
}

func (t Tier) String() string {
	switch t {
	case Weak:
		return "Weak"
	case Medium:
		return "Medium"
	case Strong:
		return "Strong"
	case VeryStrong:
		return "Very Strong"
	default:
		return "Unknown"
	}
}

func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Severity tells the presentation layer how loudly to show a message.
type Severity int

const (
	Info Severity = iota
	Warning
	Critical
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Critical:
		return "critical"
	default:
		return "unknown"
	}
}

func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Feedback is one remediation or status message.
type Feedback struct {
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Result is the verdict for a single password.
type Result struct {
	Score    int        `json:"score"`
	Tier     Tier       `json:"tier"`
	Feedback []Feedback `json:"feedback"`
}

// MaxScore is the highest score the rule set can award.
const MaxScore = 6
