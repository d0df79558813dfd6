package strength

import zxcvbn "github.com/ccojocar/zxcvbn-go"

// Estimate is an informational guessability estimate. It never changes a
// Result.
type Estimate struct {
	// Score is zxcvbn's 0-4 rating.
	Score     int     `json:"score"`
	Entropy   float64 `json:"entropy_bits"`
	CrackTime string  `json:"crack_time"`
}

// EstimateGuesses runs zxcvbn over password. userInputs are extra words
// (usernames, site names) that should count as guessable.
func EstimateGuesses(password string, userInputs ...string) Estimate {
	if password == "" {
		return Estimate{CrackTime: "instant"}
	}
	m := zxcvbn.PasswordStrength(password, userInputs)
	return Estimate{
		Score:     m.Score,
		Entropy:   m.Entropy,
		CrackTime: m.CrackTimeDisplay,
	}
}
