package constants

import "time"

const (
	// DefaultRangeBaseURL is the public Pwned Passwords range API.
	DefaultRangeBaseURL = "https://api.pwnedpasswords.com"
	// DefaultLookupTimeout bounds a single range request.
	DefaultLookupTimeout = 10 * time.Second
	// DefaultLookupRate is the outbound request budget per second.
	DefaultLookupRate = 10
	// RangeBodyLimitBytes caps how much of a range response is read.
	RangeBodyLimitBytes = 1 << 20
)

const (
	// MinLength is the length that earns the first length point.
	MinLength = 8
	// ExtendedLength is the length that earns the second length point.
	ExtendedLength = 12
	// SpecialChars is the punctuation set counted by the special-character rule.
	SpecialChars = "@$!%*#?&"
)

// RequestBodyLimitBytes caps API request bodies.
const RequestBodyLimitBytes = 1 << 16
