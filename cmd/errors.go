package cmd

import "fmt"

// DenylistError indicates the configured denylist file could not be used.
type DenylistError struct {
	Path string
	Err  error
}

func (e *DenylistError) Error() string {
	return fmt.Sprintf("denylist %s: %v", e.Path, e.Err)
}

func (e *DenylistError) Unwrap() error {
	return e.Err
}

// InvalidFlagError signals a flag value outside the accepted set.
type InvalidFlagError struct {
	Flag    string
	Value   string
	Allowed []string
}

func (e *InvalidFlagError) Error() string {
	if len(e.Allowed) > 0 {
		return fmt.Sprintf("invalid value %q for --%s (allowed: %v)", e.Value, e.Flag, e.Allowed)
	}
	return fmt.Sprintf("invalid value %q for --%s", e.Value, e.Flag)
}
