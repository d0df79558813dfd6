package strength

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
)

//go:embed common_passwords.txt
var commonPasswordsRaw string

// Denylist is a case-insensitive set of passwords that are unacceptable no
// matter how they score.
type Denylist map[string]struct{}

// NewDenylist builds a Denylist from literal entries.
func NewDenylist(entries ...string) Denylist {
	d := make(Denylist, len(entries))
	for _, e := range entries {
		d[fold(e)] = struct{}{}
	}
	return d
}

// LoadDenylist reads one password per line. Blank lines and lines starting
// with '#' are ignored.
func LoadDenylist(r io.Reader) (Denylist, error) {
	d := Denylist{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		d[fold(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read denylist: %w", err)
	}
	return d, nil
}

// DefaultDenylist returns the embedded list of trivially common passwords.
func DefaultDenylist() Denylist {
	d, _ := LoadDenylist(strings.NewReader(commonPasswordsRaw))
	return d
}

// Contains reports whether password, case-folded, is on the list.
func (d Denylist) Contains(password string) bool {
	if d == nil {
		return false
	}
	_, ok := d[fold(password)]
	return ok
}

// A cases.Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}
