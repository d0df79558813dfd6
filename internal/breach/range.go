package breach

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Candidate is one SUFFIX:COUNT line of a range response.
type Candidate struct {
	Suffix string
	Count  int
}

// ParseRange reads a range response body. Lines that cannot be classified
// (no colon, empty suffix, non-numeric or negative count) are skipped and
// counted in skipped. err is non-nil only when the body itself could not be
// read.
func ParseRange(r io.Reader) (candidates []Candidate, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, skipped, scanner.Err()
}

func parseLine(line string) (Candidate, bool) {
	suffix, count, found := strings.Cut(line, ":")
	if !found {
		return Candidate{}, false
	}
	suffix = strings.TrimSpace(suffix)
	if suffix == "" {
		return Candidate{}, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil || n < 0 {
		return Candidate{}, false
	}
	return Candidate{Suffix: strings.ToUpper(suffix), Count: n}, true
}

// match returns the candidate whose suffix equals suffix, ignoring hex case.
// Zero-count entries are padding and never match.
func match(candidates []Candidate, suffix string) (Candidate, bool) {
	suffix = strings.ToUpper(suffix)
	for _, c := range candidates {
		if c.Suffix == suffix && c.Count > 0 {
			return c, true
		}
	}
	return Candidate{}, false
}
