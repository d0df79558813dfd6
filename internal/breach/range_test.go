package breach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRange(t *testing.T) {
	body := strings.Join([]string{
		"0018A45C4D1DEF81644B54AB7F969B88D65:1",
		"00D4F6E8FA6EECAD2A3AA415EEC418D38EC:2\r",
		"no-colon-here",
		"011053FD0102E94D6AE2F8B83D76FAF94F6:many",
		":7",
		"012A7CA357541F0AC487871FEEC1891C49C:-4",
		"",
		"012c192b2f16f82ea0eb9ef18d9d539b0dd:13",
	}, "\n")

	candidates, skipped, err := ParseRange(strings.NewReader(body))
	require.NoError(t, err)
	assert.Equal(t, 4, skipped)
	require.Len(t, candidates, 3)
	assert.Equal(t, Candidate{Suffix: "00D4F6E8FA6EECAD2A3AA415EEC418D38EC", Count: 2}, candidates[1])
	assert.Equal(t, "012C192B2F16F82EA0EB9EF18D9D539B0DD", candidates[2].Suffix, "suffix should be canonicalized")
}

func TestMatch(t *testing.T) {
	candidates := []Candidate{
		{Suffix: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", Count: 3},
		{Suffix: "BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB", Count: 0},
	}

	tests := []struct {
		name   string
		suffix string
		found  bool
		count  int
	}{
		{name: "exact", suffix: "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA", found: true, count: 3},
		{name: "lowercase query", suffix: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", found: true, count: 3},
		{name: "padding entry", suffix: "BBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBBB"},
		{name: "absent", suffix: "CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := match(candidates, tt.suffix)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.count, got.Count)
		})
	}
}
