package digest

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
)

func TestComputeKnownVectors(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     Digest
	}{
		{name: "password", password: "password", want: "5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8"},
		{name: "empty", password: "", want: "DA39A3EE5E6B4B0D3255BFEF95601890AFD80709"},
		{name: "abc", password: "abc", want: "A9993E364706816ABA3E25717850C26C9CD0D89D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compute(tt.password); got != tt.want {
				t.Fatalf("Compute(%q) = %s, want %s", tt.password, got, tt.want)
			}
		})
	}
}

func TestComputeShape(t *testing.T) {
	inputs := []string{"", "a", "Tr0ub4dor&3xyz", "pässwörd", strings.Repeat("x", 4096), "\x00\xff"}
	for _, in := range inputs {
		d := Compute(in)
		if len(d) != Length {
			t.Fatalf("Compute(%q) length = %d, want %d", in, len(d), Length)
		}
		for _, r := range d {
			if !strings.ContainsRune("0123456789ABCDEF", r) {
				t.Fatalf("Compute(%q) contains non-uppercase-hex rune %q", in, r)
			}
		}
		if again := Compute(in); again != d {
			t.Fatalf("Compute(%q) not deterministic: %s vs %s", in, d, again)
		}
	}
}

func TestSplitReconstructs(t *testing.T) {
	d := Compute("correct horse battery staple")
	prefix, suffix := Split(d)
	if len(prefix) != PrefixLen || len(suffix) != SuffixLen {
		t.Fatalf("unexpected split lengths %d/%d", len(prefix), len(suffix))
	}
	if Digest(prefix+suffix) != d {
		t.Fatalf("prefix+suffix = %s, want %s", prefix+suffix, d)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(" 5baa61e4c9b93f3f0682250b6cf8331b7ee68fd8 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "5BAA61E4C9B93F3F0682250B6CF8331B7EE68FD8" {
		t.Fatalf("Parse did not canonicalize: %s", got)
	}

	for _, bad := range []string{"", "5BAA6", strings.Repeat("Z", Length)} {
		if _, err := Parse(bad); !errors.Is(err, apperrors.ErrInvalidDigest) {
			t.Fatalf("Parse(%q) error = %v, want ErrInvalidDigest", bad, err)
		}
	}
}
