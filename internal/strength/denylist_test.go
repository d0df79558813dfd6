package strength

import (
	"strings"
	"testing"
)

func TestDefaultDenylist(t *testing.T) {
	d := DefaultDenylist()
	for _, pw := range []string{"123456", "password", "qwerty", "abc123", "letmein", "admin"} {
		if !d.Contains(pw) {
			t.Fatalf("default denylist missing %q", pw)
		}
	}
	if d.Contains("Tr0ub4dor&3xyz") {
		t.Fatal("unexpected denylist hit")
	}
	if d.Contains("") {
		t.Fatal("empty string should not be on the default list")
	}
}

func TestLoadDenylist(t *testing.T) {
	d, err := LoadDenylist(strings.NewReader("# header\n\n  Dragon \nmonkey\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(d))
	}
	if !d.Contains("DRAGON") || !d.Contains("Monkey") {
		t.Fatal("expected case-insensitive hits")
	}
	if d.Contains("# header") {
		t.Fatal("comment line should be ignored")
	}
}

func TestDenylistFolding(t *testing.T) {
	d := NewDenylist("Straße")
	if !d.Contains("STRASSE") {
		t.Fatal("expected full case folding to match")
	}

	var nilList Denylist
	if nilList.Contains("password") {
		t.Fatal("nil denylist should never match")
	}
}
