// Package digest derives the SHA-1 digest used by the Pwned Passwords range
// protocol and splits it into the disclosed prefix and the private suffix.
//
// SHA-1 is dictated by the remote service's wire format; it is not used to
// protect the password.
package digest

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	apperrors "github.com/khanhnv2901/pwcheck/internal/shared/errors"
)

const (
	// Length is the encoded length of a digest: 20 bytes, two hex chars each.
	Length = sha1.Size * 2
	// PrefixLen is the number of leading characters sent to the range API.
	PrefixLen = 5
	// SuffixLen is the number of characters kept local.
	SuffixLen = Length - PrefixLen
)

// Digest is a 40-character uppercase hexadecimal SHA-1 digest.
type Digest string

// Compute hashes the UTF-8 bytes of password.
func Compute(password string) Digest {
	sum := sha1.Sum([]byte(password))
	return Digest(strings.ToUpper(hex.EncodeToString(sum[:])))
}

// Parse validates an externally supplied digest and canonicalizes it to
// uppercase.
func Parse(s string) (Digest, error) {
	s = strings.TrimSpace(s)
	if len(s) != Length {
		return "", fmt.Errorf("%w: want %d hex characters, got %d", apperrors.ErrInvalidDigest, Length, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidDigest, err)
	}
	return Digest(strings.ToUpper(s)), nil
}

// Prefix returns the first PrefixLen characters.
func (d Digest) Prefix() string {
	return string(d[:PrefixLen])
}

// Suffix returns everything after the prefix.
func (d Digest) Suffix() string {
	return string(d[PrefixLen:])
}

// Split returns the prefix and suffix; prefix+suffix == d.
func Split(d Digest) (prefix, suffix string) {
	return d.Prefix(), d.Suffix()
}

func (d Digest) String() string {
	return string(d)
}
