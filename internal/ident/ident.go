// Package ident implements the base-26 identifier algebra used throughout
// the pomme compiler: node names are non-empty sequences of uppercase
// letters A-Z, interpreted as a bijective base-26 numeral with A=1 and the
// *first* character carrying weight 1 (the second weight 26, and so on).
//
// This little-endian convention is the concrete one the links analyser
// relies on; it is not the familiar big-endian spreadsheet-column scheme.
package ident

import (
	"github.com/pkg/errors"
)

const base = 26

// Decode interprets id as a base-26 numeral and returns its integer value.
// The empty string decodes to 0.
func Decode(id string) (int, error) {
	n := 0
	weight := 1
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c < 'A' || c > 'Z' {
			return 0, errors.Errorf("ident: invalid character %q in identifier %q", c, id)
		}
		n += (int(c-'A') + 1) * weight
		weight *= base
	}
	return n, nil
}

// Encode returns the identifier whose value is n. Encode(0) is the empty
// string; Encode is the inverse of Decode.
func Encode(n int) string {
	if n <= 0 {
		return ""
	}
	var buf []byte
	for n > 0 {
		n--
		d := n % base
		buf = append(buf, byte('A'+d))
		n /= base
	}
	return string(buf)
}

// Incr returns the successor of id in the base-26 domain. The first
// character is the least significant, so a carry moves toward the end of the
// identifier and overflow appends a new character (Z -> AA, ZB -> AC,
// ZZ -> AAA).
func Incr(id string) (string, error) {
	n, err := Decode(id)
	if err != nil {
		return "", errors.Wrapf(err, "ident: Incr(%q)", id)
	}
	return Encode(n + 1), nil
}

// Range returns the ordered inclusive sequence of identifiers obtained by
// repeatedly incrementing a until b is produced. It returns an error
// instead of looping forever when b is not reachable from a by increment
// (spec.md §9, resolved as a parse-time rejection rather than undefined
// behavior).
func Range(a, b string) ([]string, error) {
	na, err := Decode(a)
	if err != nil {
		return nil, errors.Wrapf(err, "ident: Range(%q, %q)", a, b)
	}
	nb, err := Decode(b)
	if err != nil {
		return nil, errors.Wrapf(err, "ident: Range(%q, %q)", a, b)
	}
	if nb < na {
		return nil, errors.Errorf("ident: unreachable range %q..%q (end precedes start)", a, b)
	}
	out := make([]string, 0, nb-na+1)
	for n := na; n <= nb; n++ {
		out = append(out, Encode(n))
	}
	return out, nil
}

// Valid reports whether id is a well-formed identifier: a non-empty
// sequence of uppercase letters A-Z.
func Valid(id string) bool {
	if len(id) == 0 {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 'A' || id[i] > 'Z' {
			return false
		}
	}
	return true
}
