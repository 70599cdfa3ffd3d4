// Package shortlink encodes recipe identifiers as compact base62 strings for
// shareable links and decodes them back.
//
// The alphabet order is part of the public contract: changing it would make
// every previously published link resolve to a different recipe.
package shortlink

import (
	"errors"
	"math"
	"strings"
)

// Alphabet is the ordered digit set: digits, then lowercase, then uppercase.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Base is the radix of the encoding.
const Base = int64(len(Alphabet))

// ErrInvalidInput is returned for negative numbers and malformed codes.
var ErrInvalidInput = errors.New("shortlink: invalid input")

// maxCodeLen is the length of math.MaxInt64 in base62.
const maxCodeLen = 11

// Encode returns the base62 representation of n.
func Encode(n int64) (string, error) {
	if n < 0 {
		return "", ErrInvalidInput
	}
	if n == 0 {
		return Alphabet[:1], nil
	}

	var buf [maxCodeLen]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = Alphabet[n%Base]
		n /= Base
	}
	return string(buf[pos:]), nil
}

// Decode parses a base62 code produced by Encode.
//
// Codes with a leading zero digit (other than "0" itself) are rejected so
// that every accepted code is the canonical encoding of its value.
func Decode(s string) (int64, error) {
	if s == "" || len(s) > maxCodeLen {
		return 0, ErrInvalidInput
	}
	if len(s) > 1 && s[0] == Alphabet[0] {
		return 0, ErrInvalidInput
	}

	var n int64
	for i := 0; i < len(s); i++ {
		d := strings.IndexByte(Alphabet, s[i])
		if d < 0 {
			return 0, ErrInvalidInput
		}
		if n > (math.MaxInt64-int64(d))/Base {
			return 0, ErrInvalidInput
		}
		n = n*Base + int64(d)
	}
	return n, nil
}
