// Package gameid generates time-sortable identifiers for sessions and rounds.
//
// IDs follow the TypeID layout: a prefix, an underscore, and a UUIDv7
// encoded as 26 characters of Crockford base32. Because the alphabet is in
// ASCII order, IDs created later sort later.
package gameid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const encodedLen = 26

// Prefix names the kind of thing an ID identifies
type Prefix string

const (
	Session Prefix = "session"
	Round   Prefix = "round"
)

// New returns a fresh ID such as "round_01j9x3..."
func New(prefix Prefix) string {
	return string(prefix) + "_" + Encode(uuid.Must(uuid.NewV7()))
}

// Encode writes a UUID as 26 base32 characters. The 128 bits are preceded by
// two zero bits so the first character is always 0-7.
func Encode(id uuid.UUID) string {
	result := make([]byte, encodedLen)
	for i := range encodedLen {
		var value byte
		for b := range 5 {
			value <<= 1
			pos := i*5 + b - 2
			if pos >= 0 {
				value |= (id[pos/8] >> (7 - pos%8)) & 1
			}
		}
		result[i] = alphabet[value]
	}
	return string(result)
}

// Decode reverses Encode
func Decode(s string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := validateSuffix(s); err != nil {
		return id, err
	}

	for i := range encodedLen {
		value := byte(strings.IndexByte(alphabet, s[i]))
		for b := range 5 {
			pos := i*5 + b - 2
			if pos < 0 {
				continue
			}
			if (value>>(4-b))&1 == 1 {
				id[pos/8] |= 1 << (7 - pos%8)
			}
		}
	}
	return id, nil
}

// Parse splits an ID into its prefix and UUID
func Parse(id string) (Prefix, uuid.UUID, error) {
	prefix, suffix, ok := strings.Cut(id, "_")
	if !ok || prefix == "" {
		return "", uuid.Nil, fmt.Errorf("game ID %q has no prefix", id)
	}
	u, err := Decode(suffix)
	if err != nil {
		return "", uuid.Nil, err
	}
	return Prefix(prefix), u, nil
}

// Validate checks that id is a well formed prefixed ID
func Validate(id string) error {
	_, _, err := Parse(id)
	return err
}

func validateSuffix(s string) error {
	if len(s) != encodedLen {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", encodedLen, len(s))
	}

	// The first character carries the two padding bits
	if s[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", s[0])
	}

	for i := range len(s) {
		if strings.IndexByte(alphabet, s[i]) < 0 {
			return fmt.Errorf("invalid character %c at position %d", s[i], i)
		}
	}
	return nil
}
