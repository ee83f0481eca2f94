package model

import "github.com/apex-algorithms/grc20-go/errs"

// ValidatePositionChars reports whether s contains only [0-9A-Za-z]
// (spec §3, invariant vi). Length is checked separately by each call
// site, since encode and decode raise different error variants for an
// over-length position (errs.PositionTooLongError vs
// errs.LengthExceedsLimitError).
func ValidatePositionChars(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isPositionChar(c) {
			return &errs.InvalidPositionCharError{Char: c}
		}
	}

	return nil
}

func isPositionChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
