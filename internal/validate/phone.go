package validate

import (
	"strconv"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonDigits = runes.Remove(runes.Predicate(func(r rune) bool {
	return r < '0' || r > '9'
}))

// NormalizePhone folds compatibility forms (full-width digits and the like),
// strips everything but ASCII digits and parses the rest as an integer.
// It returns nil when nothing usable is left.
func NormalizePhone(raw string) *int64 {
	if raw == "" {
		return nil
	}
	t := transform.Chain(norm.NFKC, nonDigits)
	digits, _, err := transform.String(t, raw)
	if err != nil || digits == "" {
		return nil
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}
