package validate

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Rule checks one value. It returns the message to show when the value fails.
type Rule func(value string) (msg string, ok bool)

// Field is an ordered rule set; the first failing rule wins.
type Field struct {
	Name  string
	Rules []Rule
}

func (f Field) Check(value string) (string, bool) {
	for _, rule := range f.Rules {
		if msg, ok := rule(value); !ok {
			return msg, false
		}
	}
	return "", true
}

// Required fails only on the empty string.
func Required(msg string) Rule {
	return func(v string) (string, bool) {
		return msg, v != ""
	}
}

// MinLength counts runes, not bytes. Empty values pass; pair it with Required.
func MinLength(n int, msg string) Rule {
	return func(v string) (string, bool) {
		if v == "" {
			return "", true
		}
		return msg, utf8.RuneCountInString(v) >= n
	}
}

// Pattern fails when a non-empty value does not match re.
func Pattern(re *regexp.Regexp, msg string) Rule {
	return func(v string) (string, bool) {
		if v == "" {
			return "", true
		}
		return msg, re.MatchString(v)
	}
}

// Equals compares against another field read at check time.
func Equals(other func() string, msg string) Rule {
	return func(v string) (string, bool) {
		return msg, v == other()
	}
}

var emailPattern = regexp.MustCompile(`(?i)^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)

// PasswordSpecials is the fixed set of characters that count as "special".
const PasswordSpecials = "@$!%*?&#"

// PasswordStrength requires a lowercase letter, an uppercase letter, a digit
// and a special character, and the first character must itself be one of
// those classes.
func PasswordStrength(msg string) Rule {
	return func(v string) (string, bool) {
		if v == "" {
			return "", true
		}
		var lower, upper, digit, special bool
		for _, r := range v {
			switch {
			case r >= 'a' && r <= 'z':
				lower = true
			case r >= 'A' && r <= 'Z':
				upper = true
			case r >= '0' && r <= '9':
				digit = true
			case strings.ContainsRune(PasswordSpecials, r):
				special = true
			}
		}
		return msg, lower && upper && digit && special && passwordChar(rune(v[0]))
	}
}

func passwordChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') ||
		strings.ContainsRune(PasswordSpecials, r)
}
