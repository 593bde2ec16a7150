package validate

import (
	"math"
	"net/url"
	"regexp"
	"unicode"
)

// ----------------------------------------------------------------------------
// String predicates
// ----------------------------------------------------------------------------

// MinLength is satisfied when the string has at least n characters.
// Empty strings pass; Required handles emptiness.
func MinLength(n int) func(string) bool {
	return func(s string) bool {
		if s == "" {
			return true
		}
		return len([]rune(s)) >= n
	}
}

// MaxLength is satisfied when the string has at most n characters.
func MaxLength(n int) func(string) bool {
	return func(s string) bool {
		return len([]rune(s)) <= n
	}
}

// Pattern is satisfied when the string matches the given regular expression.
// The pattern is compiled once; an invalid pattern is a programmer error
// and panics at construction.
func Pattern(pattern string) func(string) bool {
	re := regexp.MustCompile(pattern)
	return func(s string) bool {
		if s == "" {
			return true
		}
		return re.MatchString(s)
	}
}

// emailPattern is a basic sanity check: requires @ and . in the domain part.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is satisfied when the string looks like an email address.
func Email() func(string) bool {
	return func(s string) bool {
		if s == "" {
			return true
		}
		return emailPattern.MatchString(s)
	}
}

// URL is satisfied when the string parses as an absolute URL.
func URL() func(string) bool {
	return func(s string) bool {
		if s == "" {
			return true
		}
		u, err := url.Parse(s)
		return err == nil && u.Scheme != "" && u.Host != ""
	}
}

// uuidPattern matches UUID format.
var uuidPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// UUID is satisfied when the string is a well-formed UUID.
func UUID() func(string) bool {
	return func(s string) bool {
		if s == "" {
			return true
		}
		return uuidPattern.MatchString(s)
	}
}

// Alpha is satisfied when the string contains only letters.
func Alpha() func(string) bool {
	return func(s string) bool {
		for _, r := range s {
			if !unicode.IsLetter(r) {
				return false
			}
		}
		return true
	}
}

// AlphaNumeric is satisfied when the string contains only letters and digits.
func AlphaNumeric() func(string) bool {
	return func(s string) bool {
		for _, r := range s {
			if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	}
}

// Numeric is satisfied when the string contains only digits.
func Numeric() func(string) bool {
	return func(s string) bool {
		for _, r := range s {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return true
	}
}

// phonePattern matches common phone formats: +1-234-567-8900,
// (234) 567-8900, 234.567.8900, etc.
var phonePattern = regexp.MustCompile(`^[\+]?[(]?[0-9]{1,4}[)]?[-\s\.]?[(]?[0-9]{1,3}[)]?[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,4}[-\s\.]?[0-9]{1,9}$`)

// Phone is satisfied when the string looks like a phone number.
func Phone() func(string) bool {
	return func(s string) bool {
		if s == "" {
			return true
		}
		return phonePattern.MatchString(s)
	}
}

// OneOf is satisfied when the value equals one of the allowed values.
func OneOf[T comparable](allowed ...T) func(T) bool {
	return func(v T) bool {
		for _, a := range allowed {
			if v == a {
				return true
			}
		}
		return false
	}
}

// ----------------------------------------------------------------------------
// Numeric predicates
// ----------------------------------------------------------------------------

// Min is satisfied when the value is >= n.
func Min(n float64) func(float64) bool {
	return func(v float64) bool {
		return v >= n
	}
}

// Max is satisfied when the value is <= n.
func Max(n float64) func(float64) bool {
	return func(v float64) bool {
		return v <= n
	}
}

// Step is satisfied when the value is a whole number of steps away from
// base. A step of 0 accepts everything.
func Step(step, base float64) func(float64) bool {
	return func(v float64) bool {
		if step == 0 {
			return true
		}
		q := (v - base) / step
		// Tolerate float rounding near whole multiples
		diff := q - math.Round(q)
		return diff < 1e-9 && diff > -1e-9
	}
}
