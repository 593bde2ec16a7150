package validate

import (
	"testing"
)

func TestMinLength(t *testing.T) {
	ok := MinLength(3)

	cases := []struct {
		in   string
		want bool
	}{
		{"", true}, // emptiness is Required's concern
		{"ab", false},
		{"abc", true},
		{"héllo", true},
	}
	for _, c := range cases {
		if got := ok(c.in); got != c.want {
			t.Errorf("MinLength(3)(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMaxLength(t *testing.T) {
	ok := MaxLength(3)

	if !ok("abc") {
		t.Error("MaxLength(3) should accept 3 characters")
	}
	if ok("abcd") {
		t.Error("MaxLength(3) should reject 4 characters")
	}
	// Rune counting, not byte counting
	if !ok("héé") {
		t.Error("MaxLength should count runes")
	}
}

func TestPattern(t *testing.T) {
	ok := Pattern(`^\d{4}$`)

	if !ok("1234") {
		t.Error("pattern should match")
	}
	if ok("12a4") {
		t.Error("pattern should not match")
	}
	if !ok("") {
		t.Error("empty value should pass pattern")
	}
}

func TestPatternInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid pattern")
		}
	}()
	Pattern(`(`)
}

func TestEmail(t *testing.T) {
	ok := Email()

	valid := []string{"", "a@b.co", "first.last+tag@example.org"}
	for _, s := range valid {
		if !ok(s) {
			t.Errorf("Email()(%q) should pass", s)
		}
	}

	invalid := []string{"plain", "a@b", "@example.com", "a b@c.de"}
	for _, s := range invalid {
		if ok(s) {
			t.Errorf("Email()(%q) should fail", s)
		}
	}
}

func TestURL(t *testing.T) {
	ok := URL()

	if !ok("https://example.com/path") {
		t.Error("absolute URL should pass")
	}
	if ok("/relative/path") {
		t.Error("relative URL should fail")
	}
	if !ok("") {
		t.Error("empty value should pass")
	}
}

func TestUUID(t *testing.T) {
	ok := UUID()

	if !ok("550e8400-e29b-41d4-a716-446655440000") {
		t.Error("well-formed UUID should pass")
	}
	if ok("550e8400-e29b-41d4-a716") {
		t.Error("truncated UUID should fail")
	}
}

func TestCharacterClasses(t *testing.T) {
	if !Alpha()("abcXYZ") || Alpha()("abc1") {
		t.Error("Alpha should accept letters only")
	}
	if !AlphaNumeric()("abc123") || AlphaNumeric()("a-b") {
		t.Error("AlphaNumeric should accept letters and digits only")
	}
	if !Numeric()("0123") || Numeric()("12a") {
		t.Error("Numeric should accept digits only")
	}
}

func TestPhone(t *testing.T) {
	ok := Phone()

	valid := []string{"", "+1-234-567-8900", "(234) 567-8900", "234.567.8900"}
	for _, s := range valid {
		if !ok(s) {
			t.Errorf("Phone()(%q) should pass", s)
		}
	}
	if ok("not a phone") {
		t.Error("Phone should reject non-numbers")
	}
}

func TestOneOf(t *testing.T) {
	ok := OneOf("a", "b")

	if !ok("a") || !ok("b") {
		t.Error("allowed values should pass")
	}
	if ok("c") {
		t.Error("disallowed value should fail")
	}
}

func TestNumericBounds(t *testing.T) {
	if !Min(5)(5) || Min(5)(4.9) {
		t.Error("Min should be inclusive")
	}
	if !Max(5)(5) || Max(5)(5.1) {
		t.Error("Max should be inclusive")
	}
}

func TestStep(t *testing.T) {
	ok := Step(0.1, 0)

	if !ok(0.3) {
		t.Error("0.3 should be a whole number of 0.1 steps despite float rounding")
	}
	if ok(0.35) {
		t.Error("0.35 is not on the 0.1 grid")
	}

	// Zero step accepts everything
	if !Step(0, 0)(123.456) {
		t.Error("zero step should accept any value")
	}

	// Anchored at a base
	if !Step(5, 2)(12) || Step(5, 2)(11) {
		t.Error("step should be anchored at base")
	}

	// Values below base are a negative number of steps away
	if !Step(2, 10)(8) {
		t.Error("8 is one step below base 10")
	}
	if !Step(5, 0)(-10) || Step(5, 0)(-12) {
		t.Error("negative multiples should be on the grid")
	}
	if !Step(0.1, 0)(-0.3) {
		t.Error("-0.3 should be a whole number of 0.1 steps despite float rounding")
	}
}

func TestCombinators(t *testing.T) {
	both := All(MinLength(2), MaxLength(4))
	if !both("abc") || both("a") || both("abcde") {
		t.Error("All should require every predicate")
	}

	either := Any(Numeric(), Alpha())
	if !either("123") || !either("abc") || either("a1-") {
		t.Error("Any should require at least one predicate")
	}

	if Any[string]()("x") {
		t.Error("empty Any should be vacuously false")
	}
}
