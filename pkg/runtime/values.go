package runtime

import (
	"math"
	"strconv"
	"strings"
)

const (
	TextTrue  = "true"
	TextFalse = "false"
	TextVoid  = "void"
)

// Value is a runtime value. Every value is text; the numeric reading is
// derived from the text on demand, or cached when arithmetic produced it.
type Value struct {
	text   string
	num    float64
	hasNum bool
}

// Text wraps a string as a value.
func Text(s string) Value {
	return Value{text: s}
}

// Number formats f the way arithmetic results are printed. The cached
// numeric reading is that of the printed text, so 1/3 reads back as
// 0.333333 exactly like a literal would.
func Number(f float64) Value {
	text := FormatNumber(f)
	return Value{text: text, num: ParseNumberPrefix(text), hasNum: true}
}

// Bool produces the literal text "true" or "false".
func Bool(b bool) Value {
	if b {
		return Text(TextTrue)
	}
	return Text(TextFalse)
}

// Void is the value of a call that returns nothing.
func Void() Value {
	return Text(TextVoid)
}

func (v Value) String() string { return v.text }

// Float returns the numeric reading of the value: the longest leading
// prefix that reads as a decimal number, or 0.
func (v Value) Float() float64 {
	if v.hasNum {
		return v.num
	}
	return ParseNumberPrefix(v.text)
}

// Truthy reports whether a condition holds: the text is "true" or its
// numeric reading is non-zero.
func (v Value) Truthy() bool {
	return v.text == TextTrue || v.Float() != 0
}

// StartsWithDigit reports whether the first byte of the text is an ASCII
// digit. String concatenation versus numeric addition hinges on this.
func (v Value) StartsWithDigit() bool {
	return len(v.text) > 0 && v.text[0] >= '0' && v.text[0] <= '9'
}

// Equal compares the text forms.
func (v Value) Equal(other Value) bool {
	return v.text == other.text
}

// FormatNumber renders f with six significant digits, dropping trailing
// zeros and switching to exponent form for very large or small magnitudes
// (3 -> "3", 0.1+0.2 -> "0.3", 1e6 -> "1e+06").
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		if math.Signbit(f) {
			return "-nan"
		}
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// ParseNumberPrefix reads a number from the start of s, ignoring leading
// whitespace and anything after the number: "12abc" is 12, "abc" is 0,
// " -3.5e2x" is -350. Infinity and NaN spellings are accepted.
func ParseNumberPrefix(s string) float64 {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	if special, n := matchSpecial(s[i:]); n > 0 {
		if start < len(s) && s[start] == '-' {
			return -special
		}
		return special
	}

	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for j < len(s) && isDigit(s[j]) {
				j++
			}
			i = j
		}
	}
	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		// Out-of-range literals still yield ±Inf or 0 from ParseFloat.
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			return f
		}
		return 0
	}
	return f
}

func matchSpecial(s string) (float64, int) {
	if len(s) > len("infinity") {
		s = s[:len("infinity")]
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "infinity"):
		return math.Inf(1), len("infinity")
	case strings.HasPrefix(lower, "inf"):
		return math.Inf(1), len("inf")
	case strings.HasPrefix(lower, "nan"):
		return math.NaN(), len("nan")
	}
	return 0, 0
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
