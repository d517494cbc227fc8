package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Fraction is a rational frame rate such as 30/1 or 30000/1001.
type Fraction struct {
	Num int64
	Den int64
}

// IsValid reports whether both terms are positive.
func (f Fraction) IsValid() bool {
	return f.Num > 0 && f.Den > 0
}

// Value returns the fraction as a float, or 0 when the denominator is 0.
func (f Fraction) Value() float64 {
	if f.Den == 0 {
		return 0
	}

	return float64(f.Num) / float64(f.Den)
}

// String formats the fraction as "num/den".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// ParseFraction parses "num/den" or a bare integer ("30" is 30/1).
func ParseFraction(s string) (Fraction, error) {
	s = strings.TrimSpace(s)
	numStr, denStr, found := strings.Cut(s, "/")

	num, err := strconv.ParseInt(strings.TrimSpace(numStr), 10, 64)
	if err != nil {
		return Fraction{}, fmt.Errorf("%w: %q: %v", ErrInvalidFraction, s, err)
	}

	den := int64(1)

	if found {
		den, err = strconv.ParseInt(strings.TrimSpace(denStr), 10, 64)
		if err != nil {
			return Fraction{}, fmt.Errorf("%w: %q: %v", ErrInvalidFraction, s, err)
		}
	}

	if den == 0 {
		return Fraction{}, fmt.Errorf("%w: %q: zero denominator", ErrInvalidFraction, s)
	}

	return Fraction{Num: num, Den: den}, nil
}
