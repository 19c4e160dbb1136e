package serial

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Length is the number of characters in a valid serial number.
const Length = 10

// ErrInvalid is returned when a string is not a valid serial number.
var ErrInvalid = errors.New("invalid serial number")

var pattern = regexp.MustCompile(`^[0-9A-F]{10}$`)

// Number is a validated tablet serial number.
type Number string

// String returns the serial number as a plain string.
func (n Number) String() string {
	return string(n)
}

// IsValid reports whether s is a serial number: exactly 10 characters, all in [0-9A-F].
func IsValid(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	if len(s) != Length {
		return false
	}
	return pattern.MatchString(s)
}

// Parse returns s as a Number, or an error wrapping ErrInvalid.
func Parse(s string) (Number, error) {
	if !IsValid(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return Number(s), nil
}
