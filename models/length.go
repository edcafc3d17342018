package models

import (
	"errors"
	"fmt"
	"strings"
)

// SummaryLength is the user's preference for how long a summary should be.
type SummaryLength string

const (
	LengthShort  SummaryLength = "short"
	LengthMedium SummaryLength = "medium"
	LengthLong   SummaryLength = "long"
)

var ErrInvalidLength = errors.New("summary length must be one of short, medium, long")

// SummaryLengths lists the accepted values in display order.
var SummaryLengths = []SummaryLength{LengthShort, LengthMedium, LengthLong}

func (l SummaryLength) Valid() bool {
	switch l {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}

// Label is the dropdown text for the length.
func (l SummaryLength) Label() string {
	switch l {
	case LengthShort:
		return "Short Summary"
	case LengthLong:
		return "Long Summary"
	default:
		return "Medium Summary"
	}
}

// ParseSummaryLength accepts short, medium or long in any case.
func ParseSummaryLength(s string) (SummaryLength, error) {
	l := SummaryLength(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: got %q", ErrInvalidLength, s)
	}
	return l, nil
}
