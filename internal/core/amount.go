// Package core provides the ledger domain types plus amount and date parsing.
//
// Amounts arrive currency-formatted (e.g. "$3,200.00"); parsing strips the
// symbol and separators and fails loudly on anything else, since a silently
// coerced amount would corrupt every downstream sum.
package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
)

// ParseAmount converts a currency-formatted string to a signed float64.
//
// It strips a leading "$" and thousands separators, then parses the residue
// as a decimal number. An empty or whitespace-only string parses to 0;
// Tiller leaves pending rows blank and they must not break the dashboard.
// Any other non-numeric residue returns an error wrapping ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("$3,200.00") -> 3200, nil
//	ParseAmount("-$45.10")   -> -45.1, nil
//	ParseAmount("")          -> 0, nil
//	ParseAmount("n/a")       -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return v, nil
}

// dateLayouts are the formats Tiller sheets use for Date cells, most common
// first. US-style month/day ordering.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"1/2/06",
}

// ParseDate parses a sheet date cell, normalized to midnight UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}
