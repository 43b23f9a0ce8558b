package service

import (
	"fmt"
	"strings"
	"time"

	appErrors "github.com/gymadmin/gym-api/pkg/errors"
)

// membershipSpan is the calendar span a membership type adds to the
// registration date.
type membershipSpan struct {
	years  int
	months int
	days   int
}

// membershipDurations maps normalized membership type labels to their span.
// Labels are matched after trimming surrounding whitespace and lowercasing.
var membershipDurations = map[string]membershipSpan{
	"semanal":    {days: 7},
	"mensual":    {months: 1},
	"trimestral": {months: 3},
	"anual":      {years: 1},
}

// ResolveExpiration computes the expiration date for a membership type label
// and a registration date. Month and year arithmetic follows time.AddDate
// normalization: a monthly membership registered on 2024-01-31 expires on
// 2024-03-02. An unrecognized label is a hard error carrying the original
// label; it is never defaulted to a zero duration.
func ResolveExpiration(label string, registered time.Time) (time.Time, error) {
	span, ok := membershipDurations[strings.ToLower(strings.TrimSpace(label))]
	if !ok {
		return time.Time{}, appErrors.Clone(appErrors.ErrUnknownMembershipType, fmt.Sprintf("unknown membership type: %s", label))
	}
	return registered.AddDate(span.years, span.months, span.days), nil
}

// FormatDate renders a calendar date in ISO form, dropping any time of day.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
