// Package stats reshapes the dashboard statistics into chart rows and
// formats their figures for display.
package stats

import (
	"fmt"
	"strings"

	"github.com/codelabbj/icash-admin/internal/constants"
)

// Period is the bucket granularity of an evolution chart.
type Period string

// Periods.
const (
	Daily   Period = "daily"
	Weekly  Period = "weekly"
	Monthly Period = "monthly"
	Yearly  Period = "yearly"
)

// DefaultPeriod is selected when the dashboard opens.
const DefaultPeriod = Monthly

// VolumePeriods are the periods of the transaction volume chart.
func VolumePeriods() []Period {
	return []Period{Daily, Weekly, Monthly, Yearly}
}

// UserPeriods are the periods of the user growth chart, which has no
// yearly buckets.
func UserPeriods() []Period {
	return []Period{Daily, Weekly, Monthly}
}

// ParseVolumePeriod parses a volume chart period.
func ParseVolumePeriod(s string) (Period, error) {
	return parsePeriod(s, VolumePeriods())
}

// ParseUserPeriod parses a user growth chart period.
func ParseUserPeriod(s string) (Period, error) {
	return parsePeriod(s, UserPeriods())
}

func parsePeriod(s string, allowed []Period) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if p == "" {
		return DefaultPeriod, nil
	}

	for _, a := range allowed {
		if p == a {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w %q, expected one of %s", constants.ErrInvalidPeriod, s, joinPeriods(allowed))
}

func joinPeriods(periods []Period) string {
	names := make([]string, len(periods))
	for i, p := range periods {
		names[i] = string(p)
	}

	return strings.Join(names, ", ")
}
