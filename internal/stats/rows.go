package stats

import (
	"fmt"
	"time"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Display layouts of the bucket labels.
const (
	dayLabelLayout  = "02/01/2006"
	yearLabelLayout = "2006"
)

// Layouts accepted for bucket dates, most precise first.
//
//nolint:gochecknoglobals // fixed parsing table
var bucketLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006-01",
	"2006",
}

//nolint:gochecknoglobals // French month names, January first
var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// VolumeRow is one point of the transaction volume chart.
type VolumeRow struct {
	Date        string  `json:"date"         yaml:"date"`
	TypeTrans   string  `json:"type_trans"   yaml:"type_trans"`
	TotalAmount float64 `json:"total_amount" yaml:"total_amount"`
	Count       int     `json:"count"        yaml:"count"`
}

// UserRow is one point of the user growth chart.
type UserRow struct {
	Date  string `json:"date"  yaml:"date"`
	Count int    `json:"count" yaml:"count"`
}

// VolumeRows flattens the buckets of period into chart rows, in the order
// the backend sent them. The result replaces any previous dataset.
func VolumeRows(evolution mobcash.VolumeEvolution, period Period) ([]VolumeRow, error) {
	var buckets []mobcash.VolumeBucket

	switch period {
	case Daily:
		buckets = evolution.Daily
	case Weekly:
		buckets = evolution.Weekly
	case Monthly:
		buckets = evolution.Monthly
	case Yearly:
		buckets = evolution.Yearly
	default:
		return nil, fmt.Errorf("%w %q", constants.ErrInvalidPeriod, period)
	}

	rows := make([]VolumeRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, VolumeRow{
			Date:        Label(period, bucketDate(period, b.Date, b.Week, b.Month, b.Year)),
			TypeTrans:   b.TypeTrans,
			TotalAmount: b.TotalAmount,
			Count:       b.Count,
		})
	}

	return rows, nil
}

// UserRows flattens the new user buckets of period into chart rows.
func UserRows(newUsers mobcash.NewUsers, period Period) ([]UserRow, error) {
	var buckets []mobcash.UserBucket

	switch period {
	case Daily:
		buckets = newUsers.Daily
	case Weekly:
		buckets = newUsers.Weekly
	case Monthly:
		buckets = newUsers.Monthly
	default:
		return nil, fmt.Errorf("%w %q", constants.ErrInvalidPeriod, period)
	}

	rows := make([]UserRow, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, UserRow{
			Date:  Label(period, bucketDate(period, b.Date, b.Week, b.Month, "")),
			Count: b.Count,
		})
	}

	return rows, nil
}

// bucketDate picks the date field matching period, falling back to the
// first one set.
func bucketDate(period Period, date, week, month, year string) string {
	var preferred string

	switch period {
	case Daily:
		preferred = date
	case Weekly:
		preferred = week
	case Monthly:
		preferred = month
	case Yearly:
		preferred = year
	}

	if preferred != "" {
		return preferred
	}

	for _, s := range []string{date, week, month, year} {
		if s != "" {
			return s
		}
	}

	return ""
}

// Label formats a bucket date for display: dd/mm/yyyy for days and weeks,
// the upper-cased French month name for months and the year for years.
// Dates that do not parse are shown as sent.
func Label(period Period, raw string) string {
	t, ok := parseBucketDate(raw)
	if !ok {
		return raw
	}

	switch period {
	case Monthly:
		return MonthName(t.Month())
	case Yearly:
		return t.Format(yearLabelLayout)
	case Daily, Weekly:
		return t.Format(dayLabelLayout)
	default:
		return raw
	}
}

// MonthName returns the upper-cased French name of m.
func MonthName(m time.Month) string {
	return cases.Upper(language.French).String(frenchMonths[m-1])
}

func parseBucketDate(raw string) (time.Time, bool) {
	for _, layout := range bucketLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
