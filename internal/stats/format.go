package stats

import (
	"math"
	"sort"

	"github.com/codelabbj/icash-admin/internal/constants"
	"github.com/codelabbj/icash-admin/pkg/mobcash"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// maxFractionDigits matches the default precision of a fr-FR number format.
const maxFractionDigits = 3

//nolint:gochecknoglobals // shared printer, safe for concurrent use
var printer = message.NewPrinter(language.MustParse(constants.DisplayLocale))

// FormatNumber renders v with French grouping and decimal comma, or "-"
// when it is missing or not a number.
func FormatNumber(v *float64) string {
	if v == nil || math.IsNaN(*v) {
		return constants.MissingValue
	}

	return printer.Sprint(number.Decimal(*v, number.MaxFractionDigits(maxFractionDigits)))
}

// FormatInt renders an integer count like FormatNumber.
func FormatInt(n int) string {
	v := float64(n)

	return FormatNumber(&v)
}

// FormatCurrency renders v as an FCFA amount, or "-" when it is missing.
func FormatCurrency(v *float64) string {
	s := FormatNumber(v)
	if s == constants.MissingValue {
		return s
	}

	return s + " " + constants.CurrencyLabel
}

// FormatPercent renders a percentage with one decimal.
func FormatPercent(p float64) string {
	return printer.Sprint(number.Decimal(p, number.MinFractionDigits(1), number.MaxFractionDigits(1))) + " %"
}

// Share is the part of one key in a breakdown.
type Share struct {
	Key     string  `json:"key"     yaml:"key"`
	Count   int     `json:"count"   yaml:"count"`
	Amount  float64 `json:"amount"  yaml:"amount"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// AppShares breaks transactions down by betting application, as a
// percentage of the total amount. Applications are sorted by name since the
// backend sends an object.
func AppShares(byApp map[string]mobcash.AppTotal) []Share {
	var total float64
	for _, t := range byApp {
		total += t.TotalAmount
	}

	shares := make([]Share, 0, len(byApp))
	for app, t := range byApp {
		shares = append(shares, Share{
			Key:     app,
			Count:   t.Count,
			Amount:  t.TotalAmount,
			Percent: percent(t.TotalAmount, total),
		})
	}

	sort.Slice(shares, func(i, j int) bool {
		return shares[i].Key < shares[j].Key
	})

	return shares
}

// SourceShares breaks users down by registration source, as a percentage of
// the active users. Without an active user count every share is zero.
func SourceShares(growth mobcash.UserGrowth) []Share {
	var active float64
	if growth.ActiveUsersCount != nil {
		active = *growth.ActiveUsersCount
	}

	shares := make([]Share, 0, len(growth.UsersBySource))
	for _, s := range growth.UsersBySource {
		shares = append(shares, Share{
			Key:     s.Source,
			Count:   s.Count,
			Percent: percent(float64(s.Count), active),
		})
	}

	return shares
}

func percent(part, total float64) float64 {
	if total <= 0 {
		return 0
	}

	return part / total * 100
}
