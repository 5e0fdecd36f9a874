package analysis

import (
	"fmt"
	"sort"
	"time"

	"tiller/internal/core"
)

// comparativeSkip mirrors the filter of the comparative chart: income and
// investment moves distort day-by-day pace and are left out.
var comparativeSkip = map[string]struct{}{
	"Paycheck":              {},
	"Investments in Stocks": {},
	"Investments in Crypto": {},
}

// CumulativeDay is one point of the comparative cumulative view: spending to
// date within Month as of Day (day of the month).
type CumulativeDay struct {
	Month  time.Time
	Label  string
	Day    int
	Amount float64
}

// ComparativeCumulative computes per-day cumulative spending within each
// month over a trailing window of nMonths calendar months, so the current
// month's pace can be overlaid against prior months'. Months are labeled by
// relative offset ("N months ago, YYYY-MM"), the most recent as
// "This Month, YYYY-MM". Output is ordered by month then day.
func ComparativeCumulative(txs []core.Transaction, nMonths int) []CumulativeDay {
	daily := make(map[time.Time]float64)
	var latest time.Time
	for _, tx := range txs {
		if _, ok := comparativeSkip[tx.Category]; ok {
			continue
		}
		day := core.DayOf(tx.Date)
		daily[day] -= tx.Amount // spending convention: positive = spent
		if day.After(latest) {
			latest = day
		}
	}
	if len(daily) == 0 {
		return nil
	}

	days := make([]time.Time, 0, len(daily))
	for day := range daily {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	// Cumulate over every day first, then cut to the window. A cutoff that
	// lands mid-month keeps the boundary month's month-to-date values.
	cutoff := latest.AddDate(0, -nMonths, 0)
	latestMonth := core.MonthOf(latest)
	out := make([]CumulativeDay, 0, len(days))
	running := make(map[time.Time]float64)
	for _, day := range days {
		month := core.MonthOf(day)
		running[month] += daily[day]
		if day.Before(cutoff) {
			continue
		}
		out = append(out, CumulativeDay{
			Month:  month,
			Label:  relativeMonthLabel(month, latestMonth),
			Day:    day.Day(),
			Amount: running[month],
		})
	}
	return out
}

func relativeMonthLabel(month, latest time.Time) string {
	offset := (latest.Year()-month.Year())*12 + int(latest.Month()) - int(month.Month())
	if offset == 0 {
		return fmt.Sprintf("This Month, %s", month.Format("2006-01"))
	}
	return fmt.Sprintf("%d months ago, %s", offset, month.Format("2006-01"))
}
