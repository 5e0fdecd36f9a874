package analysis

import (
	"sort"
	"time"

	"tiller/internal/core"
)

// MonthlyCategorySpend is one (month, category) spending aggregate.
type MonthlyCategorySpend struct {
	Month    time.Time
	Category string
	Amount   float64
}

// MonthlyTotal is one month's total spending plus any moving-average values
// computed for it, keyed by window size. A month inside the leading window of
// a series, or the incomplete current month, has no entry for that window.
type MonthlyTotal struct {
	Month     time.Time
	Amount    float64
	MovingAvg map[int]float64
}

// MonthlySpendingByCategory groups spending by (month, category) and sums
// amounts. Categories in skip are excluded first.
//
// When maWindow > 1 the sums are replaced by a trailing maWindow-month rolling
// mean computed per category over that category's own monthly series (minimum
// one period, so early months still produce a value). If the latest month in
// the data is the current calendar month it is treated as incomplete and
// dropped before averaging. Dropping it on day 1 of a new month is a known
// policy choice, not a bug.
//
// Output order: categories by total spending descending, then month ascending
// within a category, which is the chart's stacking order.
func MonthlySpendingByCategory(rows []SpendingRow, skip []string, maWindow int, today time.Time) []MonthlyCategorySpend {
	skipped := toSet(skip)
	type key struct {
		month    time.Time
		category string
	}
	sums := make(map[key]float64)
	for _, row := range rows {
		if _, ok := skipped[row.Category]; ok {
			continue
		}
		sums[key{core.MonthOf(row.Date), row.Category}] += row.Amount
	}
	if len(sums) == 0 {
		return nil
	}

	if maWindow > 1 {
		latest := time.Time{}
		for k := range sums {
			if k.month.After(latest) {
				latest = k.month
			}
		}
		if latest.Equal(core.MonthOf(today)) {
			for k := range sums {
				if k.month.Equal(latest) {
					delete(sums, k)
				}
			}
		}
		// Rolling mean per category over that category's own months. Months
		// with no data for the category are skipped, not zero-filled.
		byCategory := make(map[string][]time.Time)
		for k := range sums {
			byCategory[k.category] = append(byCategory[k.category], k.month)
		}
		for category, months := range byCategory {
			sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
			values := make([]float64, len(months))
			for i, m := range months {
				values[i] = sums[key{m, category}]
			}
			averaged := rollingMean(values, maWindow, 1)
			for i, m := range months {
				sums[key{m, category}] = averaged[i]
			}
		}
	}

	totals := make(map[string]float64)
	for k, v := range sums {
		totals[k.category] += v
	}
	out := make([]MonthlyCategorySpend, 0, len(sums))
	for k, v := range sums {
		out = append(out, MonthlyCategorySpend{Month: k.month, Category: k.category, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if totals[out[i].Category] != totals[out[j].Category] {
			return totals[out[i].Category] > totals[out[j].Category]
		}
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Month.Before(out[j].Month)
	})
	return out
}

// MonthlySpendingTotals sums all spending by month and computes one rolling
// average per requested window size over the same series. The raw monthly
// values keep the current month; the averages are computed over the series
// with the incomplete current month excluded, and need a full window (months
// inside the leading window carry no value).
func MonthlySpendingTotals(rows []SpendingRow, skip []string, windows []int, today time.Time) []MonthlyTotal {
	skipped := toSet(skip)
	sums := make(map[time.Time]float64)
	for _, row := range rows {
		if _, ok := skipped[row.Category]; ok {
			continue
		}
		sums[core.MonthOf(row.Date)] += row.Amount
	}
	if len(sums) == 0 {
		return nil
	}
	months := make([]time.Time, 0, len(sums))
	for m := range sums {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	out := make([]MonthlyTotal, len(months))
	index := make(map[time.Time]int, len(months))
	for i, m := range months {
		out[i] = MonthlyTotal{Month: m, Amount: sums[m], MovingAvg: map[int]float64{}}
		index[m] = i
	}

	// Exclude the incomplete current month from the averaged series only.
	complete := months
	if months[len(months)-1].Equal(core.MonthOf(today)) {
		complete = months[:len(months)-1]
	}
	values := make([]float64, len(complete))
	for i, m := range complete {
		values[i] = sums[m]
	}
	for _, n := range windows {
		if n < 1 {
			continue
		}
		averaged := rollingMean(values, n, n)
		for i, m := range complete {
			if i >= n-1 {
				out[index[m]].MovingAvg[n] = averaged[i]
			}
		}
	}
	return out
}

// rollingMean computes a trailing mean over values with the given window.
// Positions with fewer than minPeriods trailing values keep their raw value;
// callers that need a full window gate on index and never surface those.
func rollingMean(values []float64, window, minPeriods int) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		lo := i - window + 1
		if lo < 0 {
			lo = 0
		}
		count := i - lo + 1
		if count < minPeriods {
			out[i] = values[i]
			continue
		}
		var sum float64
		for _, v := range values[lo : i+1] {
			sum += v
		}
		out[i] = sum / float64(count)
	}
	return out
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}
