package analysis

import (
	"sort"
	"time"

	"tiller/internal/core"
)

// DailyBalance is one resampled row: exactly one per (account, day) for every
// day in the shared window, with no undefined balances.
type DailyBalance struct {
	AccountID string
	Account   string
	Class     string
	Date      time.Time
	Balance   float64
}

// accountSeries is the deduplicated, sign-adjusted snapshot sequence of one
// account, sorted by date.
type accountSeries struct {
	id      string
	account string
	class   string
	points  []core.BalanceSnapshot
}

// ResampleBalances converts sparse, irregular balance snapshots into a
// continuous daily series per account over [earliest snapshot date, today]:
//
//  1. Deduplicate by (account, day), keeping the last-seen snapshot.
//  2. Sort by account then date.
//  3. Negate balances of Liability accounts so net worth sums by addition.
//  4. Per account, reindex onto the shared daily grid: linear interpolation
//     between known points, last known value carried after the final point,
//     zero before the first point (an account with no history yet contributes
//     zero, not missing).
//
// Account name and class are carried from the account's snapshots; this
// assumes account identity and class do not change over time, which holds in
// practice but is not a general invariant.
func ResampleBalances(snaps []core.BalanceSnapshot, today time.Time) []DailyBalance {
	if len(snaps) == 0 {
		return nil
	}
	series := dedupe(snaps)

	start := series[0].points[0].Date
	for _, s := range series {
		if d := s.points[0].Date; d.Before(start) {
			start = d
		}
	}
	end := core.DayOf(today)
	if end.Before(start) {
		end = start
	}
	days := int(end.Sub(start).Hours()/24) + 1

	out := make([]DailyBalance, 0, days*len(series))
	for _, s := range series {
		next := 0 // index of the first known point at or after the current day
		for i := 0; i < days; i++ {
			day := start.AddDate(0, 0, i)
			for next < len(s.points) && s.points[next].Date.Before(day) {
				next++
			}
			out = append(out, DailyBalance{
				AccountID: s.id,
				Account:   s.account,
				Class:     s.class,
				Date:      day,
				Balance:   balanceAt(s.points, next, day),
			})
		}
	}
	return out
}

// balanceAt resolves the balance for one day given the index of the first
// known point not before that day.
func balanceAt(points []core.BalanceSnapshot, next int, day time.Time) float64 {
	switch {
	case next >= len(points):
		// Past the last snapshot: carry the last known value forward.
		return points[len(points)-1].Balance
	case points[next].Date.Equal(day):
		return points[next].Balance
	case next == 0:
		// Before the account's first snapshot: contributes zero.
		return 0
	default:
		prev, curr := points[next-1], points[next]
		span := curr.Date.Sub(prev.Date).Hours() / 24
		into := day.Sub(prev.Date).Hours() / 24
		return prev.Balance + (curr.Balance-prev.Balance)*into/span
	}
}

// dedupe groups snapshots per account, keeps the last snapshot per day,
// negates liabilities and sorts everything.
func dedupe(snaps []core.BalanceSnapshot) []accountSeries {
	type key struct {
		id  string
		day time.Time
	}
	last := make(map[key]core.BalanceSnapshot)
	for _, snap := range snaps {
		snap.Date = core.DayOf(snap.Date)
		if snap.Class == core.ClassLiability {
			snap.Balance = -snap.Balance
		}
		last[key{snap.AccountID, snap.Date}] = snap
	}
	byAccount := make(map[string][]core.BalanceSnapshot)
	for _, snap := range last {
		byAccount[snap.AccountID] = append(byAccount[snap.AccountID], snap)
	}
	order := make([]string, 0, len(byAccount))
	for id := range byAccount {
		order = append(order, id)
	}
	sort.Strings(order)
	series := make([]accountSeries, 0, len(order))
	for _, id := range order {
		points := byAccount[id]
		sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
		series = append(series, accountSeries{
			id:      id,
			account: points[0].Account,
			class:   points[0].Class,
			points:  points,
		})
	}
	return series
}
