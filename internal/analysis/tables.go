package analysis

import (
	"sort"
	"time"

	"tiller/internal/core"
)

// DatedAmount is a generic (date, amount) series point.
type DatedAmount struct {
	Date   time.Time
	Amount float64
}

// NetWorth sums resampled daily balances per day. With liabilities already
// negated by the resampler this is plain addition.
func NetWorth(daily []DailyBalance) []DatedAmount {
	sums := make(map[time.Time]float64)
	for _, row := range daily {
		sums[row.Date] += row.Balance
	}
	out := make([]DatedAmount, 0, len(sums))
	for date, amount := range sums {
		out = append(out, DatedAmount{Date: date, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// MonthlyAccountBalance is one stacked-bar segment: an account's balance for
// a month.
type MonthlyAccountBalance struct {
	Month   time.Time
	Account string
	Balance float64
}

// MonthlyAccountBalances takes the first resampled daily value per
// (month, account), skipping the named accounts. The input is the resampler's
// output, so liabilities carry negated sign and the non-negative filter drops
// them from the equity view. Output is ordered by month, then by each
// account's total balance across all months descending, the chart's global
// stacking order.
func MonthlyAccountBalances(daily []DailyBalance, skipAccounts []string) []MonthlyAccountBalance {
	skipped := toSet(skipAccounts)
	type key struct {
		month   time.Time
		account string
	}
	first := make(map[key]DailyBalance)
	for _, row := range daily {
		if row.Balance < 0 {
			continue
		}
		if _, ok := skipped[row.Account]; ok {
			continue
		}
		k := key{core.MonthOf(row.Date), row.Account}
		if prev, ok := first[k]; !ok || row.Date.Before(prev.Date) {
			first[k] = row
		}
	}
	totals := make(map[string]float64)
	out := make([]MonthlyAccountBalance, 0, len(first))
	for k, row := range first {
		totals[k.account] += row.Balance
		out = append(out, MonthlyAccountBalance{Month: k.month, Account: k.account, Balance: row.Balance})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Month.Equal(out[j].Month) {
			return out[i].Month.Before(out[j].Month)
		}
		if totals[out[i].Account] != totals[out[j].Account] {
			return totals[out[i].Account] > totals[out[j].Account]
		}
		return out[i].Account < out[j].Account
	})
	return out
}

// SingleCategory returns one category's transactions sorted by amount
// ascending (largest outflow first in ledger sign).
func SingleCategory(txs []core.Transaction, category string) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if tx.Category == category {
			out = append(out, tx)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount < out[j].Amount })
	return out
}

// MonthlyCategoryTotals sums one category's amounts per month, in ledger
// sign. With category "Paycheck" this is the monthly income series.
func MonthlyCategoryTotals(txs []core.Transaction, category string) []DatedAmount {
	sums := make(map[time.Time]float64)
	for _, tx := range txs {
		if tx.Category != category {
			continue
		}
		sums[core.MonthOf(tx.Date)] += tx.Amount
	}
	out := make([]DatedAmount, 0, len(sums))
	for month, amount := range sums {
		out = append(out, DatedAmount{Date: month, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// SpendingBreakdown filters spending rows to a month and/or year (zero means
// no filter): the per-period feed for the category pie. Percentage fields
// keep their whole-period values, matching the source chart.
func SpendingBreakdown(rows []SpendingRow, month time.Month, year int) []SpendingRow {
	var out []SpendingRow
	for _, row := range rows {
		if month != 0 && row.Date.Month() != month {
			continue
		}
		if year != 0 && row.Date.Year() != year {
			continue
		}
		out = append(out, row)
	}
	return out
}
