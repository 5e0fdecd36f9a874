// Package analysis turns raw ledger rows into analysis-ready tables:
// category enrichment, spending classification, balance resampling and
// monthly aggregation with moving averages. Every function is pure: each
// call derives its output from the inputs alone, nothing is cached.
package analysis

import (
	"tiller/internal/core"
)

// CategoryTotals sums signed amounts per category across the whole set.
// Computed once and joined against every row, never per row.
func CategoryTotals(txs []core.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, tx := range txs {
		totals[tx.Category] += tx.Amount
	}
	return totals
}

// Enrich attaches Group, Type and CategoryTotal to every transaction.
// Categories missing from the lookup get empty Group/Type; unseen or custom
// categories must not block the dashboard.
func Enrich(txs []core.Transaction, lookup core.CategoryLookup) []core.Transaction {
	totals := CategoryTotals(txs)
	out := make([]core.Transaction, len(txs))
	for i, tx := range txs {
		info := lookup.Resolve(tx.Category)
		tx.Group = info.Group
		tx.Type = info.Type
		tx.CategoryTotal = totals[tx.Category]
		out[i] = tx
	}
	return out
}
