package analysis

import (
	"tiller/internal/core"
)

// Categories and types that never count as spending even when their category
// nets negative: money moving between own accounts, not leaving them.
var (
	excludedTypes = map[string]struct{}{
		"Transfer": {},
	}
	excludedCategories = map[string]struct{}{
		"Investments in Stocks": {},
		"Investments in Crypto": {},
		"Credit Card Payment":   {},
	}
)

// SpendingRow is one classified spending transaction. Amount is negated to
// the spending sign convention: positive = amount spent.
type SpendingRow struct {
	core.Transaction
	// AmountPct is this row's share of total spending, in percent.
	AmountPct float64
	// CategoryPct is this row's category share of total spending, in percent.
	CategoryPct float64
}

// isSpending reports whether an enriched transaction belongs to the spending
// domain. The test is on the category total, not the row amount: a refund
// inside a net-negative category still counts, a negative adjustment inside
// a net-positive category (e.g. Paycheck) never does.
func isSpending(tx core.Transaction) bool {
	if tx.CategoryTotal >= 0 {
		return false
	}
	if _, ok := excludedTypes[tx.Type]; ok {
		return false
	}
	if _, ok := excludedCategories[tx.Category]; ok {
		return false
	}
	return true
}

// FilterSpending keeps the enriched transactions that classify as spending.
// Amounts keep the ledger sign, so the filter is idempotent: applying it to
// its own output selects every row again.
func FilterSpending(txs []core.Transaction) []core.Transaction {
	var out []core.Transaction
	for _, tx := range txs {
		if isSpending(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// Spending filters enriched transactions down to spending rows, attaches the
// two percentage shares and negates amounts to the spending convention.
func Spending(txs []core.Transaction) []SpendingRow {
	kept := FilterSpending(txs)
	if len(kept) == 0 {
		return nil
	}
	var total float64
	for _, tx := range kept {
		total += tx.Amount
	}
	// total is a sum over net-negative categories only, so it is < 0 here.
	out := make([]SpendingRow, len(kept))
	for i, tx := range kept {
		row := SpendingRow{
			Transaction: tx,
			AmountPct:   tx.Amount / total * 100,
			CategoryPct: tx.CategoryTotal / total * 100,
		}
		row.Amount = -row.Amount
		out[i] = row
	}
	return out
}
