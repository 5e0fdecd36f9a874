package analysis

import (
	"testing"
	"time"

	"tiller/internal/core"
)

// spendingFixture builds spending rows with one category spending amt per
// listed month (ledger sign applied internally).
func spendingFixture(category string, months []time.Time, amounts []float64) []SpendingRow {
	var txs []core.Transaction
	for i, m := range months {
		txs = append(txs, tx(m.AddDate(0, 0, 4), category, -amounts[i]))
	}
	return Spending(Enrich(txs, core.CategoryLookup{}))
}

// Monthly amounts [100,200,300] with a 2-month moving average (min periods 1)
// give [100,150,250].
func TestMonthlyByCategoryMovingAverage(t *testing.T) {
	months := []time.Time{day(2024, 1, 1), day(2024, 2, 1), day(2024, 3, 1)}
	rows := spendingFixture("Groceries", months, []float64{100, 200, 300})

	today := day(2024, 5, 10) // far past the data, nothing is incomplete
	out := MonthlySpendingByCategory(rows, nil, 2, today)
	want := []float64{100, 150, 250}
	if len(out) != 3 {
		t.Fatalf("got %d rows, want 3", len(out))
	}
	for i, entry := range out {
		if !entry.Month.Equal(months[i]) {
			t.Fatalf("row %d month = %v, want %v", i, entry.Month, months[i])
		}
		if !approx(entry.Amount, want[i]) {
			t.Fatalf("row %d amount = %v, want %v", i, entry.Amount, want[i])
		}
	}
}

func TestMonthlyByCategoryDropsIncompleteCurrentMonth(t *testing.T) {
	months := []time.Time{day(2024, 1, 1), day(2024, 2, 1), day(2024, 3, 1)}
	rows := spendingFixture("Groceries", months, []float64{100, 200, 300})

	// Today is inside the latest data month: that month is dropped before
	// averaging, even on day 1.
	out := MonthlySpendingByCategory(rows, nil, 2, day(2024, 3, 1))
	if len(out) != 2 {
		t.Fatalf("got %d rows, want 2", len(out))
	}
	if !approx(out[0].Amount, 100) || !approx(out[1].Amount, 150) {
		t.Fatalf("amounts = %v, %v", out[0].Amount, out[1].Amount)
	}

	// Without an average the raw view keeps the current month.
	raw := MonthlySpendingByCategory(rows, nil, 0, day(2024, 3, 1))
	if len(raw) != 3 {
		t.Fatalf("raw view dropped a month: %d rows", len(raw))
	}
}

func TestMonthlyByCategoryOrderAndSkip(t *testing.T) {
	var txs []core.Transaction
	for _, m := range []time.Time{day(2024, 1, 1), day(2024, 2, 1)} {
		txs = append(txs,
			tx(m.AddDate(0, 0, 2), "Rent", -1000),
			tx(m.AddDate(0, 0, 3), "Groceries", -300),
			tx(m.AddDate(0, 0, 4), "Hobbies", -50),
		)
	}
	rows := Spending(Enrich(txs, core.CategoryLookup{}))

	out := MonthlySpendingByCategory(rows, []string{"Hobbies"}, 0, day(2024, 6, 1))
	if len(out) != 4 {
		t.Fatalf("got %d rows, want 4 (Hobbies skipped)", len(out))
	}
	// Categories ordered by total spending descending, months ascending within.
	wantCats := []string{"Rent", "Rent", "Groceries", "Groceries"}
	for i, entry := range out {
		if entry.Category != wantCats[i] {
			t.Fatalf("row %d category = %s, want %s", i, entry.Category, wantCats[i])
		}
	}
	if !out[0].Month.Before(out[1].Month) {
		t.Fatalf("months out of order: %v, %v", out[0].Month, out[1].Month)
	}
}

func TestMonthlyTotalsMultipleWindows(t *testing.T) {
	months := []time.Time{day(2024, 1, 1), day(2024, 2, 1), day(2024, 3, 1), day(2024, 4, 1)}
	rows := spendingFixture("Groceries", months, []float64{100, 200, 300, 400})

	out := MonthlySpendingTotals(rows, nil, []int{2, 3}, day(2024, 6, 1))
	if len(out) != 4 {
		t.Fatalf("got %d months, want 4", len(out))
	}
	// Full-window minimum: the first month has no 2-month value, the first
	// two have no 3-month value.
	if _, ok := out[0].MovingAvg[2]; ok {
		t.Fatal("month 1 should have no 2-month average")
	}
	if got := out[1].MovingAvg[2]; !approx(got, 150) {
		t.Fatalf("month 2 2-month avg = %v, want 150", got)
	}
	if got := out[3].MovingAvg[3]; !approx(got, 300) {
		t.Fatalf("month 4 3-month avg = %v, want 300", got)
	}
	if _, ok := out[1].MovingAvg[3]; ok {
		t.Fatal("month 2 should have no 3-month average")
	}
}

func TestMonthlyTotalsIncompleteMonthKeepsBarDropsAverage(t *testing.T) {
	months := []time.Time{day(2024, 1, 1), day(2024, 2, 1), day(2024, 3, 1)}
	rows := spendingFixture("Groceries", months, []float64{100, 200, 300})

	out := MonthlySpendingTotals(rows, nil, []int{2}, day(2024, 3, 20))
	if len(out) != 3 {
		t.Fatalf("raw bars lost a month: %d", len(out))
	}
	// The current month keeps its raw bar but gets no average row.
	last := out[2]
	if !approx(last.Amount, 300) {
		t.Fatalf("current month amount = %v", last.Amount)
	}
	if _, ok := last.MovingAvg[2]; ok {
		t.Fatal("incomplete current month should have no moving average")
	}
	if got := out[1].MovingAvg[2]; !approx(got, 150) {
		t.Fatalf("month 2 avg = %v, want 150", got)
	}
}

func TestMonthlyTotalsEmpty(t *testing.T) {
	if out := MonthlySpendingTotals(nil, nil, []int{3}, day(2024, 1, 1)); out != nil {
		t.Fatalf("want nil, got %+v", out)
	}
}
