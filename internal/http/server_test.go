package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"tiller/internal/analysis"
	"tiller/internal/core"
	"tiller/internal/ledger"
	"tiller/internal/ledger/memory"
)

func testStore() *memory.Store {
	lookup := core.CategoryLookup{
		"Rent":      {Group: "Housing", Type: "Expense"},
		"Groceries": {Group: "Food", Type: "Expense"},
		"Paycheck":  {Group: "Income", Type: "Income"},
	}
	txs := []core.Transaction{
		memory.Tx("1/2/2024", "Rent", -1000, "January rent"),
		memory.Tx("1/5/2024", "Groceries", -200, "Market"),
		memory.Tx("2/2/2024", "Rent", -1000, "February rent"),
		memory.Tx("1/15/2024", "Paycheck", 3000, "Salary"),
	}
	snaps := []core.BalanceSnapshot{
		memory.Snap("a1", "Checking", core.ClassAsset, "1/1/2024", 5000),
	}
	return memory.New(txs, lookup, snaps)
}

func get(t *testing.T, path string, out any) int {
	t.Helper()
	srv := NewServer(":0", testStore())
	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if out != nil && rec.Code == 200 {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v\nbody: %s", path, err, rec.Body.String())
		}
	}
	return rec.Code
}

func TestHealthz(t *testing.T) {
	if code := get(t, "/healthz", nil); code != 200 {
		t.Fatalf("healthz = %d", code)
	}
}

func TestTransactionsHandler(t *testing.T) {
	var txs []core.Transaction
	if code := get(t, "/api/transactions", &txs); code != 200 {
		t.Fatalf("status = %d", code)
	}
	if len(txs) != 4 {
		t.Fatalf("got %d transactions, want 4", len(txs))
	}
	for _, tx := range txs {
		if tx.Category == "Rent" && tx.Group != "Housing" {
			t.Fatalf("rent not enriched: %+v", tx)
		}
	}
}

func TestSpendingHandler(t *testing.T) {
	var rows []analysis.SpendingRow
	if code := get(t, "/api/spending", &rows); code != 200 {
		t.Fatalf("status = %d", code)
	}
	// Paycheck excluded, three spending rows with positive amounts.
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	for _, row := range rows {
		if row.Amount <= 0 {
			t.Fatalf("spending amount not positive: %+v", row)
		}
	}
}

func TestSpendingByCategoryHandler(t *testing.T) {
	var out []analysis.MonthlyCategorySpend
	if code := get(t, "/api/spending/by-category?exclude=Groceries", &out); code != 200 {
		t.Fatalf("status = %d", code)
	}
	for _, entry := range out {
		if entry.Category == "Groceries" {
			t.Fatalf("excluded category present: %+v", entry)
		}
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2 Rent months", len(out))
	}
}

func TestSpendingTotalHandler(t *testing.T) {
	var out []analysis.MonthlyTotal
	if code := get(t, "/api/spending/total?ma=2", &out); code != 200 {
		t.Fatalf("status = %d", code)
	}
	if len(out) != 2 {
		t.Fatalf("got %d months, want 2", len(out))
	}
	if out[0].Amount != 1200 || out[1].Amount != 1000 {
		t.Fatalf("monthly totals = %v, %v", out[0].Amount, out[1].Amount)
	}
}

func TestComparativeHandler(t *testing.T) {
	var out []analysis.CumulativeDay
	if code := get(t, "/api/spending/comparative?months=2", &out); code != 200 {
		t.Fatalf("status = %d", code)
	}
	if len(out) == 0 {
		t.Fatal("no comparative points")
	}
}

func TestBalancesAndNetWorthHandlers(t *testing.T) {
	var daily []analysis.DailyBalance
	if code := get(t, "/api/balances/daily", &daily); code != 200 {
		t.Fatalf("status = %d", code)
	}
	if len(daily) == 0 {
		t.Fatal("no daily balances")
	}
	var nw []analysis.DatedAmount
	if code := get(t, "/api/networth", &nw); code != 200 {
		t.Fatalf("status = %d", code)
	}
	if len(nw) != len(daily) {
		t.Fatalf("net worth days = %d, want %d (single account)", len(nw), len(daily))
	}
}

func TestSingleCategoryHandler(t *testing.T) {
	var txs []core.Transaction
	if code := get(t, "/api/category?name=Rent", &txs); code != 200 {
		t.Fatalf("status = %d", code)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d rows, want 2", len(txs))
	}
	if code := get(t, "/api/category", nil); code != 400 {
		t.Fatalf("missing name = %d, want 400", code)
	}
}

type failingSource struct{}

func (failingSource) Transactions(context.Context) ([]core.Transaction, error) {
	return nil, errors.New("boom")
}
func (failingSource) Categories(context.Context) (core.CategoryLookup, error) {
	return core.CategoryLookup{}, nil
}
func (failingSource) BalanceHistory(context.Context) ([]core.BalanceSnapshot, error) {
	return nil, nil
}

var _ ledger.Source = failingSource{}

func TestFetchFailurePropagates(t *testing.T) {
	srv := NewServer(":0", failingSource{})
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/transactions", nil))
	if rec.Code != 502 {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestEmptyLedgerRendersEmptyArrays(t *testing.T) {
	srv := NewServer(":0", memory.New(nil, nil, nil))
	for _, path := range []string{"/api/transactions", "/api/spending", "/api/balances/daily", "/api/networth"} {
		rec := httptest.NewRecorder()
		srv.Handler.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		if rec.Code != 200 {
			t.Fatalf("%s status = %d", path, rec.Code)
		}
		var out []json.RawMessage
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s body not an array: %s", path, rec.Body.String())
		}
		if len(out) != 0 {
			t.Fatalf("%s = %s, want []", path, rec.Body.String())
		}
	}
}
