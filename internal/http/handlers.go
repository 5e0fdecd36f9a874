package http

import (
	"log/slog"
	"net/http"
	"time"

	"tiller/internal/analysis"
	"tiller/internal/core"
	"tiller/internal/ledger"
)

type handler struct {
	src ledger.Source
}

// enriched loads a fresh snapshot and enriches its transactions. Fetch
// failures surface as 502 here; callers just bail on ok == false.
func (h *handler) enriched(w http.ResponseWriter, r *http.Request) (ledger.Snapshot, []core.Transaction, bool) {
	snap, err := ledger.Load(r.Context(), h.src)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger fetch failed", "path", r.URL.Path, "error", err)
		http.Error(w, "ledger fetch failed", http.StatusBadGateway)
		return ledger.Snapshot{}, nil, false
	}
	return snap, analysis.Enrich(snap.Transactions, snap.Lookup), true
}

func (h *handler) transactions(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.enriched(w, r)
	if !ok {
		return
	}
	writeJSON(w, txs)
}

func (h *handler) spending(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.enriched(w, r)
	if !ok {
		return
	}
	rows := analysis.Spending(txs)
	month, year := queryMonthYear(r)
	if month != 0 || year != 0 {
		rows = analysis.SpendingBreakdown(rows, month, year)
	}
	writeJSON(w, rows)
}

func (h *handler) spendingByCategory(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.enriched(w, r)
	if !ok {
		return
	}
	window := queryInt(r, "ma", 0)
	out := analysis.MonthlySpendingByCategory(analysis.Spending(txs), queryList(r, "exclude"), window, time.Now())
	writeJSON(w, out)
}

func (h *handler) spendingTotal(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.enriched(w, r)
	if !ok {
		return
	}
	windows := queryIntList(r, "ma")
	if len(windows) == 0 {
		windows = []int{3}
	}
	out := analysis.MonthlySpendingTotals(analysis.Spending(txs), queryList(r, "exclude"), windows, time.Now())
	writeJSON(w, out)
}

func (h *handler) spendingComparative(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.enriched(w, r)
	if !ok {
		return
	}
	months := queryInt(r, "months", 3)
	writeJSON(w, analysis.ComparativeCumulative(txs, months))
}

func (h *handler) dailyBalances(w http.ResponseWriter, r *http.Request) {
	snap, _, ok := h.enriched(w, r)
	if !ok {
		return
	}
	writeJSON(w, analysis.ResampleBalances(snap.Balances, time.Now()))
}

func (h *handler) monthlyBalances(w http.ResponseWriter, r *http.Request) {
	snap, _, ok := h.enriched(w, r)
	if !ok {
		return
	}
	daily := analysis.ResampleBalances(snap.Balances, time.Now())
	writeJSON(w, analysis.MonthlyAccountBalances(daily, queryList(r, "exclude")))
}

func (h *handler) netWorth(w http.ResponseWriter, r *http.Request) {
	snap, _, ok := h.enriched(w, r)
	if !ok {
		return
	}
	daily := analysis.ResampleBalances(snap.Balances, time.Now())
	writeJSON(w, analysis.NetWorth(daily))
}

func (h *handler) singleCategory(w http.ResponseWriter, r *http.Request) {
	_, txs, ok := h.enriched(w, r)
	if !ok {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		http.Error(w, "missing name parameter", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("view") == "monthly" {
		writeJSON(w, analysis.MonthlyCategoryTotals(txs, name))
		return
	}
	writeJSON(w, analysis.SingleCategory(txs, name))
}
