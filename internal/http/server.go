// Package http is the thin presentation layer: a read-only JSON API over the
// analysis pipeline. Every request re-fetches a fresh ledger snapshot and
// re-derives its tables; there is no cross-request state.
package http

import (
	"net/http"

	"tiller/internal/ledger"
)

// NewServer wires the API routes over a ledger source.
func NewServer(addr string, src ledger.Source) *http.Server {
	h := &handler{src: src}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /api/transactions", h.transactions)
	mux.HandleFunc("GET /api/spending", h.spending)
	mux.HandleFunc("GET /api/spending/by-category", h.spendingByCategory)
	mux.HandleFunc("GET /api/spending/total", h.spendingTotal)
	mux.HandleFunc("GET /api/spending/comparative", h.spendingComparative)
	mux.HandleFunc("GET /api/balances/daily", h.dailyBalances)
	mux.HandleFunc("GET /api/balances/monthly", h.monthlyBalances)
	mux.HandleFunc("GET /api/networth", h.netWorth)
	mux.HandleFunc("GET /api/category", h.singleCategory)

	return &http.Server{Addr: addr, Handler: mux}
}
