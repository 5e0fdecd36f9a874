// Package ledger defines the ports for the spreadsheet-backed ledger source.
package ledger

import (
	"context"

	"golang.org/x/sync/errgroup"

	"tiller/internal/core"
)

// Ports for inbound ledger data. Adapters: google (Sheets API), memory.
type (
	TransactionReader interface {
		// Transactions returns all ledger rows, amounts normalized and dates
		// parsed. An empty or missing range yields an empty slice, not an
		// error; malformed rows fail fast.
		Transactions(ctx context.Context) ([]core.Transaction, error)
	}

	CategoryReader interface {
		// Categories returns the category -> (group, type) lookup.
		Categories(ctx context.Context) (core.CategoryLookup, error)
	}

	BalanceReader interface {
		// BalanceHistory returns the raw, possibly duplicated and irregular
		// balance snapshots.
		BalanceHistory(ctx context.Context) ([]core.BalanceSnapshot, error)
	}

	// Source is a full ledger backend.
	Source interface {
		TransactionReader
		CategoryReader
		BalanceReader
	}
)

// Snapshot is one consistent read of the whole ledger. Each pipeline run
// derives everything from a fresh Snapshot; nothing is cached across runs.
type Snapshot struct {
	Transactions []core.Transaction
	Lookup       core.CategoryLookup
	Balances     []core.BalanceSnapshot
}

// Load fetches the three ranges of a snapshot concurrently. Any fetch error
// cancels the others and propagates unrecovered; there is no retry.
func Load(ctx context.Context, src Source) (Snapshot, error) {
	var snap Snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap.Transactions, err = src.Transactions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Lookup, err = src.Categories(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		snap.Balances, err = src.BalanceHistory(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
