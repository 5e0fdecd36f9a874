// Package memory is an in-process ledger source for development and tests.
// It can be seeded directly or from CSV files laid out like the sheet ranges.
package memory

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"tiller/internal/core"
	ports "tiller/internal/ledger"
)

type Store struct {
	mu     sync.Mutex
	txs    []core.Transaction
	lookup core.CategoryLookup
	snaps  []core.BalanceSnapshot
}

var _ ports.Source = (*Store)(nil)

func New(txs []core.Transaction, lookup core.CategoryLookup, snaps []core.BalanceSnapshot) *Store {
	if lookup == nil {
		lookup = core.CategoryLookup{}
	}
	return &Store{txs: txs, lookup: lookup, snaps: snaps}
}

// NewFromFiles seeds a store from base/transactions.csv, base/categories.csv
// and base/balances.csv. Missing or unreadable files seed empty; the files use
// the same headers as the sheet ranges.
func NewFromFiles(base string) (*Store, error) {
	txRows, err := readCSV(filepath.Join(base, "transactions.csv"))
	if err != nil {
		return nil, err
	}
	catRows, err := readCSV(filepath.Join(base, "categories.csv"))
	if err != nil {
		return nil, err
	}
	balRows, err := readCSV(filepath.Join(base, "balances.csv"))
	if err != nil {
		return nil, err
	}
	txs, err := transactionsFromRows(txRows)
	if err != nil {
		return nil, fmt.Errorf("transactions.csv: %w", err)
	}
	lookup := categoriesFromRows(catRows)
	snaps, err := balancesFromRows(balRows)
	if err != nil {
		return nil, fmt.Errorf("balances.csv: %w", err)
	}
	return New(txs, lookup, snaps), nil
}

func (s *Store) Transactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.txs...), nil
}

func (s *Store) Categories(_ context.Context) (core.CategoryLookup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(core.CategoryLookup, len(s.lookup))
	for k, v := range s.lookup {
		out[k] = v
	}
	return out, nil
}

func (s *Store) BalanceHistory(_ context.Context) ([]core.BalanceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.BalanceSnapshot(nil), s.snaps...), nil
}

// AddTransaction appends a row; test helper for scenarios built up piecewise.
func (s *Store) AddTransaction(tx core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = append(s.txs, tx)
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func transactionsFromRows(rows [][]string) ([]core.Transaction, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := headerIndex(rows[0])
	var out []core.Transaction
	for i, row := range rows[1:] {
		date, err := core.ParseDate(field(row, cols, "Date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		amount, err := core.ParseAmount(field(row, cols, "Amount"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, core.Transaction{
			Date:        date,
			Description: field(row, cols, "Description"),
			Category:    field(row, cols, "Category"),
			Amount:      amount,
		})
	}
	return out, nil
}

func categoriesFromRows(rows [][]string) core.CategoryLookup {
	lookup := core.CategoryLookup{}
	if len(rows) == 0 {
		return lookup
	}
	cols := headerIndex(rows[0])
	for _, row := range rows[1:] {
		category := field(row, cols, "Category")
		if category == "" {
			continue
		}
		lookup[category] = core.CategoryInfo{
			Group: field(row, cols, "Group"),
			Type:  field(row, cols, "Type"),
		}
	}
	return lookup
}

func balancesFromRows(rows [][]string) ([]core.BalanceSnapshot, error) {
	if len(rows) == 0 {
		return nil, nil
	}
	cols := headerIndex(rows[0])
	var out []core.BalanceSnapshot
	for i, row := range rows[1:] {
		date, err := core.ParseDate(field(row, cols, "Date"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		balance, err := core.ParseAmount(field(row, cols, "Balance"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, core.BalanceSnapshot{
			AccountID: field(row, cols, "Account ID"),
			Account:   field(row, cols, "Account"),
			Class:     field(row, cols, "Class"),
			Date:      date,
			Balance:   balance,
		})
	}
	return out, nil
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}
	return cols
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Tx is a shorthand constructor used by seeds and tests.
func Tx(date string, category string, amount float64, description string) core.Transaction {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{Date: d, Category: category, Amount: amount, Description: description}
}

// Snap is a shorthand snapshot constructor used by seeds and tests.
func Snap(accountID, account, class, date string, balance float64) core.BalanceSnapshot {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.BalanceSnapshot{AccountID: accountID, Account: account, Class: class, Date: d, Balance: balance}
}
