package google

import (
	"fmt"
	"strings"

	"tiller/internal/core"
)

// parseTransactions converts a values matrix (as returned by the Sheets API)
// into transactions. Row 0 is the header; columns are located by name so the
// sheet layout can change without breaking the parse.
func parseTransactions(values [][]interface{}) ([]core.Transaction, error) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := toStrings(values[0])
	colDate := indexOf(headers, "Date")
	colCategory := indexOf(headers, "Category")
	colAmount := indexOf(headers, "Amount")
	colDescription := indexOf(headers, "Description")
	if colDate == -1 || colCategory == -1 || colAmount == -1 {
		return nil, fmt.Errorf("unexpected transactions header: got %v", headers)
	}
	var out []core.Transaction
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if blank(row) {
			continue
		}
		date, err := core.ParseDate(safeGet(row, colDate))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		amount, err := core.ParseAmount(safeGet(row, colAmount))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, core.Transaction{
			Date:        date,
			Description: safeGet(row, colDescription),
			Category:    safeGet(row, colCategory),
			Amount:      amount,
		})
	}
	return out, nil
}

// parseCategories builds the category -> (group, type) lookup.
func parseCategories(values [][]interface{}) (core.CategoryLookup, error) {
	if len(values) == 0 {
		return core.CategoryLookup{}, nil
	}
	headers := toStrings(values[0])
	colCategory := indexOf(headers, "Category")
	colGroup := indexOf(headers, "Group")
	colType := indexOf(headers, "Type")
	if colCategory == -1 {
		return nil, fmt.Errorf("unexpected categories header: got %v", headers)
	}
	lookup := core.CategoryLookup{}
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		category := safeGet(row, colCategory)
		if category == "" {
			continue
		}
		lookup[category] = core.CategoryInfo{
			Group: safeGet(row, colGroup),
			Type:  safeGet(row, colType),
		}
	}
	return lookup, nil
}

// parseBalances converts the Balance History matrix into raw snapshots.
func parseBalances(values [][]interface{}) ([]core.BalanceSnapshot, error) {
	if len(values) == 0 {
		return nil, nil
	}
	headers := toStrings(values[0])
	colAccountID := indexOf(headers, "Account ID")
	colAccount := indexOf(headers, "Account")
	colClass := indexOf(headers, "Class")
	colDate := indexOf(headers, "Date")
	colBalance := indexOf(headers, "Balance")
	if colAccountID == -1 || colDate == -1 || colBalance == -1 {
		return nil, fmt.Errorf("unexpected balance history header: got %v", headers)
	}
	var out []core.BalanceSnapshot
	for i := 1; i < len(values); i++ {
		row := toStrings(values[i])
		if blank(row) {
			continue
		}
		date, err := core.ParseDate(safeGet(row, colDate))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		balance, err := core.ParseAmount(safeGet(row, colBalance))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, core.BalanceSnapshot{
			AccountID: safeGet(row, colAccountID),
			Account:   safeGet(row, colAccount),
			Class:     safeGet(row, colClass),
			Date:      date,
			Balance:   balance,
		})
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func indexOf(arr []string, target string) int {
	for i, v := range arr {
		if strings.EqualFold(v, target) {
			return i
		}
	}
	return -1
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

func blank(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
