package core

import (
	"time"
)

// Account classes as they appear in the Balance History sheet.
const (
	ClassAsset     = "Asset"
	ClassLiability = "Liability"
)

type (
	// Transaction is one ledger row. Amount is signed: negative = outflow.
	// Group, Type and CategoryTotal are empty/zero until enrichment.
	Transaction struct {
		Date        time.Time
		Description string
		Category    string
		Amount      float64
		Group       string
		Type        string
		// CategoryTotal is the net amount of the whole category across the
		// transaction set. It classifies the category, not the row.
		CategoryTotal float64
	}

	// BalanceSnapshot is one raw row of the Balance History sheet. Snapshots
	// are sparse and irregular per account.
	BalanceSnapshot struct {
		AccountID string
		Account   string
		Class     string
		Date      time.Time
		Balance   float64
	}

	// CategoryInfo is the Group/Type pair a category maps to.
	CategoryInfo struct {
		Group string
		Type  string
	}

	// CategoryLookup maps category name to its group and type. Loaded once
	// per snapshot; categories absent from the sheet resolve to empty strings.
	CategoryLookup map[string]CategoryInfo
)

// Resolve returns the info for a category, or zero values when the category
// is unknown. Unknown categories must not block the dashboard.
func (l CategoryLookup) Resolve(category string) CategoryInfo {
	return l[category]
}

// Groups returns group name -> categories, preserving no particular order.
func (l CategoryLookup) Groups() map[string][]string {
	out := make(map[string][]string)
	for cat, info := range l {
		out[info.Group] = append(out[info.Group], cat)
	}
	return out
}

// MonthOf truncates a time to the first day of its month (UTC midnight).
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DayOf truncates a time to midnight UTC.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
