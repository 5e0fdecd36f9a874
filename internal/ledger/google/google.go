package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"tiller/internal/core"
	ports "tiller/internal/ledger"
)

// Config carries everything the client needs at construction. It is built
// once at process start and never mutated; no credential globals.
type Config struct {
	SpreadsheetID string
	// Service account credentials: inline JSON wins over the file path.
	CredentialsJSON string
	CredentialsFile string
	// Named ranges; zero values use the Tiller sheet names.
	TransactionsRange string
	CategoriesRange   string
	BalancesRange     string
}

const (
	defaultTransactionsRange = "Transactions"
	defaultCategoriesRange   = "Categories"
	defaultBalancesRange     = "Balance History"
)

type Client struct {
	svc               *gsheet.Service
	spreadsheetID     string
	transactionsRange string
	categoriesRange   string
	balancesRange     string
}

// Ensure interface conformance
var _ ports.Source = (*Client)(nil)

// New creates a read-only Sheets client from an explicit Config.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet ID")
	}
	svc, err := newSheetsService(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	c := &Client{
		svc:               svc,
		spreadsheetID:     cfg.SpreadsheetID,
		transactionsRange: cfg.TransactionsRange,
		categoriesRange:   cfg.CategoriesRange,
		balancesRange:     cfg.BalancesRange,
	}
	if c.transactionsRange == "" {
		c.transactionsRange = defaultTransactionsRange
	}
	if c.categoriesRange == "" {
		c.categoriesRange = defaultCategoriesRange
	}
	if c.balancesRange == "" {
		c.balancesRange = defaultBalancesRange
	}
	return c, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from the Config, read-only scope.
func newSheetsService(ctx context.Context, cfg Config) (*gsheet.Service, error) {
	var credentialsJSON []byte
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		credentialsJSON = []byte(cfg.CredentialsJSON)
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		b, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials")
	}

	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsReadonlyScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// readRange fetches a named range as a values matrix. A range with no values
// is an empty result, not an error, so the caller can render a no-data state.
func (c *Client) readRange(ctx context.Context, rng string) ([][]interface{}, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// Transactions reads and parses the transactions range.
func (c *Client) Transactions(ctx context.Context) ([]core.Transaction, error) {
	values, err := c.readRange(ctx, c.transactionsRange)
	if err != nil {
		return nil, err
	}
	txs, err := parseTransactions(values)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.transactionsRange, err)
	}
	return txs, nil
}

// Categories reads and parses the category lookup range.
func (c *Client) Categories(ctx context.Context) (core.CategoryLookup, error) {
	values, err := c.readRange(ctx, c.categoriesRange)
	if err != nil {
		return nil, err
	}
	lookup, err := parseCategories(values)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.categoriesRange, err)
	}
	return lookup, nil
}

// BalanceHistory reads and parses the balance snapshot range.
func (c *Client) BalanceHistory(ctx context.Context) ([]core.BalanceSnapshot, error) {
	values, err := c.readRange(ctx, c.balancesRange)
	if err != nil {
		return nil, err
	}
	snaps, err := parseBalances(values)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", c.balancesRange, err)
	}
	return snaps, nil
}
