package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is loaded once at process start and immutable thereafter. The
// spreadsheet identifiers and credentials live here, not in package globals.
type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend string

	// Google Sheets ledger source
	SpreadsheetID     string
	CredentialsJSON   string
	CredentialsFile   string
	TransactionsRange string
	CategoriesRange   string
	BalancesRange     string

	// Memory backend seed directory
	DataDir string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "memory"),

		SpreadsheetID:     getEnv("SPREADSHEET_ID", ""),
		CredentialsJSON:   getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", ""),
		CredentialsFile:   getEnv("SERVICE_ACCOUNT_FILE", ""),
		TransactionsRange: getEnv("TRANSACTIONS_RANGE", "Transactions"),
		CategoriesRange:   getEnv("CATEGORIES_RANGE", "Categories"),
		BalancesRange:     getEnv("BALANCES_RANGE", "Balance History"),

		DataDir: getEnv("DATA_DIR", "data"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory":
	case "sheets":
		if c.SpreadsheetID == "" {
			errors = append(errors, "SPREADSHEET_ID is required when using the sheets backend")
		}
		if c.CredentialsJSON == "" && c.CredentialsFile == "" {
			errors = append(errors, "service account credentials are required when using the sheets backend (set GOOGLE_SERVICE_ACCOUNT_JSON or SERVICE_ACCOUNT_FILE)")
		} else if c.CredentialsJSON == "" {
			if _, err := os.Stat(c.CredentialsFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("service account file does not exist: %s", c.CredentialsFile))
			}
		}
		if c.TransactionsRange == "" || c.CategoriesRange == "" || c.BalancesRange == "" {
			errors = append(errors, "range names cannot be empty")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [memory sheets]", c.DataBackend))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
