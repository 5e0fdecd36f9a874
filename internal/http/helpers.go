package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// writeJSON renders v, mapping nil tables to [] rather than null so the
// presentation layer can treat "no data" uniformly.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if rv := reflect.ValueOf(v); v == nil || (rv.Kind() == reflect.Slice && rv.IsNil()) {
		_, _ = w.Write([]byte("[]\n"))
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// queryInt returns an integer query parameter or the default.
func queryInt(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// queryIntList parses a comma-separated list of integers ("3,6,12").
func queryIntList(r *http.Request, key string) []int {
	var out []int
	for _, part := range queryList(r, key) {
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// queryList parses a comma-separated string parameter, dropping empties.
func queryList(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// queryMonthYear extracts optional month/year filters; zero means unset.
func queryMonthYear(r *http.Request) (time.Month, int) {
	month := time.Month(queryInt(r, "month", 0))
	if month < 0 || month > 12 {
		month = 0
	}
	return month, queryInt(r, "year", 0)
}
