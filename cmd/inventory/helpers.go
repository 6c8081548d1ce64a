package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/pkg/output"
)

func parseID(kind, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Validation("invalid %s id %q", kind, raw)
	}
	return id, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(output.Out, string(out))
	return err
}

func newTable(headers string) *tabwriter.Writer {
	w := tabwriter.NewWriter(output.Out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, headers)
	return w
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
