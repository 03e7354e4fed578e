package formatter

import (
	"fmt"
	"strings"

	"github.com/transfigurr/transfigurr/internal/data/sqlite"
)

// OutputFormat selects output style.
type OutputFormat int

const (
	FormatTable OutputFormat = iota
	FormatJSON
	FormatCSV
)

// Formatter renders a database Status as a string.
type Formatter interface {
	Format(status *sqlite.Status, format OutputFormat) (string, error)
}

type formatter struct{}

// New returns a Formatter.
func New() Formatter {
	return &formatter{}
}

// Format dispatches to the appropriate formatter by format.
func (f *formatter) Format(status *sqlite.Status, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(status)
	case FormatCSV:
		return formatCSV(status)
	default:
		return formatTable(status), nil
	}
}

// ParseFormat converts a flag value (table, json, csv) to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	}
	return FormatTable, fmt.Errorf("unknown format %q (want table, json or csv)", s)
}
