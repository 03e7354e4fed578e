package formatter

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/transfigurr/transfigurr/internal/data/sqlite"
)

func formatTable(status *sqlite.Status) string {
	if status == nil {
		return "No database."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n\n", status.Path, humanize.Bytes(uint64(status.Size)))
	if len(status.Tables) == 0 {
		b.WriteString("No tables.")
		return b.String()
	}
	b.WriteString("TABLE                | ROWS\n")
	b.WriteString("---------------------+--------\n")
	for _, t := range status.Tables {
		fmt.Fprintf(&b, "%-20s | %s\n", truncate(t.Name, 20), humanize.Comma(t.Rows))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
