package formatter

import (
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/transfigurr/transfigurr/internal/data/sqlite"
)

func formatCSV(status *sqlite.Status) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)
	w.Write([]string{"table", "rows"})
	if status != nil {
		for _, t := range status.Tables {
			w.Write([]string{t.Name, strconv.FormatInt(t.Rows, 10)})
		}
	}
	w.Flush()
	return b.String(), w.Error()
}
