package formatter

import (
	"encoding/json"

	"github.com/dustin/go-humanize"
	"github.com/transfigurr/transfigurr/internal/data/sqlite"
)

func formatJSON(status *sqlite.Status) (string, error) {
	out := map[string]interface{}{}
	if status != nil {
		tables := status.Tables
		if tables == nil {
			tables = []sqlite.TableStatus{}
		}
		out["path"] = status.Path
		out["size"] = status.Size
		out["size_human"] = humanize.Bytes(uint64(status.Size))
		out["tables"] = tables
	}
	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
