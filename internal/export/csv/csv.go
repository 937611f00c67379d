package csv

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"textstats/internal/domain"
)

// Header is the column set of the exported statistics table.
var Header = []string{"Dateiname", "Wörter gesamt", "Einzigartige Wörter", "Neue Wörter (kumulativ)"}

// Exporter writes the statistics table as comma separated UTF-8 text.
type Exporter struct {
	path string
}

func NewExporter(path string) *Exporter { return &Exporter{path: path} }

// Export replaces the file at the exporter's path.
func (e *Exporter) Export(ctx context.Context, stats []domain.DocumentStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(e.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(e.path)
	if err != nil {
		return err
	}
	if err := Write(f, stats); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Write encodes the header and one row per document in ordinal order.
func Write(w io.Writer, stats []domain.DocumentStats) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, s := range stats {
		row := []string{
			s.Name,
			strconv.Itoa(s.TotalWords),
			strconv.Itoa(s.UniqueWords),
			strconv.Itoa(s.NewWords),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
