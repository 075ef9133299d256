package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"

	"github.com/jakopako/clickr/internal/types"
	"github.com/olekukonko/tablewriter"
)

// StdoutWriter represents a writer that prints a summary table to stdout
type StdoutWriter struct {
	logger *slog.Logger
	out    io.Writer
}

// NewStdoutWriter returns a new StdoutWriter
func NewStdoutWriter(wc *WriterConfig) *StdoutWriter {
	return &StdoutWriter{
		logger: slog.With(slog.String("writer", string(STDOUT_WRITER_TYPE))),
		out:    os.Stdout,
	}
}

func (w *StdoutWriter) WriteStatus(status *types.RunStatus) error {
	w.logger.Info(fmt.Sprintf("printing run status for '%s'", status.Name),
		slog.Int("clicks", status.NrClicks),
		slog.Int("errors", status.NrErrors),
		slog.Int64("cookies", status.FinalCount),
		slog.Duration("duration", status.End.Sub(status.Start)))

	table := tablewriter.NewWriter(w.out)
	table.Header([]string{"Item", "Purchases"})
	for _, row := range purchaseRows(status.PurchasedItems) {
		if err := table.Append([]string{row[0], row[1]}); err != nil {
			return err
		}
	}
	table.Footer("total", strconv.Itoa(status.NrPurchases))
	return table.Render()
}

// purchaseRows counts the purchases per item, sorted by item name.
func purchaseRows(items []string) [][2]string {
	counts := map[string]int{}
	for _, name := range items {
		counts[name]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	slices.Sort(names)

	rows := make([][2]string, 0, len(names))
	for _, name := range names {
		rows = append(rows, [2]string{name, strconv.Itoa(counts[name])})
	}
	return rows
}
