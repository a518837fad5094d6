package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/tealeg/xlsx/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/provenance-cli/internal/analyzer"
	"github.com/sells-group/provenance-cli/internal/model"
	"github.com/sells-group/provenance-cli/internal/store"
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Score many packages concurrently",
	Long: `Analyze several OOXML packages and summarize the verdicts.
Analyses are independent and run concurrently up to --concurrency.

Examples:
  batch *.docx
  batch --format csv --output verdicts.csv inbox/*.docx
  batch --format xlsx --output verdicts.xlsx --save evidence/*.docx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.Int("concurrency", 0, "maximum concurrent analyses (default from config)")
	f.String("format", "table", "output format: table, csv, or xlsx")
	f.String("output", "", "output file path (default: stdout; required for xlsx)")
	f.Bool("save", false, "save each report to the history database")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	if concurrency <= 0 {
		concurrency = cfg.Batch.Concurrency
	}

	if format != "table" && format != "csv" && format != "xlsx" {
		return eris.Errorf("batch: --format must be table, csv, or xlsx (got %q)", format)
	}
	if format == "xlsx" && outputPath == "" {
		return eris.New("batch: --format xlsx requires --output")
	}

	log := zap.L().With(zap.String("command", "batch"))
	log.Info("starting batch analysis",
		zap.Int("files", len(args)),
		zap.Int("concurrency", concurrency),
	)

	// Results keep input order; each worker writes only its own slot.
	results := make([]*model.ProvenanceReport, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			r, err := analyzer.Analyze(path)
			if err != nil {
				log.Warn("analysis failed",
					zap.String("file", path),
					zap.Error(err),
				)
				return nil
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch: analyze")
	}

	var analyzed []*model.ProvenanceReport
	for _, r := range results {
		if r != nil {
			analyzed = append(analyzed, r)
		}
	}
	log.Info("batch analysis complete",
		zap.Int("analyzed", len(analyzed)),
		zap.Int("failed", len(args)-len(analyzed)),
	)

	if save && len(analyzed) > 0 {
		if err := saveBatch(ctx, analyzed); err != nil {
			return err
		}
		fmt.Printf("Saved %d reports to %s\n", len(analyzed), cfg.Store.Path)
	}

	return outputBatchResults(analyzed, format, outputPath)
}

func saveBatch(ctx context.Context, results []*model.ProvenanceReport) error {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}
	for _, r := range results {
		if _, err := st.SaveReport(ctx, r); err != nil {
			return eris.Wrapf(err, "batch: save %s", r.File)
		}
	}
	return nil
}

func outputBatchResults(results []*model.ProvenanceReport, format, outputPath string) error {
	if format == "xlsx" {
		return writeBatchXLSX(outputPath, results)
	}

	w := os.Stdout
	if outputPath != "" {
		var err error
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "batch: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	}

	switch format {
	case "csv":
		return writeBatchCSV(w, results)
	default:
		return writeBatchTable(w, results)
	}
}

func writeBatchCSV(w *os.File, results []*model.ProvenanceReport) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(batchHeader()); err != nil {
		return eris.Wrap(err, "batch: write CSV header")
	}
	for _, r := range results {
		if err := cw.Write(batchRow(r)); err != nil {
			return eris.Wrap(err, "batch: write CSV row")
		}
	}
	return nil
}

func writeBatchXLSX(path string, results []*model.ProvenanceReport) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("verdicts")
	if err != nil {
		return eris.Wrap(err, "batch: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range batchHeader() {
		header.AddCell().SetString(col)
	}
	for _, r := range results {
		row := sheet.AddRow()
		for _, col := range batchRow(r) {
			row.AddCell().SetString(col)
		}
	}

	return eris.Wrapf(f.Save(path), "batch: save xlsx %s", path)
}

func writeBatchTable(w *os.File, results []*model.ProvenanceReport) error {
	header := fmt.Sprintf("%-40s %-45s %6s %6s %-14s\n",
		"File", "Verdict", "Word", "Taint", "Top Competitor")
	if _, err := fmt.Fprint(w, header); err != nil {
		return eris.Wrap(err, "batch: write table header")
	}
	if _, err := fmt.Fprintln(w, strings.Repeat("-", 115)); err != nil {
		return eris.Wrap(err, "batch: write table separator")
	}

	for _, r := range results {
		file := r.File
		if len(file) > 40 {
			file = "..." + file[len(file)-37:]
		}
		top, _ := r.Scores.TopNonWord()
		line := fmt.Sprintf("%-40s %-45s %6.1f %6.1f %-14s\n",
			file, r.Verdict, r.Scores[model.OriginWord], r.Taint, top.Label())
		if _, err := fmt.Fprint(w, line); err != nil {
			return eris.Wrap(err, "batch: write table row")
		}
	}
	return nil
}

func batchHeader() []string {
	cols := []string{"file", "verdict", "taint"}
	for _, o := range model.Origins {
		cols = append(cols, string(o))
	}
	return cols
}

func batchRow(r *model.ProvenanceReport) []string {
	row := []string{r.File, r.Verdict, fmt.Sprintf("%.1f", r.Taint)}
	for _, o := range model.Origins {
		row = append(row, fmt.Sprintf("%.1f", r.Scores[o]))
	}
	return row
}
