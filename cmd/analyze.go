package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/provenance-cli/internal/analyzer"
	"github.com/sells-group/provenance-cli/internal/report"
	"github.com/sells-group/provenance-cli/internal/store"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.docx>",
	Short: "Score the provenance of a single package",
	Long: `Analyze one OOXML package and report per-origin confidence scores,
the attribution verdict, the taint metric, and the matched evidence.

Examples:
  # Human-readable report
  analyze contract.docx

  # Machine-readable report
  analyze contract.docx --format json

  # One-line verdict
  analyze contract.docx --concise

  # Keep the result in the local history database
  analyze contract.docx --save`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.String("format", "", "output format: text, json, or yaml (default from config)")
	f.Bool("concise", false, "reduce output to the verdict")
	f.String("output", "", "output file path (default: stdout)")
	f.Bool("save", false, "save the report to the history database")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := renderOptions(cmd)
	if err != nil {
		return err
	}
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	result, err := analyzer.Analyze(args[0])
	if err != nil {
		return err
	}

	if save {
		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}
		run, err := st.SaveReport(ctx, result)
		if err != nil {
			return err
		}
		zap.L().Info("analysis saved",
			zap.String("run_id", run.ID),
			zap.String("file", run.File),
		)
	}

	w := os.Stdout
	if outputPath != "" {
		w, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrapf(err, "analyze: create output file %s", outputPath)
		}
		defer w.Close() //nolint:errcheck
	}

	return report.Render(w, result, opts)
}

// renderOptions resolves format and concise flags against config defaults.
func renderOptions(cmd *cobra.Command) (report.Options, error) {
	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = cfg.Report.Format
	}
	if !report.ValidFormat(format) {
		return report.Options{}, eris.Errorf("unsupported format %q (want text, json, or yaml)", format)
	}

	concise := cfg.Report.Concise
	if cmd.Flags().Changed("concise") {
		concise, _ = cmd.Flags().GetBool("concise")
	}

	return report.Options{Format: format, Concise: concise}, nil
}
