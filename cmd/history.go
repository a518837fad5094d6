package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sells-group/provenance-cli/internal/report"
	"github.com/sells-group/provenance-cli/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved analysis runs",
	RunE:  runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Render a saved report",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	f := historyShowCmd.Flags()
	f.String("format", "", "output format: text, json, or yaml (default from config)")
	f.Bool("concise", false, "reduce output to the verdict")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limit, _ := cmd.Flags().GetInt("limit")

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	runs, err := st.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs. Use 'analyze --save' or 'batch --save' first.")
		return nil
	}

	fmt.Printf("%-36s %-19s %-45s %6s  %s\n", "Run ID", "Analyzed At", "Verdict", "Taint", "File")
	for _, r := range runs {
		fmt.Printf("%-36s %-19s %-45s %6.1f  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Verdict, r.Taint, r.File)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts, err := renderOptions(cmd)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	run, err := st.GetRun(ctx, args[0])
	if err != nil {
		return err
	}
	return report.Render(os.Stdout, run.Report, opts)
}
