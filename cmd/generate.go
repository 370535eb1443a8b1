package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WatsonMLDev/codele-backend/internal/api"
	"github.com/WatsonMLDev/codele-backend/internal/contentgen"
	"github.com/WatsonMLDev/codele-backend/internal/llm"
	"github.com/WatsonMLDev/codele-backend/internal/timeline"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and schedule a batch of daily problems",
	Long: `Generate problems with the configured LLM provider and schedule them
on consecutive dates. With no --start the batch lands on the day after
the latest scheduled problem. With no --theme the model picks a fresh
one, avoiding recently used themes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetString("start")
		count, _ := cmd.Flags().GetInt("count")
		theme, _ := cmd.Flags().GetString("theme")
		batches, _ := cmd.Flags().GetInt("batches")

		if count < 1 || count > api.MaxBatchDays {
			return fmt.Errorf("--count must be between 1 and %d", api.MaxBatchDays)
		}
		if batches < 1 {
			return fmt.Errorf("--batches must be at least 1")
		}
		if start != "" {
			if _, err := timeline.ParseDate(start); err != nil {
				return err
			}
		}
		if batches > 1 && theme != "" {
			return fmt.Errorf("--theme only applies to a single batch; drop it to let the model vary themes")
		}
		if batches > 1 && start != "" {
			return fmt.Errorf("--start only applies to a single batch; later batches append automatically")
		}

		s, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()

		provider, err := llm.NewProviderFromEnv(ctx, s.EventRepo())
		if err != nil {
			return fmt.Errorf("configure LLM provider: %w", err)
		}
		engine := contentgen.New(provider, s.TimelineRepo(), s.ThemeRepo(), contentgen.DefaultConfig())

		var results []contentgen.BatchResult
		if batches == 1 {
			results = []contentgen.BatchResult{
				engine.Run(ctx, contentgen.BatchRequest{StartDate: start, Count: count, Theme: theme}),
			}
		} else {
			reqs := make([]contentgen.BatchRequest, batches)
			for i := range reqs {
				reqs[i] = contentgen.BatchRequest{Count: count}
			}
			results = engine.PlanAndRun(ctx, reqs)
		}

		failed := 0
		total := 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				fmt.Printf("Batch %d: FAILED: %v\n", res.Batch, res.Err)
				continue
			}
			total += res.ProblemsCreated
			fmt.Printf("Batch %d: %d problems, theme %q, %s\n",
				res.Batch, res.ProblemsCreated, res.Theme, res.DateRange())
		}
		fmt.Printf("Created %d problems total.\n", total)

		if failed > 0 {
			return fmt.Errorf("%d of %d batches failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().String("start", "", "First date to schedule (YYYY-MM-DD, default: next open slot)")
	generateCmd.Flags().Int("count", api.MaxBatchDays, "Problems per batch (1-7)")
	generateCmd.Flags().String("theme", "", "Force a theme (default: model picks one)")
	generateCmd.Flags().Int("batches", 1, "Number of sequential batches to run")
}
