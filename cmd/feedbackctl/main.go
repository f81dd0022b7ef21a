// feedbackctl is the terminal client for the BetterFeedback API: one-shot
// analysis of a feedback file, history listing, and the interactive
// dashboard.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"betterfeedback/internal/client"
	"betterfeedback/internal/tui"
)

var apiURL string

func main() {
	root := &cobra.Command{
		Use:           "feedbackctl",
		Short:         "Analyze customer feedback and browse past runs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (defaults to FEEDBACK_API_URL or http://localhost:8080)")

	root.AddCommand(newAnalyzeCmd(), newHistoryCmd(), newTUICmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func api() *client.API {
	base := apiURL
	if base == "" {
		base = os.Getenv("FEEDBACK_API_URL")
	}
	return client.NewAPI(base)
}

// loadFile runs the upload collaborator: .txt passthrough, .json re-indent.
func loadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return client.ReadUpload(path, data)
}

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a .txt or .json feedback file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := loadFile(args[0])
			if err != nil {
				return err
			}
			resp, err := api().Analyze(context.Background(), text)
			if err != nil {
				return err
			}
			if resp.Error != nil {
				return fmt.Errorf("analysis failed: %s", *resp.Error)
			}
			fmt.Printf("%d item(s)", resp.Count)
			if resp.SkippedCount > 0 {
				fmt.Printf(", %d skipped", resp.SkippedCount)
			}
			fmt.Println()
			for _, item := range resp.Items {
				fmt.Printf("  [%s] %s (sentiment %.2f)\n", item.Category, item.Summary, item.SentimentScore)
			}
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past analysis runs, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := api().History(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Println("No past analysis runs.")
				return nil
			}
			for _, run := range runs {
				fmt.Printf("%s  %2d item(s)  %s\n",
					run.CreatedAt.Local().Format("2006-01-02 15:04"),
					run.ItemCount,
					run.InputPreview,
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	return cmd
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui [file]",
		Short: "Open the interactive dashboard, optionally preloading a feedback file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				var err error
				text, err = loadFile(args[0])
				if err != nil {
					return err
				}
			}
			return tui.Run(api(), text)
		},
	}
}
