package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yourusername/clipgenius-go/internal/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded downloads",
	Long:  `List downloads recorded in the history database (enable recording with --history or history.enabled).`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status, _ := cmd.Flags().GetString("status")
		limit, _ := cmd.Flags().GetInt("limit")
		batchID, _ := cmd.Flags().GetString("batch")

		if status != "" && !domain.ValidateStatus(domain.DownloadStatus(status)) {
			return fmt.Errorf("invalid status %q (queued, processing, completed, failed)", status)
		}

		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.Close()

		var records []*domain.DownloadRecord
		if batchID != "" {
			records, err = rt.repo.FindByBatch(batchID)
		} else {
			records, err = rt.repo.FindAll(domain.DownloadStatus(status), limit)
		}
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}

		if len(records) == 0 {
			fmt.Println("No downloads recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPLATFORM\tSTATUS\tQUALITY\tCREATED")
		for _, r := range records {
			title := r.Title
			if title == "" {
				title = r.URL
			}
			quality := r.Quality
			if r.AudioOnly {
				quality = "audio"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				truncate(r.ID, 8),
				truncate(title, 40),
				r.Platform.DisplayName(),
				r.Status,
				quality,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
		w.Flush()

		for _, r := range records {
			if r.Status == domain.StatusFailed && r.ErrorMessage != "" {
				fmt.Printf("\n%s: %s", truncate(r.ID, 8), r.ErrorMessage)
			}
		}
		fmt.Println()
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show download statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(true)
		if err != nil {
			return err
		}
		defer rt.Close()

		stats, err := rt.repo.GetStats()
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}

		fmt.Println("Download Statistics:")
		fmt.Printf("  Total:      %s\n", domain.FormatCount(stats.Total))
		fmt.Printf("  Queued:     %s\n", domain.FormatCount(stats.Queued))
		fmt.Printf("  Processing: %s\n", domain.FormatCount(stats.Processing))
		fmt.Printf("  Completed:  %s\n", domain.FormatCount(stats.Completed))
		fmt.Printf("  Failed:     %s\n", domain.FormatCount(stats.Failed))
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("status", "s", "", "Filter by status")
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of downloads to show (0 for all)")
	historyCmd.Flags().String("batch", "", "Show the downloads of one batch")
}

// truncate shortens s to maxLen runes, ending with "..."
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
