package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/clipgenius-go/pkg/logger"
)

var logsCmd = &cobra.Command{
	Use:       "logs <download|batch|error>",
	Short:     "View category logs",
	Long:      `Show the yt-dlp output, batch events or application errors written to logging.logs_dir.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(logger.CategoryDownload), string(logger.CategoryBatch), string(logger.CategoryError)},
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := logger.ParseCategory(args[0])
		if err != nil {
			return err
		}

		limit, _ := cmd.Flags().GetInt("limit")
		query, _ := cmd.Flags().GetString("search")
		dateStr, _ := cmd.Flags().GetString("date")
		follow, _ := cmd.Flags().GetBool("follow")
		jsonOutput, _ := cmd.Flags().GetBool("json")

		date := time.Now()
		if dateStr != "" {
			date, err = time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid date format, use YYYY-MM-DD")
			}
		}

		rt, err := newRuntime(false)
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.config.Logging.LogsDir == "" {
			return fmt.Errorf("category logs are disabled, set logging.logs_dir in the config file")
		}
		reader := logger.NewLogReader(rt.config.Logging.LogsDir)

		var entries []logger.LogEntry
		if query != "" {
			entries, err = reader.SearchLogs(category, date, query, limit)
		} else {
			entries, err = reader.ReadLogs(category, date, limit)
		}
		if err != nil {
			return fmt.Errorf("failed to read logs: %w", err)
		}

		for _, entry := range entries {
			printEntry(entry, jsonOutput)
		}

		if !follow {
			if len(entries) == 0 {
				fmt.Fprintf(os.Stderr, "No %s log entries for %s\n", category, date.Format("2006-01-02"))
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		stream := make(chan logger.LogEntry, 100)
		errCh := make(chan error, 1)
		go func() {
			errCh <- reader.Follow(ctx, category, stream)
		}()

		for {
			select {
			case entry := <-stream:
				printEntry(entry, jsonOutput)
			case err := <-errCh:
				return err
			}
		}
	},
}

func init() {
	logsCmd.Flags().IntP("limit", "n", 100, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringP("search", "s", "", "Only show entries containing this text")
	logsCmd.Flags().StringP("date", "d", "", "Log date (YYYY-MM-DD, default today)")
	logsCmd.Flags().BoolP("follow", "f", false, "Keep printing new entries")
	logsCmd.Flags().BoolP("json", "j", false, "Output in JSON format")
}

func printEntry(entry logger.LogEntry, asJSON bool) {
	if asJSON {
		data, _ := json.Marshal(entry)
		fmt.Println(string(data))
		return
	}

	// raw yt-dlp lines have no timestamp
	if entry.Timestamp == "" {
		fmt.Println(entry.Message)
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", entry.Timestamp, strings.ToUpper(entry.Level), entry.Message)

	keys := make([]string, 0, len(entry.Fields))
	for k := range entry.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Fields[k])
	}
	fmt.Println(b.String())
}
