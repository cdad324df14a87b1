package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/filelog"
	lifecycleadapter "github.com/stabilefrisur/aa-data-handler/pkg/adapters/lifecycle"
)

var (
	logJSON bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Inspect the file log",
}

var logListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every recorded save",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHandler()
		if err != nil {
			return fmt.Errorf("failed to initialize handler: %w", err)
		}

		entries, err := h.Entries(context.Background())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if logJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(entries)
		}
		for _, e := range entries {
			fmt.Fprintf(out, "%s  %s  %s\n", e.ID, e.Timestamp, e.Path)
		}
		return nil
	},
}

var logWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print saves as they are recorded, until interrupted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHandler()
		if err != nil {
			return fmt.Errorf("failed to initialize handler: %w", err)
		}
		log, ok := h.FileLog().(*filelog.Log)
		if !ok {
			return fmt.Errorf("file log does not support watching")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		src := lifecycleadapter.NewSource(log)
		if err := src.Start(ctx); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s (Ctrl+C to stop)\n", log.Path())
		for ev := range src.Events() {
			fmt.Fprintln(out, ev.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logCmd)
	logCmd.AddCommand(logListCmd, logWatchCmd)
	logListCmd.Flags().BoolVar(&logJSON, "json", false, "Output in JSON format")
}
