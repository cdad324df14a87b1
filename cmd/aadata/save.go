package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	datahandler "github.com/stabilefrisur/aa-data-handler"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

var (
	saveInput       string
	saveName        string
	saveFormat      string
	saveDir         string
	saveNoTimestamp bool
	saveSeries      string
)

// saveCmd represents the save command
var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a table read from a file",
	Long: `Read a table from a csv, xlsx or pickle file and save it under a new name and format.
The save is recorded in the file log.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := datahandler.ParseFormat(saveFormat)
		if err != nil {
			return err
		}

		h, err := newHandler()
		if err != nil {
			return fmt.Errorf("failed to initialize handler: %w", err)
		}

		ctx := context.Background()
		payload, err := h.LoadOne(ctx, datahandler.Query{Path: saveInput})
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		if saveSeries != "" {
			t, ok := payload.(core.Table)
			if !ok {
				return fmt.Errorf("--series needs a table input, got %s", payload.Kind())
			}
			values, ok := t.Column(saveSeries)
			if !ok {
				return fmt.Errorf("input has no column %q", saveSeries)
			}
			payload = core.Series{Name: saveSeries, Values: values}
		}

		dir := saveDir
		if dir == "" {
			dir = cfg.DataDir
		}

		entry, err := h.Save(ctx, payload, saveName, format, dir, datahandler.WithTimestamp(!saveNoTimestamp))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Saved %s as %s (id %s)\n", payload.Kind(), entry.Path, entry.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saveCmd)
	saveCmd.Flags().StringVarP(&saveInput, "in", "i", "", "Input file (csv, xlsx or p)")
	saveCmd.Flags().StringVarP(&saveName, "name", "n", "", "File name without extension")
	saveCmd.Flags().StringVarP(&saveFormat, "format", "f", "csv", "Output format (csv, xlsx, pickle)")
	saveCmd.Flags().StringVarP(&saveDir, "dir", "d", "", "Output directory (defaults to data_dir)")
	saveCmd.Flags().BoolVar(&saveNoTimestamp, "no-timestamp", false, "Do not prefix the file name with a timestamp")
	saveCmd.Flags().StringVar(&saveSeries, "series", "", "Save only this column, as a named series")
	saveCmd.MarkFlagRequired("in")
	saveCmd.MarkFlagRequired("name")
}
