package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	datahandler "github.com/stabilefrisur/aa-data-handler"
	"github.com/stabilefrisur/aa-data-handler/pkg/adapters/fs"
	"github.com/stabilefrisur/aa-data-handler/pkg/core"
)

var (
	loadPath   string
	loadName   string
	loadFormat string
	loadDir    string
	loadID     string
	loadJSON   bool
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load saved files and print them",
	Long: `Load by full path, by name and format (optionally in a directory, '*' wildcards allowed),
or by file log identifier. Tables are printed as csv by default, or as JSON with --json.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHandler()
		if err != nil {
			return fmt.Errorf("failed to initialize handler: %w", err)
		}

		q := datahandler.Query{
			Path:   loadPath,
			Name:   loadName,
			Format: core.FormatForExtension(loadFormat),
			Dir:    loadDir,
			ID:     loadID,
		}
		res, err := h.Load(context.Background(), q)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if loadJSON {
			views := make([]loadedView, len(res))
			for i, l := range res {
				views[i] = loadedView{Path: l.Path, Kind: l.Payload.Kind(), Payload: l.Payload}
			}
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(views)
		}

		for _, l := range res {
			if len(res) > 1 {
				fmt.Fprintf(out, "# %s\n", l.Path)
			}
			if err := printPayload(out, l.Payload); err != nil {
				return err
			}
		}
		return nil
	},
}

type loadedView struct {
	Path    string       `json:"path"`
	Kind    string       `json:"kind"`
	Payload core.Payload `json:"payload"`
}

func printPayload(w io.Writer, p core.Payload) error {
	switch v := p.(type) {
	case core.Book:
		for _, s := range v.Sheets {
			fmt.Fprintf(w, "## %s\n", s.Name)
			if err := printPayload(w, s.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fs.NewCSVCodec().Encode(w, p)
	}
}

func init() {
	rootCmd.AddCommand(loadCmd)
	loadCmd.Flags().StringVarP(&loadPath, "path", "p", "", "Full file path")
	loadCmd.Flags().StringVarP(&loadName, "name", "n", "", "File name without extension ('*' wildcards allowed)")
	loadCmd.Flags().StringVarP(&loadFormat, "format", "f", "", "File format (csv, xlsx, pickle)")
	loadCmd.Flags().StringVarP(&loadDir, "dir", "d", "", "Directory holding the file")
	loadCmd.Flags().StringVar(&loadID, "id", "", "File log identifier")
	loadCmd.Flags().BoolVar(&loadJSON, "json", false, "Output in JSON format")
}
