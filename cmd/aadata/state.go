package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"

	"github.com/stabilefrisur/aa-data-handler/internal/config"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Print the internal state of the handler and its adapters as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		h, err := newHandler()
		if err != nil {
			return fmt.Errorf("failed to initialize handler: %w", err)
		}

		states := map[string]any{}
		for _, c := range []any{h, h.Repository(), h.FileLog()} {
			intro, ok := c.(introspection.Introspectable)
			if !ok {
				continue
			}
			name := "unknown"
			if comp, ok := c.(introspection.Component); ok {
				name = comp.ComponentType()
			}
			states[name] = intro.State()
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(states)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(stateCmd, configCmd)
	configCmd.AddCommand(configShowCmd)
}
