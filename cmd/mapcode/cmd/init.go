/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/config"
)

func newInitCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file with a fresh API key",
		Long: `Create a configuration file with a newly generated API key and the
default settings, without starting the server.

Examples:
  mapcode init
  mapcode init --config ./mapcode.yaml --data-dir ./data --force`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{noEngine: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeOf(cmd)
			if err != nil {
				return err
			}
			force, _ := cmd.Flags().GetBool("force")
			if rt.loaded && !force {
				return errors.Errorf("config %s already exists (use --force to replace it)", rt.configPath)
			}
			dataDir, _ := cmd.Flags().GetString("data-dir")
			cfg, err := config.BootstrapConfig(rt.configPath, dataDir)
			if err != nil {
				return err
			}
			cmd.Printf("Configuration created at %s\n", rt.configPath)
			cmd.Printf("Data directory: %s\n", cfg.DataDir)
			cmd.Printf("API key: %s...\n", cfg.Security.APIKey[:8])
			return nil
		},
	}
	c.Flags().StringP("data-dir", "d", "", "Data directory for batch jobs")
	c.Flags().Bool("force", false, "Replace an existing configuration")
	return c
}
