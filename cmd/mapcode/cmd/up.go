/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/config"
)

func newUpCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "up",
		Short: "Bootstrap and start the mapcode server",
		Long: `Bootstrap mapcode by creating a configuration with a fresh API key if
none exists, then start the REST API server. This is the recommended way to
get the server running.

Examples:
  mapcode up
  mapcode up --data-dir ./mydata --port 9000
  mapcode up --config ./custom-config.yaml --print-keys`,
		Args: cobra.NoArgs,
		RunE: runUp,
	}
	addServerFlags(c)
	c.Flags().Bool("print-keys", false, "Print the generated API key to console")
	return c
}

func runUp(cmd *cobra.Command, args []string) error {
	rt, err := runtimeOf(cmd)
	if err != nil {
		return err
	}
	if err := bootstrapIfNeeded(cmd, rt); err != nil {
		return err
	}
	applyServerFlags(cmd, rt.cfg)
	return runServer(cmd, rt.cfg)
}

// bootstrapIfNeeded writes a new config file when none was loaded and
// takes its API key, unless the environment set one.
func bootstrapIfNeeded(cmd *cobra.Command, rt *runtime) error {
	if rt.loaded {
		cmd.Printf("Loaded existing configuration from %s\n", rt.configPath)
		return nil
	}

	cmd.Printf("First run detected. Bootstrapping mapcode...\n")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	boot, err := config.BootstrapConfig(rt.configPath, dataDir)
	if err != nil {
		return err
	}
	cmd.Printf("Configuration created at %s\n", rt.configPath)

	if rt.cfg.Security.APIKey == config.DefaultConfig().Security.APIKey {
		rt.cfg.Security.APIKey = boot.Security.APIKey
	}
	if dataDir != "" {
		rt.cfg.DataDir = dataDir
	}
	rt.loaded = true

	if printKeys, _ := cmd.Flags().GetBool("print-keys"); printKeys {
		cmd.Printf("\nAPI Key: %s\n", boot.Security.APIKey)
		cmd.Printf("Store this key securely! It is also saved in %s\n", rt.configPath)
	}
	return nil
}
