/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/api"
	"github.com/ssargent/mapcode/pkg/cache"
	"github.com/ssargent/mapcode/pkg/config"
	"github.com/ssargent/mapcode/pkg/logger"
	"github.com/ssargent/mapcode/pkg/storage"
)

func newServeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the mapcode REST API server.

Batch jobs are kept in the data directory. With a Redis address configured,
decode results are cached in Redis.

Examples:
  mapcode serve --api-key=mysecretkey --port=8080
  mapcode serve --dataset ./world.mcd --data-dir ./data`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := runtimeOf(cmd)
			if err != nil {
				return err
			}
			applyServerFlags(cmd, rt.cfg)
			return runServer(cmd, rt.cfg)
		},
	}
	addServerFlags(c)
	c.Flags().String("api-key", "", "API key for clients; \"auto\" generates one, empty disables auth")
	return c
}

func addServerFlags(c *cobra.Command) {
	c.Flags().StringP("data-dir", "d", "", "Data directory for batch jobs")
	c.Flags().IntP("port", "p", 8080, "Port to listen on")
	c.Flags().String("bind", "127.0.0.1", "Address to bind server to")
}

// applyServerFlags overrides cfg with the flags given on the command line.
func applyServerFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("bind") {
		cfg.Bind, _ = cmd.Flags().GetString("bind")
	}
	if cmd.Flags().Changed("api-key") {
		cfg.Security.APIKey, _ = cmd.Flags().GetString("api-key")
	}
}

// runServer opens the job store and cache of cfg and serves until the
// process is interrupted.
func runServer(cmd *cobra.Command, cfg *config.Config) error {
	if container == nil {
		return errors.New("dependency container not initialized")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	e, err := engineOf(cmd)
	if err != nil {
		return err
	}

	if cfg.Security.APIKey == "auto" {
		key, err := config.GenerateSecureKey(32)
		if err != nil {
			return err
		}
		cfg.Security.APIKey = key
		cmd.Printf("Generated API key for this run: %s\n", key)
	}

	jobsDir := filepath.Join(cfg.DataDir, "jobs")
	if err := os.MkdirAll(jobsDir, 0750); err != nil {
		return errors.Wrap(err, "create data dir")
	}
	jobs, err := storage.Open(jobsDir)
	if err != nil {
		return err
	}
	defer jobs.Close()

	c := cache.New(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, cfg.Cache.TTL())
	defer c.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serveWith(ctx, cmd, api.Dependencies{Engine: e, Jobs: jobs, Cache: c}, cfg)
}

func serveWith(ctx context.Context, cmd *cobra.Command, deps api.Dependencies, cfg *config.Config) error {
	tbl := deps.Engine.Table()
	cmd.Printf("Starting mapcode server on %s:%d\n", cfg.Bind, cfg.Port)
	cmd.Printf("Data directory: %s\n", cfg.DataDir)
	logger.L().Info("serve",
		"territories", tbl.Count(),
		"records", tbl.RecordCount(),
		"redis", cfg.Cache.RedisAddr != "",
	)

	starter := container.GetServerFactory().CreateServerStarter()
	return starter.StartServer(ctx, deps, api.ServerConfig{
		Port:          cfg.Port,
		Bind:          cfg.Bind,
		APIKey:        cfg.Security.APIKey,
		BatchWorkers:  cfg.Batch.Workers,
		BatchMaxItems: cfg.Batch.MaxItems,
	})
}
