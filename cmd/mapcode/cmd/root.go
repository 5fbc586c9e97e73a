/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/config"
	"github.com/ssargent/mapcode/pkg/dataset"
	"github.com/ssargent/mapcode/pkg/di"
	"github.com/ssargent/mapcode/pkg/logger"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/territory"
)

// noEngine is the annotation of commands that run without a dataset.
const noEngine = "no-engine"

type runtimeKey struct{}

// runtime is what the root command prepares for its subcommands.
type runtime struct {
	cfg        *config.Config
	configPath string
	// loaded is false when no config file existed and cfg holds defaults.
	loaded bool
	engine *mapcode.Engine
}

var container *di.Container

// SetContainer injects the dependency container.
func SetContainer(c *di.Container) {
	container = c
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mapcode",
		Short: "Mapcode - short codes for locations",
		Long: `mapcode converts coordinates into short, territory-scoped mapcodes
and back. It works on the command line, in batch over files, or as a
REST API server.`,
		SilenceUsage:      true,
		PersistentPreRunE: prepare,
	}

	root.PersistentFlags().String("dataset", "", "Territory dataset, .yaml or .mcd (default: builtin world)")
	root.PersistentFlags().String("config", "", "Path to config file (default: OS-specific location)")
	root.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	root.AddCommand(
		newEncodeCmd(),
		newDecodeCmd(),
		newParseCmd(),
		newTerritoryCmd(),
		newAlphabetCmd(),
		newDatasetCmd(),
		newBatchCmd(),
		newInitCmd(),
		newServeCmd(),
		newUpCmd(),
		newServiceCmd(),
	)
	return root
}

// Execute runs the command line. This is called by main.main().
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// prepare loads .env files and the configuration, sets up logging and,
// unless the command is annotated otherwise, loads the dataset.
func prepare(cmd *cobra.Command, args []string) error {
	config.LoadEnvFiles()

	rt := &runtime{}
	rt.configPath, _ = cmd.Flags().GetString("config")
	if rt.configPath == "" {
		rt.configPath = config.GetDefaultConfigPath()
	}
	if config.ConfigExists(rt.configPath) {
		cfg, err := config.LoadConfig(rt.configPath)
		if err != nil {
			return err
		}
		rt.cfg, rt.loaded = cfg, true
	} else {
		rt.cfg = config.DefaultConfig()
	}
	if err := config.ApplyEnv(rt.cfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("dataset") {
		rt.cfg.Dataset, _ = cmd.Flags().GetString("dataset")
	}
	if cmd.Flags().Changed("log-level") {
		rt.cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	logger.Setup(rt.cfg.Logging.Level, rt.cfg.Logging.Format)

	if needsEngine(cmd) {
		tbl, err := dataset.Load(rt.cfg.Dataset)
		if err != nil {
			return err
		}
		rt.engine = mapcode.NewEngine(tbl)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, runtimeKey{}, rt))
	return nil
}

// needsEngine is false when cmd or one of its parents is annotated with
// noEngine.
func needsEngine(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[noEngine] != "" {
			return false
		}
	}
	return true
}

func runtimeOf(cmd *cobra.Command) (*runtime, error) {
	rt, ok := cmd.Context().Value(runtimeKey{}).(*runtime)
	if !ok {
		return nil, errors.New("command not prepared")
	}
	return rt, nil
}

func engineOf(cmd *cobra.Command) (*mapcode.Engine, error) {
	rt, err := runtimeOf(cmd)
	if err != nil {
		return nil, err
	}
	if rt.engine == nil {
		return nil, errors.New("no dataset loaded")
	}
	return rt.engine, nil
}

// lookupTerritory accepts an ISO code, an alias or a territory name. An
// empty name is territory.None.
func lookupTerritory(e *mapcode.Engine, name string, context territory.ID) (territory.ID, error) {
	if name == "" {
		return territory.None, nil
	}
	id, err := e.ResolveTerritory(name, context)
	if err == nil {
		return id, nil
	}
	if byName, nameErr := e.Table().FindByName(name); nameErr == nil {
		return byName, nil
	}
	return territory.None, err
}
