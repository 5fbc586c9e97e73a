/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/dataset"
)

func newDatasetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "dataset",
		Short: "Compile, export and inspect territory datasets",
	}

	compile := &cobra.Command{
		Use:   "compile <in.yaml> <out.mcd>",
		Short: "Compile a YAML dataset into the binary form",
		Long: `Validate a YAML dataset and write it in the compiled binary form, which
loads faster and is checked for corruption on read. The international
territory is added when the dataset lacks it.`,
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{noEngine: "true"},
		RunE:        runDatasetCompile,
	}

	export := &cobra.Command{
		Use:         "export <in> <out.yaml>",
		Short:       "Write a dataset as YAML; \"-\" writes to stdout",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{noEngine: "true"},
		RunE:        runDatasetExport,
	}

	info := &cobra.Command{
		Use:   "info",
		Short: "Show the size of the loaded dataset",
		Args:  cobra.NoArgs,
		RunE:  runDatasetInfo,
	}

	c.AddCommand(compile, export, info)
	return c
}

func runDatasetCompile(cmd *cobra.Command, args []string) error {
	if ext := filepath.Ext(args[0]); ext != ".yaml" && ext != ".yml" {
		return errors.Wrapf(dataset.ErrUnknownFormat, "%s is not YAML", args[0])
	}
	d, err := dataset.ReadYAMLFile(args[0])
	if err != nil {
		return err
	}
	d.EnsureEarth()
	if _, err := d.Table(); err != nil {
		return err
	}
	if err := dataset.WriteBinaryFile(args[1], d); err != nil {
		return err
	}
	cmd.Printf("Compiled %d territories and %d records into %s\n", len(d.Territories), len(d.Records), args[1])
	return nil
}

func runDatasetExport(cmd *cobra.Command, args []string) error {
	d, err := dataset.ReadFile(args[0])
	if err != nil {
		return err
	}
	if args[1] == "-" {
		return dataset.WriteYAML(cmd.OutOrStdout(), d)
	}

	f, err := os.Create(args[1])
	if err != nil {
		return errors.Wrap(err, "create export file")
	}
	if err := dataset.WriteYAML(f, d); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "close export file")
}

func runDatasetInfo(cmd *cobra.Command, args []string) error {
	e, err := engineOf(cmd)
	if err != nil {
		return err
	}
	rt, err := runtimeOf(cmd)
	if err != nil {
		return err
	}
	source := rt.cfg.Dataset
	if source == "" {
		source = "builtin"
	}
	tbl := e.Table()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "source:      %s\n", source)
	fmt.Fprintf(out, "territories: %d\n", tbl.Count())
	fmt.Fprintf(out, "records:     %d\n", tbl.RecordCount())
	return nil
}
