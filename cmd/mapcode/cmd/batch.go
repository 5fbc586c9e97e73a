/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/batch"
)

func newBatchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "batch <file>",
		Short: "Encode a file of coordinates",
		Long: `Encode every coordinate of a file, one "lat lon" or "lat,lon" pair per
line, on a pool of workers. Blank lines and lines starting with # are
skipped. A file of "-" reads standard input.

Each output line holds the coordinate followed by its codes, separated by
tabs, in input order. Points that cannot be encoded print their error.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}
	c.Flags().StringP("territory", "t", "", "Only codes of this territory")
	c.Flags().IntP("precision", "p", 0, "Extension characters, 0 to 8")
	c.Flags().Bool("shortest", false, "Only the shortest code of each point")
	c.Flags().IntP("workers", "w", 0, "Encoding workers (default: from config)")
	return c
}

func runBatch(cmd *cobra.Command, args []string) error {
	rt, err := runtimeOf(cmd)
	if err != nil {
		return err
	}
	e, err := engineOf(cmd)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "open points file")
		}
		defer f.Close()
		in = f
	}
	points, err := batch.ReadPoints(in)
	if err != nil {
		return err
	}

	req := batch.Request{Points: points}
	req.Territory, _ = cmd.Flags().GetString("territory")
	req.Precision, _ = cmd.Flags().GetInt("precision")
	req.Shortest, _ = cmd.Flags().GetBool("shortest")
	if req.Precision < 0 || req.Precision > 8 {
		return errors.Errorf("precision must be 0 to 8, got %d", req.Precision)
	}
	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 1 {
		workers = rt.cfg.Batch.Workers
	}

	results, err := batch.Encode(cmd.Context(), e, req, workers)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	failed := 0
	for _, res := range results {
		p := points[res.Index]
		if res.Error != "" {
			failed++
			fmt.Fprintf(out, "%g %g\terror: %s\n", p.Lat, p.Lon, res.Error)
			continue
		}
		fmt.Fprintf(out, "%g %g\t%s\n", p.Lat, p.Lon, strings.Join(res.Codes, "\t"))
	}
	if failed > 0 {
		cmd.PrintErrf("%d of %d points failed\n", failed, len(results))
	}
	return nil
}
