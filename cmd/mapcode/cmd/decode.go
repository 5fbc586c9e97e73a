/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/territory"
)

func newDecodeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "decode <mapcode>",
		Short: "Decode a mapcode into a coordinate",
		Long: `Decode a mapcode, with or without territory, into latitude and longitude.
The territory and the code may be given as one or as two arguments.

Examples:
  mapcode decode "NLD JD.LZM"
  mapcode decode NLD JD.LZM-2Q
  mapcode decode --context USA CA 123.456`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runDecode,
	}
	c.Flags().StringP("context", "c", "", "Territory for codes without one, or to tell subdivisions apart")
	c.Flags().BoolP("verbose", "v", false, "Also print the territory")
	return c
}

func runDecode(cmd *cobra.Command, args []string) error {
	e, err := engineOf(cmd)
	if err != nil {
		return err
	}
	name, _ := cmd.Flags().GetString("context")
	ctx, err := lookupTerritory(e, name, territory.None)
	if err != nil {
		return err
	}

	d, err := e.Decode(strings.Join(args, " "), ctx)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		iso, err := e.TerritoryIsoName(d.Territory, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%.6f %.6f %s\n", d.Lat, d.Lon, iso)
		return nil
	}
	fmt.Fprintf(out, "%.6f %.6f\n", d.Lat, d.Lon)
	return nil
}
