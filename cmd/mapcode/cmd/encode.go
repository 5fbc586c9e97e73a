/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/alphabet"
	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/territory"
)

func newEncodeCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "encode <lat> <lon>",
		Short: "Encode a coordinate into mapcodes",
		Long: `Encode a coordinate into its mapcodes, most specific first.

Negative coordinates go after "--" so they are not read as flags.

Examples:
  mapcode encode 52.376514 4.908543
  mapcode encode --territory NLD --precision 2 52.376514 4.908543
  mapcode encode --alphabet greek -- -33.8568 151.2153`,
		Args: cobra.ExactArgs(2),
		RunE: runEncode,
	}
	c.Flags().StringP("territory", "t", "", "Only codes of this territory")
	c.Flags().IntP("precision", "p", 0, "Extension characters, 0 to 8")
	c.Flags().StringP("alphabet", "a", "roman", "Output alphabet")
	c.Flags().Bool("shortest", false, "Print only the shortest code")
	c.Flags().Bool("max-error", false, "Print the worst-case error in meters first")
	return c
}

func parseCoordinate(latArg, lonArg string) (float64, float64, error) {
	lat, err := strconv.ParseFloat(latArg, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "latitude %q", latArg)
	}
	lon, err := strconv.ParseFloat(lonArg, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "longitude %q", lonArg)
	}
	return lat, lon, nil
}

func runEncode(cmd *cobra.Command, args []string) error {
	e, err := engineOf(cmd)
	if err != nil {
		return err
	}
	lat, lon, err := parseCoordinate(args[0], args[1])
	if err != nil {
		return err
	}
	precision, _ := cmd.Flags().GetInt("precision")
	if precision < 0 || precision > 8 {
		return errors.Errorf("precision must be 0 to 8, got %d", precision)
	}
	name, _ := cmd.Flags().GetString("alphabet")
	script, err := alphabet.Parse(name)
	if err != nil {
		return err
	}
	terr, _ := cmd.Flags().GetString("territory")
	t, err := lookupTerritory(e, terr, territory.None)
	if err != nil {
		return err
	}

	var codes mapcode.Mapcodes
	if shortest, _ := cmd.Flags().GetBool("shortest"); shortest {
		res, ok, encErr := e.EncodeShortest(lat, lon, t, precision)
		if ok {
			codes = mapcode.Mapcodes{res}
		}
		err = encErr
	} else {
		codes, err = e.EncodeAll(lat, lon, t, precision)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if maxErr, _ := cmd.Flags().GetBool("max-error"); maxErr {
		fmt.Fprintf(out, "# max error %.2f m\n", mapcode.MaxErrorInMeters(precision))
	}
	for _, r := range codes {
		fmt.Fprintln(out, formatResult(r, script))
	}
	return nil
}

// formatResult writes r in script, keeping the territory in Roman.
func formatResult(r mapcode.Result, script alphabet.Alphabet) string {
	if script == alphabet.Roman {
		return r.String()
	}
	code := r.InAlphabet(script)
	if r.TerritoryISO == territory.EarthCode || r.TerritoryISO == "" {
		return code
	}
	return r.TerritoryISO + " " + code
}
