/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/mapcode"
	"github.com/ssargent/mapcode/pkg/territory"
)

func newTerritoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "territory [code or name]",
		Short: "Show a territory, or list all of them",
		Long: `Show a territory by ISO code, alias or name. Without an argument every
territory of the dataset is listed.

Examples:
  mapcode territory
  mapcode territory US-CA
  mapcode territory --context RUS IN
  mapcode territory Netherlands`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTerritory,
	}
	c.Flags().StringP("context", "c", "", "Territory to tell subdivisions apart")
	return c
}

func runTerritory(cmd *cobra.Command, args []string) error {
	e, err := engineOf(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	tbl := e.Table()

	if len(args) == 0 {
		for _, id := range tbl.IDs() {
			iso, err := tbl.IsoName(id, false)
			if err != nil {
				return err
			}
			ter, err := tbl.Territory(id)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%-8s %s\n", iso, ter.Name)
		}
		return nil
	}

	name, _ := cmd.Flags().GetString("context")
	ctx, err := lookupTerritory(e, name, territory.None)
	if err != nil {
		return err
	}
	id, err := lookupTerritory(e, args[0], ctx)
	if err != nil {
		return err
	}
	return printTerritory(out, e, id)
}

func printTerritory(out io.Writer, e *mapcode.Engine, id territory.ID) error {
	tbl := e.Table()
	ter, err := tbl.Territory(id)
	if err != nil {
		return err
	}
	iso, err := e.TerritoryIsoName(id, false)
	if err != nil {
		return err
	}
	short, err := e.TerritoryIsoName(id, true)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "id:       %d\n", id)
	fmt.Fprintf(out, "iso:      %s\n", iso)
	fmt.Fprintf(out, "short:    %s\n", short)
	fmt.Fprintf(out, "name:     %s\n", ter.Name)
	if len(ter.Aliases) > 0 {
		fmt.Fprintf(out, "aliases:  %s\n", strings.Join(ter.Aliases, ", "))
	}
	if tbl.IsSubdivision(id) {
		parent, err := tbl.ParentOf(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "parent:   %s\n", tbl.Code(parent))
	}
	if tbl.HasSubdivisions(id) {
		fmt.Fprintln(out, "subdivisions: yes")
	}
	fmt.Fprintf(out, "records:  %d-%d\n", ter.FirstRecord, ter.LastRecord)
	return nil
}
