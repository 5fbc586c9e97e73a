/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/alphabet"
	"github.com/ssargent/mapcode/pkg/mapcode"
)

func newParseCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "parse <mapcode>",
		Short: "Check the format of a mapcode",
		Long: `Check that the input is shaped like a mapcode and print its parts.
Nothing is decoded; a well-formed code may still be undecodable.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: runParse,
	}
	c.Flags().Bool("bare", false, "Only accept a mapcode without a territory")
	return c
}

func runParse(cmd *cobra.Command, args []string) error {
	e, err := engineOf(cmd)
	if err != nil {
		return err
	}
	input := strings.Join(args, " ")
	if !isASCII(input) {
		input = alphabet.ToRoman(input)
	}
	el, err := mapcode.ParseFormat(input)
	if err != nil {
		return err
	}
	bare, _ := cmd.Flags().GetBool("bare")

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "territory: %s\n", el.TerritoryISO)
	fmt.Fprintf(out, "mapcode:   %s\n", el.ProperMapcode)
	fmt.Fprintf(out, "extension: %s\n", el.Extension)
	fmt.Fprintf(out, "valid:     %t\n", e.IsValid(input, !bare))
	return nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
