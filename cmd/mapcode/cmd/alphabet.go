/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/mapcode/pkg/alphabet"
)

func newAlphabetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "alphabet <mapcode>",
		Short: "Write a mapcode in other scripts",
		Long: `Write a mapcode in every supported alphabet, or in one with --to.
With --roman the input, in any alphabet, is written back in Roman.
A territory in front of the code is kept as it is.

Examples:
  mapcode alphabet "NLD JD.LZM"
  mapcode alphabet --to greek JD.LZM
  mapcode alphabet --roman "$(mapcode alphabet --to greek JD.LZM)"`,
		Args:        cobra.RangeArgs(1, 2),
		Annotations: map[string]string{noEngine: "true"},
		RunE:        runAlphabet,
	}
	c.Flags().String("to", "", "Target alphabet (default: all)")
	c.Flags().Bool("roman", false, "Convert to Roman")
	return c
}

// splitTerritory separates a leading territory from the code.
func splitTerritory(input string) (string, string) {
	fields := strings.Fields(input)
	if len(fields) < 2 {
		return "", strings.TrimSpace(input)
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1]
}

func withTerritory(terr, code string) string {
	if terr == "" {
		return code
	}
	return terr + " " + code
}

func runAlphabet(cmd *cobra.Command, args []string) error {
	terr, code := splitTerritory(strings.Join(args, " "))
	out := cmd.OutOrStdout()

	if roman, _ := cmd.Flags().GetBool("roman"); roman {
		fmt.Fprintln(out, withTerritory(terr, alphabet.ToRoman(code)))
		return nil
	}

	if to, _ := cmd.Flags().GetString("to"); to != "" {
		a, err := alphabet.Parse(to)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, withTerritory(terr, alphabet.ToAlphabet(code, a)))
		return nil
	}

	for _, a := range alphabet.All() {
		fmt.Fprintf(out, "%-10s %s\n", a, withTerritory(terr, alphabet.ToAlphabet(code, a)))
	}
	return nil
}
