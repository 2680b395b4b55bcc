package main

import (
	"github.com/spf13/cobra"

	"github.com/mlutra/shimkit/shim"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols",
	Short: "List the interposed allocator symbol set",
	Long: `Lists every allocator-family symbol the shim interposes, in dispatch
table order.

Example:
  shimctl symbols
  shimctl symbols --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSymbols()
	},
}

func init() {
	rootCmd.AddCommand(symbolsCmd)
}

func runSymbols() error {
	names := make([]string, 0, shim.SymbolCount)
	for _, s := range shim.Symbols() {
		names = append(names, s.String())
	}

	if jsonOut {
		return printJSON(names)
	}

	for _, name := range names {
		printInfo("%s\n", name)
	}
	return nil
}
