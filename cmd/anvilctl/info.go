package main

import (
	"github.com/UniquesKernel/anvil/pkg/arena"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print the library's compile-time constants and host memory parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		info := map[string]any{
			"min_alignment":   arena.MinAlignment,
			"max_alignment":   arena.MaxAlignment,
			"max_stack_depth": arena.MaxStackDepth,
			"transfer_magic":  arena.TransferMagic,
			"page_size":       arena.PageSize(),
		}

		if jsonOut {
			return printJSON(info)
		}
		printLine("min_alignment:   %d", arena.MinAlignment)
		printLine("max_alignment:   %d", arena.MaxAlignment)
		printLine("max_stack_depth: %d", arena.MaxStackDepth)
		printLine("transfer_magic:  0x%X", arena.TransferMagic)
		printLine("page_size:       %d", arena.PageSize())
		return nil
	},
}
