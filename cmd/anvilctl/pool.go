package main

import (
	"github.com/UniquesKernel/anvil/cmd/anvilctl/logger"
	"github.com/UniquesKernel/anvil/pkg/arena"
	"github.com/spf13/cobra"
)

var (
	poolObjectSize  uintptr
	poolObjectCount uintptr
	poolAlignment   uintptr
	poolIterations  int
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Exercise a pool (fixed-size slot) allocator",
}

var poolBenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Repeatedly acquire/release across a pool and report exhaustion events",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := arena.CreatePool(poolObjectSize, poolObjectCount, poolAlignment)
		if err != nil {
			logger.LogError("pool allocator creation failed", err, "object_size", poolObjectSize)
			return err
		}
		defer arena.DestroyPool(&p)

		logger.Info("pool allocator created", "object_size", poolObjectSize, "object_count", poolObjectCount)

		var acquired, released, exhausted int
		held := make([]arena.Ptr, 0, poolObjectCount)

		for i := 0; i < poolIterations; i++ {
			ptr := p.Acquire()
			if ptr.IsNull() {
				exhausted++
				continue
			}
			acquired++
			held = append(held, ptr)

			if len(held) > 1 && i%2 == 0 {
				last := held[len(held)-1]
				held = held[:len(held)-1]
				if err := p.Release(last); err != nil {
					return err
				}
				released++
			}
		}

		for _, ptr := range held {
			if err := p.Release(ptr); err != nil {
				return err
			}
			released++
		}

		result := map[string]any{
			"acquired":  acquired,
			"released":  released,
			"exhausted": exhausted,
			"free":      p.Size(),
		}
		if jsonOut {
			return printJSON(result)
		}
		printLine("acquired=%d released=%d exhausted=%d free=%d", acquired, released, exhausted, p.Size())
		return nil
	},
}

func init() {
	poolBenchCmd.Flags().Uint64Var((*uint64)(&poolObjectSize), "object-size", 32, "bytes per slot")
	poolBenchCmd.Flags().Uint64Var((*uint64)(&poolObjectCount), "count", 16, "number of slots")
	poolBenchCmd.Flags().Uint64Var((*uint64)(&poolAlignment), "alignment", 8, "slot alignment")
	poolBenchCmd.Flags().IntVar(&poolIterations, "iterations", 100, "number of acquire attempts")

	poolCmd.AddCommand(poolBenchCmd)
}
