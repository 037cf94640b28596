package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/UniquesKernel/anvil/cmd/anvilctl/logger"
	"github.com/UniquesKernel/anvil/pkg/arena"
	"github.com/spf13/cobra"
)

var (
	stackCapacity  uintptr
	stackAlignment uintptr
	stackLazy      bool
	stackScript    string
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Exercise a stack (checkpoint/unwind) allocator",
}

var stackTraceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Drive a stack allocator through a checkpoint script",
	Long: `Each comma-separated script step is one of:
  record        push the current cursor onto the checkpoint stack
  unwind        pop the checkpoint stack, invalidating allocations since it
  alloc:<size>  bump-allocate <size> bytes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy := arena.StrategyEager
		if stackLazy {
			strategy = arena.StrategyLazy
		}

		s, err := arena.CreateStack(stackCapacity, stackAlignment, strategy)
		if err != nil {
			logger.LogError("stack allocator creation failed", err, "capacity", stackCapacity)
			return err
		}
		defer arena.DestroyStack(&s)

		logger.Info("stack allocator created", "capacity", stackCapacity, "lazy", stackLazy)

		for i, step := range strings.Split(stackScript, ",") {
			step = strings.TrimSpace(step)
			if step == "" {
				continue
			}
			switch {
			case step == "record":
				if err := s.Record(); err != nil {
					printLine("step[%d] record -> %v", i, err)
					continue
				}
				printLine("step[%d] record -> depth=%d", i, s.Depth())
			case step == "unwind":
				if err := s.Unwind(); err != nil {
					printLine("step[%d] unwind -> %v", i, err)
					continue
				}
				printLine("step[%d] unwind -> allocated=%d", i, s.Allocated())
			case strings.HasPrefix(step, "alloc:"):
				size, err := strconv.ParseUint(strings.TrimPrefix(step, "alloc:"), 10, 64)
				if err != nil {
					return fmt.Errorf("bad alloc step %q: %w", step, err)
				}
				p := s.Alloc(uintptr(size), stackAlignment)
				if p.IsNull() {
					printLine("step[%d] alloc:%d -> exhausted", i, size)
					continue
				}
				printLine("step[%d] alloc:%d -> addr=0x%X", i, size, uintptr(p))
			default:
				return fmt.Errorf("unrecognized script step %q", step)
			}
		}

		return nil
	},
}

func init() {
	stackTraceCmd.Flags().Uint64Var((*uint64)(&stackCapacity), "capacity", 4096, "region capacity in bytes")
	stackTraceCmd.Flags().Uint64Var((*uint64)(&stackAlignment), "alignment", 8, "allocation alignment")
	stackTraceCmd.Flags().BoolVar(&stackLazy, "lazy", false, "commit pages on demand instead of eagerly")
	stackTraceCmd.Flags().StringVar(&stackScript, "script", "record,alloc:8,unwind", "comma-separated checkpoint script")

	stackCmd.AddCommand(stackTraceCmd)
}
