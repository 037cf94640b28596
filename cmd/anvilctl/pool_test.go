package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolBenchCommandRuns(t *testing.T) {
	poolObjectSize = 16
	poolObjectCount = 4
	poolAlignment = 8
	poolIterations = 20

	err := poolBenchCmd.RunE(poolBenchCmd, nil)
	require.NoError(t, err)
}
