package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSizes(t *testing.T) {
	sizes, err := parseSizes("8, 16,32")
	require.NoError(t, err)
	assert.Equal(t, []uintptr{8, 16, 32}, sizes)
}

func TestParseSizesRejectsGarbage(t *testing.T) {
	_, err := parseSizes("8,not-a-number")
	assert.Error(t, err)
}

func TestScratchAllocCommandRuns(t *testing.T) {
	scratchCapacity = 256
	scratchAlignment = 8
	scratchSizes = "16,32"

	err := scratchAllocCmd.RunE(scratchAllocCmd, nil)
	require.NoError(t, err)
}
