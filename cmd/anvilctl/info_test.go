package main

import (
	"testing"

	"github.com/UniquesKernel/anvil/pkg/arena"
	"github.com/stretchr/testify/require"
)

func TestInfoCommandReportsPageSize(t *testing.T) {
	jsonOut = false
	err := infoCmd.RunE(infoCmd, nil)
	require.NoError(t, err)
	require.NotZero(t, arena.PageSize())
}
