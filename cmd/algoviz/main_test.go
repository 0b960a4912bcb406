package main

import (
	"testing"

	"github.com/san-kum/algoviz/internal/config"
	"github.com/san-kum/algoviz/internal/generator"
	"github.com/san-kum/algoviz/internal/logging"
	"github.com/san-kum/algoviz/internal/session"
	"github.com/san-kum/algoviz/internal/step"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseData(t *testing.T) {
	twoSum := generator.TwoSumAlgorithm()
	lru := generator.LRUCacheAlgorithm()

	data, err := parseData(twoSum, "2, 7,11 ,15")
	require.NoError(t, err)
	assert.Equal(t, step.Ints(2, 7, 11, 15), data)

	data, err = parseData(lru, "put 1 1,get 1")
	require.NoError(t, err)
	assert.Equal(t, step.Texts("put 1 1", "get 1"), data)

	data, err = parseData(twoSum, "  ")
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = parseData(twoSum, "1,x")
	assert.ErrorIs(t, err, session.ErrInvalidNumber)
}

func testCommand(t *testing.T) *cobra.Command {
	t.Helper()
	cfg = config.DefaultConfig()
	logger = logging.NewNop()
	preset, dataFlag, paramFlag = "", "", nil
	t.Cleanup(func() { preset, dataFlag, paramFlag = "", "", nil })

	cmd := &cobra.Command{Use: "test"}
	inputFlags(cmd)
	return cmd
}

func TestResolveInput_Layers(t *testing.T) {
	cmd := testCommand(t)

	in, err := resolveInput(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, "two-sum", in.algo.Name)
	assert.Equal(t, cfg.Data, in.data)

	require.NoError(t, cmd.Flags().Parse([]string{"--preset", "duplicates", "--param", "target=10"}))
	in, err = resolveInput(cmd, []string{"two-sum"})
	require.NoError(t, err)
	assert.Equal(t, step.Ints(3, 3), in.data)
	assert.Equal(t, 10, in.params["target"])
}

func TestResolveInput_Errors(t *testing.T) {
	cmd := testCommand(t)

	_, err := resolveInput(cmd, []string{"nope"})
	assert.ErrorIs(t, err, generator.ErrUnknownAlgorithm)

	require.NoError(t, cmd.Flags().Parse([]string{"--preset", "nope"}))
	_, err = resolveInput(cmd, []string{"two-sum"})
	assert.ErrorContains(t, err, "unknown preset")
}

func TestResolveInput_UnknownParam(t *testing.T) {
	cmd := testCommand(t)

	require.NoError(t, cmd.Flags().Parse([]string{"-p", "speed=3"}))
	_, err := resolveInput(cmd, []string{"bubble-sort"})
	assert.ErrorContains(t, err, "no parameter")
}
