package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"cost-planner/internal/location"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseCommon(t *testing.T, args ...string) commonFlags {
	t.Helper()

	cmd := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := registerCommonFlags(cmd)
	require.NoError(t, cmd.Parse(args))

	return flags
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := parseCommon(t).loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Search.BucketLimit)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "warn", cfg.Env.Log.Level)
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "planner.yaml")
	require.NoError(t, os.WriteFile(file, []byte("search:\n  bucketLimit: 5\n  rounding: exact\n"), 0o600))

	cfg, err := parseCommon(t,
		"-config", file,
		"-cache", filepath.Join(dir, "costs.db"),
		"-bucket", "9",
		"-verbose",
	).loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Search.BucketLimit)
	assert.Equal(t, "exact", cfg.Search.Rounding)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, filepath.Join(dir, "costs.db"), cfg.Cache.Path)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
}

func TestSetup_WithCache(t *testing.T) {
	env, err := parseCommon(t, "-cache", filepath.Join(t.TempDir(), "costs.db")).setup()
	require.NoError(t, err)
	defer env.close()

	require.NotNil(t, env.cache)

	result, err := env.engine.Search(context.Background(), location.New(0, 0), location.New(3, 0))
	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Cost)

	n, err := env.cache.Len(context.Background())
	require.NoError(t, err)
	assert.Positive(t, n)
}

func TestSetup_RejectsBadRounding(t *testing.T) {
	_, err := parseCommon(t, "-rounding", "floor").setup()
	assert.Error(t, err)
}

func TestRunSubcommand_Unknown(t *testing.T) {
	assert.Error(t, runSubcommand(context.Background(), "teleport", nil))
}
