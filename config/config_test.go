package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `env:
  env: test
  serviceName: planner-test
  log:
    pretty: true
    level: debug
http:
  port: 9090
search:
  bucketLimit: 10
  nudgeRounds: 3
  timeout: 2s
  directions:
    - name: east
      value: 1
      dx: 1
      dy: 0
    - name: west
      value: 2
      dx: -1
      dy: 0
scene:
  path: ./zones/*.geojson
  removeContained: true
cache:
  enabled: true
  path: /tmp/costs.db
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))

	return dir
}

func TestLoad_ReadsYAML(t *testing.T) {
	dir := writeConfig(t, sampleYAML)

	cfg, err := Load("config", dir)
	require.NoError(t, err)

	assert.Equal(t, "planner-test", cfg.Env.ServiceName)
	assert.True(t, cfg.Env.Log.Pretty)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Search.BucketLimit)
	assert.Equal(t, 3, cfg.Search.NudgeRounds)
	assert.Equal(t, 2*time.Second, cfg.Search.Timeout)
	assert.Equal(t, []DirectionConfig{
		{Name: "east", Value: 1, DX: 1},
		{Name: "west", Value: 2, DX: -1},
	}, cfg.Search.Directions)
	assert.Equal(t, "./zones/*.geojson", cfg.Scene.Path)
	assert.True(t, cfg.Scene.RemoveContained)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "/tmp/costs.db", cfg.Cache.Path)

	// Defaults fill whatever the file leaves out
	assert.Equal(t, "ceil", cfg.Search.Rounding)
	assert.Equal(t, 64, cfg.Search.MaxNudgeRounds)
	assert.Equal(t, "100KB", cfg.HTTP.MaxRequestBodySize)
}

func TestLoad_EnvOverridesNestedKeys(t *testing.T) {
	dir := writeConfig(t, sampleYAML)
	t.Setenv("PLANNER_SEARCH_BUCKETLIMIT", "7")
	t.Setenv("PLANNER_ENV_LOG_LEVEL", "warn")
	t.Setenv("PLANNER_SCENE_SIMPLIFYEPSILON", "0.5")

	cfg, err := Load("config", dir)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Search.BucketLimit)
	assert.Equal(t, "warn", cfg.Env.Log.Level)
	assert.Equal(t, 0.5, cfg.Scene.SimplifyEpsilon)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("missing", t.TempDir())
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 20, cfg.Search.BucketLimit)
	assert.Equal(t, "info", cfg.Env.Log.Level)
	assert.Equal(t, ":memory:", cfg.Cache.Path)
	assert.False(t, cfg.Cache.Enabled)
	assert.Empty(t, cfg.Search.Directions)
}

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"search": map[string]any{
			"bucketLimit": 20,
			"nudgeRounds": 0,
		},
		"scene": map[string]any{
			"indexMinChildren": 25,
		},
		"http": map[string]any{
			"timeouts": map[string]any{
				"readTimeout": "15s",
			},
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "SEARCH_BUCKETLIMIT", want: "search.bucketLimit"},
		{envKey: "SEARCH_NUDGEROUNDS", want: "search.nudgeRounds"},
		{envKey: "SCENE_INDEXMINCHILDREN", want: "scene.indexMinChildren"},
		{envKey: "HTTP_TIMEOUTS_READTIMEOUT", want: "http.timeouts.readTimeout"},
		{envKey: "CACHE_ENABLED", want: "cache.enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}
