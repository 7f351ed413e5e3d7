package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath = "."

	// EnvPrefix marks environment variables that override YAML keys,
	// e.g. PLANNER_SEARCH_BUCKETLIMIT -> search.bucketLimit
	EnvPrefix = "PLANNER_"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Search SearchConfig `json:"search" yaml:"search"`

	Scene SceneConfig `json:"scene" yaml:"scene"`

	Cache CacheConfig `json:"cache" yaml:"cache"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// SearchConfig tunes the path search engine
type SearchConfig struct {
	// Budget multiplier: a search makes at most distance² × bucketLimit oracle queries
	BucketLimit int `json:"bucketLimit" yaml:"bucketLimit"`

	// Cost at or above which a path counts as not found
	NotFoundCost float64 `json:"notFoundCost" yaml:"notFoundCost"`

	// How step distances are priced: "ceil" or "exact"
	Rounding string `json:"rounding" yaml:"rounding"`

	// Default number of paths expanded by local nudging; 0 disables it
	NudgeRounds int `json:"nudgeRounds" yaml:"nudgeRounds"`

	// Upper bound for nudge rounds requested per call
	MaxNudgeRounds int `json:"maxNudgeRounds" yaml:"maxNudgeRounds"`

	// Wall-clock limit for one search
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Direction set for nudging and single-unit moves; empty means left/up/right/down
	Directions []DirectionConfig `json:"directions" yaml:"directions"`
}

// DirectionConfig declares one named movement direction
type DirectionConfig struct {
	Name  string  `json:"name" yaml:"name"`
	Value int     `json:"value" yaml:"value"`
	DX    float64 `json:"dx" yaml:"dx"`
	DY    float64 `json:"dy" yaml:"dy"`
}

// SceneConfig defines where obstacles come from and how they are prepared
type SceneConfig struct {
	// Glob of GeoJSON files holding obstacle polygons; empty means an open plane
	Path string `json:"path" yaml:"path"`

	// Douglas-Peucker threshold, 0 disables simplification
	SimplifyEpsilon float64 `json:"simplifyEpsilon" yaml:"simplifyEpsilon"`

	// Pick the simplification threshold from the vertex count
	AutoSimplify bool `json:"autoSimplify" yaml:"autoSimplify"`

	// Drop obstacles nested inside other obstacles
	RemoveContained bool `json:"removeContained" yaml:"removeContained"`

	IndexMinChildren int `json:"indexMinChildren" yaml:"indexMinChildren"`
	IndexMaxChildren int `json:"indexMaxChildren" yaml:"indexMaxChildren"`
}

// CacheConfig defines the persistent cost cache
type CacheConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// SQLite file, or ":memory:"
	Path string `json:"path" yaml:"path"`
}

// Default returns a configuration usable without any file
func Default() *Config {
	cfg := new(Config)
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Env.ServiceName == "" {
		cfg.Env.ServiceName = "cost-planner"
	}
	if cfg.Env.Log.Level == "" {
		cfg.Env.Log.Level = "info"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = "100KB"
	}
	if cfg.HTTP.Timeouts.ReadTimeout == 0 {
		cfg.HTTP.Timeouts.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.Timeouts.ReadHeaderTimeout == 0 {
		cfg.HTTP.Timeouts.ReadHeaderTimeout = 5 * time.Second
	}
	if cfg.HTTP.Timeouts.WriteTimeout == 0 {
		cfg.HTTP.Timeouts.WriteTimeout = 60 * time.Second
	}
	if cfg.HTTP.Timeouts.IdleTimeout == 0 {
		cfg.HTTP.Timeouts.IdleTimeout = 120 * time.Second
	}
	if cfg.Search.BucketLimit == 0 {
		cfg.Search.BucketLimit = 20
	}
	if cfg.Search.Rounding == "" {
		cfg.Search.Rounding = "ceil"
	}
	if cfg.Search.MaxNudgeRounds == 0 {
		cfg.Search.MaxNudgeRounds = 64
	}
	if cfg.Search.Timeout == 0 {
		cfg.Search.Timeout = 30 * time.Second
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = ":memory:"
	}
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			if filepath.IsAbs(path) {
				searchPaths = append(searchPaths, path)
				continue
			}
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(k, v string) (string, any) {
			// PLANNER_SEARCH_BUCKETLIMIT -> search.bucketLimit (not search.bucketlimit)
			key := canonicalizeEnvKey(strings.TrimPrefix(k, EnvPrefix), existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

// New loads config.yaml from the usual locations and fills in defaults
func New() (*Config, error) {
	return Load("config", "config", "../config", "../../config")
}

// Load reads <name>.yaml from the given directories and fills in defaults
func Load(name string, configPath ...string) (*Config, error) {
	cfg, err := LoadWithEnv[Config](name, configPath...)
	if err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	return cfg, nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
