// Package engconfig loads the engine's JSONC configuration, layering
// defaults, a global user config, a project config, and CLI overrides,
// in that order of increasing precedence — the same layering the teacher
// documents for its own config file.
package engconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Error variables for config loading.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
	ErrAssetRootEmpty     = errors.New("asset-root cannot be empty")
)

// ConfigFileName is the default project config file name.
const ConfigFileName = ".enginectl.jsonc"

// Config holds the engine's runtime configuration.
type Config struct {
	// AssetRoot is the directory nodetree packaged assets are resolved
	// against. Overridden by --game-root.
	AssetRoot string `json:"asset_root"`

	// ProfileHistoryLimit bounds how many [profiler.FrameTiming] records
	// the frame profiler retains. Overridden by --profile-history.
	ProfileHistoryLimit int `json:"profile_history_limit"`

	// SystemCountHint is a diagnostic hint for the expected number of
	// scheduler systems. It is loaded and merged like the other fields,
	// but nothing else reads it: it is not validated, and the barrier
	// always sizes itself to the systems actually registered via
	// [scheduler.Builder.WithSystem].
	SystemCountHint int `json:"system_count_hint,omitempty"`

	// Sources records which files contributed to the effective config,
	// for diagnostics.
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string
	Project string
}

// DefaultConfig returns the configuration used when no config file is
// found and no CLI flags override it.
func DefaultConfig() Config {
	return Config{
		AssetRoot:           ".",
		ProfileHistoryLimit: 5000,
	}
}

// LoadInput holds the inputs to [Load].
type LoadInput struct {
	WorkDir           string            // if empty, os.Getwd() is used
	ConfigPath        string            // --config flag value, if any
	AssetRootOverride string            // --game-root flag value; empty means no override
	Env               map[string]string // environment variables, for locating the global config
}

// Load loads configuration with the following precedence (highest wins):
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/enginectl/config.jsonc or
//     ~/.config/enginectl/config.jsonc)
//  3. Project config file (.enginectl.jsonc in WorkDir, or an explicit
//     file via ConfigPath)
//  4. CLI overrides
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDir
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.AssetRootOverride != "" {
		cfg.AssetRoot = input.AssetRootOverride
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	if !filepath.IsAbs(cfg.AssetRoot) {
		cfg.AssetRoot = filepath.Join(workDir, cfg.AssetRoot)
	}

	return cfg, nil
}

func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "enginectl", "config.jsonc")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "enginectl", "config.jsonc")
	}

	return ""
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	path := getGlobalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	var (
		cfgFile   string
		mustExist bool
	)

	if configPath != "" {
		cfgFile = configPath
		if !filepath.IsAbs(cfgFile) {
			cfgFile = filepath.Join(workDir, cfgFile)
		}

		mustExist = true

		if _, err := os.Stat(cfgFile); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	} else {
		cfgFile = filepath.Join(workDir, ConfigFileName)
		mustExist = false
	}

	cfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, cfgFile, nil
}

func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, parseErr := parseConfig(data)
	if parseErr != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, parseErr)
	}

	return cfg, true, nil
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return cfg, nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.AssetRoot != "" {
		base.AssetRoot = overlay.AssetRoot
	}

	if overlay.ProfileHistoryLimit != 0 {
		base.ProfileHistoryLimit = overlay.ProfileHistoryLimit
	}

	if overlay.SystemCountHint != 0 {
		base.SystemCountHint = overlay.SystemCountHint
	}

	return base
}

func validateConfig(cfg Config) error {
	if cfg.AssetRoot == "" {
		return ErrAssetRootEmpty
	}

	return nil
}
