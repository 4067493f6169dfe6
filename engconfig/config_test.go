package engconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kestrelgame/enginecore/engconfig"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func Test_Load_UsesDefaultsWhenNoConfigFilesExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := engconfig.Load(engconfig.LoadInput{WorkDir: dir})
	require.NoError(t, err)
	require.Equal(t, dir, cfg.AssetRoot)
	require.Equal(t, 5000, cfg.ProfileHistoryLimit)
}

func Test_Load_ReadsProjectConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, engconfig.ConfigFileName), `{"profile_history_limit": 200}`)

	cfg, err := engconfig.Load(engconfig.LoadInput{WorkDir: dir})
	require.NoError(t, err)
	require.Equal(t, 200, cfg.ProfileHistoryLimit)
}

func Test_Load_StripsJSONCComments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, engconfig.ConfigFileName), `{
		// history limit for local debugging
		"profile_history_limit": 42,
	}`)

	cfg, err := engconfig.Load(engconfig.LoadInput{WorkDir: dir})
	require.NoError(t, err)
	require.Equal(t, 42, cfg.ProfileHistoryLimit)
}

func Test_Load_ExplicitConfigFlagOverridesProjectFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, engconfig.ConfigFileName), `{"profile_history_limit": 1}`)
	writeFile(t, filepath.Join(dir, "custom.jsonc"), `{"profile_history_limit": 999}`)

	cfg, err := engconfig.Load(engconfig.LoadInput{WorkDir: dir, ConfigPath: "custom.jsonc"})
	require.NoError(t, err)
	require.Equal(t, 999, cfg.ProfileHistoryLimit)
}

func Test_Load_ExplicitConfigFlagMissingFileErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := engconfig.Load(engconfig.LoadInput{WorkDir: dir, ConfigPath: "missing.jsonc"})
	require.ErrorIs(t, err, engconfig.ErrConfigFileNotFound)
}

func Test_Load_AssetRootOverrideWinsOverFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, engconfig.ConfigFileName), `{"asset_root": "from-file"}`)

	cfg, err := engconfig.Load(engconfig.LoadInput{WorkDir: dir, AssetRootOverride: "from-cli"})
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "from-cli"), cfg.AssetRoot)
}

func Test_Load_GlobalConfigIsOverriddenByProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	globalDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(globalDir, "enginectl"), 0o755))
	writeFile(t, filepath.Join(globalDir, "enginectl", "config.jsonc"), `{"profile_history_limit": 10}`)
	writeFile(t, filepath.Join(dir, engconfig.ConfigFileName), `{"profile_history_limit": 20}`)

	cfg, err := engconfig.Load(engconfig.LoadInput{
		WorkDir: dir,
		Env:     map[string]string{"XDG_CONFIG_HOME": globalDir},
	})
	require.NoError(t, err)
	require.Equal(t, 20, cfg.ProfileHistoryLimit)
	require.Equal(t, filepath.Join(globalDir, "enginectl", "config.jsonc"), cfg.Sources.Global)
}

func Test_Load_InvalidJSONReturnsWrappedError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, engconfig.ConfigFileName), `{not valid json`)

	_, err := engconfig.Load(engconfig.LoadInput{WorkDir: dir})
	require.ErrorIs(t, err, engconfig.ErrConfigInvalid)
}
