package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inful/supercollider/internal/doc"
	ferrors "github.com/inful/supercollider/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "supercollider.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "sources:\n  markup: [./templates]\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, DefaultDest, cfg.Dest)
	require.Equal(t, DefaultTitle, cfg.Title)
	require.Equal(t, []string{"json", "html"}, cfg.Adapters)
	require.Equal(t, runtime.GOMAXPROCS(0), cfg.Concurrency)
	require.Equal(t, map[doc.SourceType][]string{doc.Markup: {"./templates"}}, cfg.Sources.Roots())
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SC_STYLES", "/srv/styles")
	t.Setenv(EnvTitle, "")
	path := writeConfig(t, "sources:\n  stylesheet: [${SC_STYLES}]\ndest: out\ntitle: Acme\nadapters: [json]\nconcurrency: 2\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"/srv/styles"}, cfg.Sources.Stylesheet)
	require.Equal(t, "out", cfg.Dest)
	require.Equal(t, "Acme", cfg.Title)
	require.Equal(t, []string{"json"}, cfg.Adapters)
	require.Equal(t, 2, cfg.Concurrency)
}

func TestLoad_EnvOverridesDest(t *testing.T) {
	t.Setenv(EnvDest, "/tmp/override")
	path := writeConfig(t, "sources:\n  script: [./js]\ndest: ./site\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/override", cfg.Dest)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "sources: [unclosed\n"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"no sources":         "dest: ./site\n",
		"empty root":         "sources:\n  markup: ['']\n",
		"negative workers":   "sources:\n  markup: [a]\nconcurrency: -1\n",
		"duplicate adapters": "sources:\n  markup: [a]\nadapters: [json, json]\n",
		"blank adapter":      "sources:\n  markup: [a]\nadapters: ['']\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(body))
			require.Error(t, err)
			require.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
		})
	}
}

func TestInit_WritesLoadableExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "supercollider.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []string{"./templates"}, cfg.Sources.Markup)
	require.Equal(t, DefaultAdapters, cfg.Adapters)

	err = Init(path, false)
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	require.NoError(t, Init(path, true))
}

func TestLoadEnvFiles_DoesNotOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SC_FROM_FILE=file\nSC_PRESET=file\n"), 0o600))
	t.Chdir(dir)
	t.Setenv("SC_PRESET", "process")
	t.Setenv("SC_FROM_FILE", "")
	require.NoError(t, os.Unsetenv("SC_FROM_FILE"))

	loadEnvFiles()
	require.Equal(t, "file", os.Getenv("SC_FROM_FILE"))
	require.Equal(t, "process", os.Getenv("SC_PRESET"))
}
