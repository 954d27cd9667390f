package config

import (
    "os"
    "path/filepath"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
    cfg := Default()
    assert.Equal(t, ":8080", cfg.Addr)
    assert.Equal(t, 0.08, cfg.Pricing.FuelRate)
    assert.Equal(t, []string{"5", "6"}, cfg.Pricing.MetroZones)
    assert.Equal(t, 8, cfg.Pricing.MoffettMinQuantity)
    assert.Equal(t, "ND", cfg.Pricing.DefaultService)
    assert.Empty(t, cfg.Extraction.APIKey)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
    cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
    require.NoError(t, err)
    assert.Equal(t, Default().Addr, cfg.Addr)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.yaml")
    require.NoError(t, os.WriteFile(path, []byte(
        "addr: \":9090\"\npricing:\n  fuelRate: 0.1\n  metroZones: [\"6\"]\n"), 0o644))

    t.Setenv("PORT", "7070")
    t.Setenv("OPENAI_API_KEY", "sk-test")
    t.Setenv("LOG_LEVEL", "debug")

    cfg, err := Load(path)
    require.NoError(t, err)
    assert.Equal(t, ":7070", cfg.Addr, "env beats file")
    assert.Equal(t, 0.1, cfg.Pricing.FuelRate)
    assert.Equal(t, []string{"6"}, cfg.Pricing.MetroZones)
    assert.Equal(t, "sk-test", cfg.Extraction.APIKey)
    assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadBadYAML(t *testing.T) {
    path := filepath.Join(t.TempDir(), "config.yaml")
    require.NoError(t, os.WriteFile(path, []byte("addr: [unclosed"), 0o644))
    _, err := Load(path)
    assert.Error(t, err)
}
