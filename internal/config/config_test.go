package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "info", s.Log.Level)
	assert.Equal(t, "json", s.Log.Format)
	assert.Equal(t, "reimport.yaml", s.Rules.File)
	assert.Equal(t, 8080, s.Server.Port)
	assert.Equal(t, 1000, s.Rewrite.MaxReplacements)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "log:\n  level: debug\nrules:\n  file: tools.json\n  path: plugins.reimport\nserver:\n  port: 9090\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	s, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, "tools.json", s.Rules.File)
	assert.Equal(t, "plugins.reimport", s.Rules.Path)
	assert.Equal(t, 9090, s.Server.Port)
	assert.Equal(t, "0.0.0.0", s.Server.Host)
}
