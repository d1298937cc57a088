package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0666))
	return path
}

func TestLoad(t *testing.T) {
	expected := Config{
		Solver:   "kissat",
		Timeout:  90 * time.Second,
		Precheck: false,
		Paths:    map[string]string{"kissat": "/opt/kissat/bin/kissat"},
	}

	files := map[string]string{
		"config.json": `{"solver": "kissat", "timeout": "1m30s", "precheck": false, "paths": {"kissat": "/opt/kissat/bin/kissat"}}`,
		"config.toml": "solver = \"kissat\"\ntimeout = \"1m30s\"\nprecheck = false\n\n[paths]\nkissat = \"/opt/kissat/bin/kissat\"\n",
		"config.yaml": "solver: kissat\ntimeout: 1m30s\nprecheck: false\npaths:\n  kissat: /opt/kissat/bin/kissat\n",
	}

	for name, content := range files {
		//** Arrange
		path := writeConfig(t, name, content)

		//** Act
		config, err := Load(path)

		//** Assert
		require.NoError(t, err, name)
		assert.Equal(t, expected, config, name)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "config.yml", "timeout: 5s\n")

	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, DefaultSolver, config.Solver)
	assert.True(t, config.Precheck)
	assert.Equal(t, 5*time.Second, config.Timeout)
}

func TestLoadErrors(t *testing.T) {
	files := map[string]string{
		"config.ini":    "solver=gini\n",
		"broken.json":   "{",
		"unknown.json":  `{"solvers": "gini"}`,
		"negative.json": `{"timeout": "-1s"}`,
		"duration.yaml": "timeout: soon\n",
	}

	for name, content := range files {
		_, err := Load(writeConfig(t, name, content))
		assert.Error(t, err, name)
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
