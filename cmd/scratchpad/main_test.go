package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/scratchpad/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI against a data dir private to the test.
func execute(t *testing.T, dataDir, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvDataDir, dataDir)

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	args = append([]string{"--config", filepath.Join(dataDir, "missing.json")}, args...)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestAddThenList(t *testing.T) {
	dir := t.TempDir()

	id, err := execute(t, dir, "", "add", "contacts", "Ada", "Lovelace")
	require.NoError(t, err)
	id = strings.TrimSpace(id)
	require.NotEmpty(t, id)

	out, err := execute(t, dir, "", "list", "Contacts")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Ada Lovelace")
}

func TestAdd_FromStdin(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "Summarize this diff\nin three bullets\n", "add", "copilot")
	require.NoError(t, err)

	out, err := execute(t, dir, "", "list", "CoPilot")
	require.NoError(t, err)
	assert.Contains(t, out, "Summarize this diff")
}

func TestAdd_Rejects(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, dir, "   \n", "add", "notes")
	assert.Error(t, err, "empty content")

	_, err = execute(t, dir, "", "add", "recipes", "soup")
	assert.Error(t, err, "unknown category")
}

func TestList_Empty(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "list", "bookmarks")
	require.NoError(t, err)
	assert.Contains(t, out, "No Bookmarks notes.")
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	for _, text := range []string{"one", "two"} {
		_, err := execute(t, dir, "", "add", "notes", text)
		require.NoError(t, err)
	}

	out, err := execute(t, dir, "", "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, "Storage used")

	var total string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Total") {
			total = strings.Join(strings.Fields(line), " ")
		}
	}
	assert.Equal(t, "Total 2", total)
}

func TestRun_Unsupported(t *testing.T) {
	_, err := execute(t, t.TempDir(), "", "run", "notes.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "", "version", "-s")
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(out))
}

func TestConfigInit(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config", "config.json")
	config.SetTestConfigPath(cfgPath)
	t.Cleanup(config.ResetTestConfigPath)

	out, err := execute(t, dir, "", "config", "init", "--config", "")
	require.NoError(t, err)
	assert.Contains(t, out, cfgPath)
	assert.FileExists(t, cfgPath)

	_, err = execute(t, dir, "", "config", "init", "--config", "")
	assert.Error(t, err, "second init without --force")

	_, err = execute(t, dir, "", "config", "init", "--config", "", "--force")
	assert.NoError(t, err)
}

func TestConfigInit_WritesToConfigFlag(t *testing.T) {
	dir := t.TempDir()
	defaultPath := filepath.Join(dir, "default", "config.json")
	config.SetTestConfigPath(defaultPath)
	t.Cleanup(config.ResetTestConfigPath)

	yamlPath := filepath.Join(dir, "scratchpad.yaml")
	out, err := execute(t, dir, "", "config", "init", "--config", yamlPath)
	require.NoError(t, err)
	assert.Contains(t, out, yamlPath)
	assert.NoFileExists(t, defaultPath)

	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "storage:")

	cfg, err := config.LoadFrom(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Storage.DataDir)

	out, err = execute(t, dir, "", "config", "path", "--config", yamlPath)
	require.NoError(t, err)
	assert.Equal(t, yamlPath, strings.TrimSpace(out))
}
