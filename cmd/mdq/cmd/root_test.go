package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears the package-level flag state between executions.
func resetFlags() {
	configPath = ""
	sourceGlob = ""
	indexPath = ""
	verbose = false
	debugMode = false
}

// testConfig writes a config pointing at a temp notes dir with an
// in-memory index and a temp checksum store.
func testConfig(t *testing.T) (configFile, notesDir string) {
	t.Helper()
	dir := t.TempDir()
	notesDir = filepath.Join(dir, "notes")
	require.NoError(t, os.Mkdir(notesDir, 0o755))

	configFile = filepath.Join(dir, "mdq.toml")
	content := fmt.Sprintf(`
source-glob = %q
index-path = ""
checksum-path = %q
`, filepath.Join(notesDir, "*.md"), filepath.Join(dir, "sums.yaml"))
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))
	return configFile, notesDir
}

func writeTestNote(t *testing.T, dir, name, title, body string) {
	t.Helper()
	content := fmt.Sprintf(`---
title: %s
date: 2021-06-22T16:48:16+00:00
tags:
 - test
---
%s
`, title, body)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	root := NewRootCmd()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestSyncCmdReportsCounts(t *testing.T) {
	configFile, notesDir := testConfig(t)
	writeTestNote(t, notesDir, "a.md", "alpha note", "about gardening")
	writeTestNote(t, notesDir, "b.md", "beta note", "about cooking")

	out, err := runCommand(t, "sync", "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "indexed 2 of 2 files")
}

func TestSyncCmdVerboseEchoesFiles(t *testing.T) {
	configFile, notesDir := testConfig(t)
	writeTestNote(t, notesDir, "a.md", "alpha note", "body")

	out, err := runCommand(t, "sync", "--config", configFile, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "a.md (new)")
}

func TestSyncCmdReportsBrokenFiles(t *testing.T) {
	configFile, notesDir := testConfig(t)
	writeTestNote(t, notesDir, "good.md", "fine", "body")
	require.NoError(t, os.WriteFile(filepath.Join(notesDir, "bad.md"),
		[]byte("no front matter\n"), 0o644))

	out, err := runCommand(t, "sync", "--config", configFile)
	require.NoError(t, err)
	assert.Contains(t, out, "indexed 1 of 2 files")
	assert.Contains(t, out, "bad.md")
}

func TestQueryCmdPrintsJSONLines(t *testing.T) {
	configFile, notesDir := testConfig(t)
	writeTestNote(t, notesDir, "a.md", "tomato planting", "start seeds indoors")
	writeTestNote(t, notesDir, "b.md", "bread baking", "knead and proof")

	out, err := runCommand(t, "query", "tomato", "--config", configFile)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &doc))
	assert.Equal(t, "tomato planting", doc["title"])
	assert.Equal(t, "a.md", doc["filename"])
}

func TestQueryCmdNoMatchesPrintsNothing(t *testing.T) {
	configFile, notesDir := testConfig(t)
	writeTestNote(t, notesDir, "a.md", "tomato planting", "seeds")

	out, err := runCommand(t, "query", "submarine", "--config", configFile)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestQueryCmdBadQueryFails(t *testing.T) {
	configFile, notesDir := testConfig(t)
	writeTestNote(t, notesDir, "a.md", "x", "y")

	_, err := runCommand(t, "query", "title:", "--config", configFile)
	require.Error(t, err)
}

func TestQueryCmdRequiresArgs(t *testing.T) {
	configFile, _ := testConfig(t)

	_, err := runCommand(t, "query", "--config", configFile)
	require.Error(t, err)
}

func TestSourceFlagOverridesConfig(t *testing.T) {
	configFile, _ := testConfig(t)

	otherDir := t.TempDir()
	writeTestNote(t, otherDir, "other.md", "elsewhere", "body")

	out, err := runCommand(t, "sync", "--config", configFile,
		"--source", filepath.Join(otherDir, "*.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "indexed 1 of 1 files")
}

func TestMissingSourceGlobFails(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "mdq.toml")
	require.NoError(t, os.WriteFile(configFile, []byte(`index-path = ""`+"\n"), 0o644))

	_, err := runCommand(t, "sync", "--config", configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source-glob")
}

func TestMissingExplicitConfigFails(t *testing.T) {
	_, err := runCommand(t, "sync", "--config", filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
