package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettingsDir_RoundTrip(t *testing.T) {
	dir := SettingsDir(t, map[string]string{
		"language.txt":   "french\n",
		"nested/dlc.txt": "10=a\n",
		"offline.txt":    "",
	})

	files := ReadFiles(t, dir)
	assert.Equal(t, map[string]string{
		"language.txt": "french\n",
		"offline.txt":  "",
	}, files, "ReadFiles is not recursive")

	assert.Equal(t, "10=a\n", ReadFile(t, filepath.Join(dir, "nested"), "dlc.txt"))
}

func TestReadFiles_MissingDir(t *testing.T) {
	assert.Empty(t, ReadFiles(t, filepath.Join(t.TempDir(), "absent")))
}

func TestFixedRunID(t *testing.T) {
	assert.Equal(t, "run-1", NewFixedRunID("run-1").Generate())
	assert.Equal(t, "test-run-default", NewFixedRunID("").Generate())
}
