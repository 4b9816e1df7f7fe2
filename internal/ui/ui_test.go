package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessLine_Plain(t *testing.T) {
	assert.Equal(t, "Database created successfully!", SuccessLine("Database created successfully!", false))
}

func TestSuccessLine_ColorKeepsText(t *testing.T) {
	assert.Contains(t, SuccessLine("Database created successfully!", true), "Database created successfully!")
}

func TestErrorLine(t *testing.T) {
	assert.Equal(t, "Error: boom", ErrorLine("Error: boom", false))
	assert.Contains(t, ErrorLine("Error: boom", true), "Error: boom")
}

func TestSummary_Plain(t *testing.T) {
	assert.Equal(t, "items: 2 rows", Summary("items: 2 rows", false))
}

func TestColorEnabled_NonFileWriter(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "")
	assert.False(t, ColorEnabled(&bytes.Buffer{}))
}

func TestColorEnabled_RegularFile(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "")

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, ColorEnabled(f))
}

func TestColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, ColorEnabled(os.Stdout))
}

func TestColorEnabled_CIEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CI", "true")
	assert.False(t, ColorEnabled(os.Stdout))
}
