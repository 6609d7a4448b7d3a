// Integration tests driving the corkline binary through a full card
// lifecycle: init, add, move, update, archive, delete.
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardLifecycle(t *testing.T) {
	boardDir := filepath.Join(t.TempDir(), "board")
	configDir := t.TempDir()

	run(t, boardDir, configDir, false, "init", "--title", "Integration")
	assert.FileExists(t, filepath.Join(boardDir, "board.md"))
	assert.DirExists(t, filepath.Join(boardDir, "cards", "todo"))

	out := run(t, boardDir, configDir, false, "add", "Fix the Roof", "--json")
	var card struct {
		Slug   string
		Column string
	}
	require.NoError(t, json.Unmarshal([]byte(out), &card))
	assert.Equal(t, "fix-the-roof", card.Slug)
	assert.Equal(t, "todo", card.Column)
	assert.FileExists(t, filepath.Join(boardDir, "cards", "todo", "fix-the-roof.md"))

	run(t, boardDir, configDir, false, "move", "fix-the-roof", "doing")
	assert.FileExists(t, filepath.Join(boardDir, "cards", "doing", "fix-the-roof.md"))
	assert.NoFileExists(t, filepath.Join(boardDir, "cards", "todo", "fix-the-roof.md"))

	// Title edits never rename the file.
	run(t, boardDir, configDir, false, "update", "fix-the-roof", "--title", "Fix the Whole Roof")
	assert.FileExists(t, filepath.Join(boardDir, "cards", "doing", "fix-the-roof.md"))

	out = run(t, boardDir, configDir, false, "show", "fix-the-roof")
	assert.Contains(t, out, "Fix the Whole Roof")

	run(t, boardDir, configDir, false, "archive", "fix-the-roof")
	assert.NoFileExists(t, filepath.Join(boardDir, "cards", "doing", "fix-the-roof.md"))
	entries, err := os.ReadDir(filepath.Join(boardDir, "archive"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "fix-the-roof.md")

	// The slug is free again once archived.
	run(t, boardDir, configDir, false, "add", "Fix the Roof")
	assert.FileExists(t, filepath.Join(boardDir, "cards", "todo", "fix-the-roof.md"))

	run(t, boardDir, configDir, false, "delete", "fix-the-roof")
	assert.NoFileExists(t, filepath.Join(boardDir, "cards", "todo", "fix-the-roof.md"))
}

func TestInitRefusesExistingBoard(t *testing.T) {
	boardDir := filepath.Join(t.TempDir(), "board")
	configDir := t.TempDir()

	run(t, boardDir, configDir, false, "init")
	out := run(t, boardDir, configDir, true, "init")
	assert.Contains(t, out, "Error")
}

func TestDuplicateSlugFails(t *testing.T) {
	boardDir := filepath.Join(t.TempDir(), "board")
	configDir := t.TempDir()

	run(t, boardDir, configDir, false, "init")
	run(t, boardDir, configDir, false, "add", "Unique Title")
	out := run(t, boardDir, configDir, true, "add", "Unique Title", "--column", "doing")
	assert.Contains(t, out, "slug")
}

func TestColumnAndLabelCommands(t *testing.T) {
	boardDir := filepath.Join(t.TempDir(), "board")
	configDir := t.TempDir()

	run(t, boardDir, configDir, false, "init")
	run(t, boardDir, configDir, false, "column", "add", "Later")
	assert.DirExists(t, filepath.Join(boardDir, "cards", "later"))

	out := run(t, boardDir, configDir, false, "label", "add", "Urgent", "--color", "#d73a4a", "--json")
	var label struct{ ID string }
	require.NoError(t, json.Unmarshal([]byte(out), &label))

	run(t, boardDir, configDir, false, "add", "Hot Task", "--label", label.ID)
	out = run(t, boardDir, configDir, false, "list", "--label", label.ID)
	assert.Contains(t, out, "Hot Task")

	out = run(t, boardDir, configDir, false, "list", "--label", "nonexistent")
	assert.NotContains(t, out, "Hot Task")
}
