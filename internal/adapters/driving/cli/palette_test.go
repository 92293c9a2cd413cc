package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaletteCmd_Use(t *testing.T) {
	assert.Equal(t, "palette", paletteCmd.Use)
}

func TestPaletteCmd_HasTUIAlias(t *testing.T) {
	assert.Contains(t, paletteCmd.Aliases, "tui")
}

func TestPaletteCmd_LongDocumentsKeybindings(t *testing.T) {
	assert.Contains(t, paletteCmd.Long, "ctrl+k")
	assert.Contains(t, paletteCmd.Long, "ctrl+x")
	assert.Contains(t, paletteCmd.Long, "Entrée")
}
