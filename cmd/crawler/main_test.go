package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := rootCommand()

	for _, name := range []string{"terms", "crawl", "categorize", "export"} {
		command, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, command.Name())
	}
}

func TestExportCommandFlags(t *testing.T) {
	command := exportCommand()
	assert.NotNil(t, command.Flags().Lookup("term"))
	assert.NotNil(t, command.Flags().Lookup("out"))
}

func TestTermsCommandStoredFlag(t *testing.T) {
	command := termsCommand()
	assert.NotNil(t, command.Flags().Lookup("stored"))
}
