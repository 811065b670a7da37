package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_RegistersAllSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["tune"])
	assert.True(t, names["sample"])
	assert.True(t, names["uncertainty"])
}

func TestTuneCmd_DefinesConfigFlag(t *testing.T) {
	flag := tuneCmd.Flags().Lookup("config")
	assert.NotNil(t, flag)
}
