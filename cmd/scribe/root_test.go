package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersionCommand(t *testing.T) {
	assert.Equal(t, "scribe version dev\n", execute(t, "version"))
}

func TestGraphCommand(t *testing.T) {
	out := execute(t, "graph")
	assert.Contains(t, out, "graph TD")
	assert.Contains(t, out, "awaiting_blog_choice")
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("LLM_PROVIDER", "gemini")

	require.NoError(t, rootCmd.ParseFlags([]string{"--store=file", "--llm=memory", "--env=missing.env"}))
	t.Cleanup(func() {
		_ = rootCmd.ParseFlags([]string{"--store=", "--llm=", "--env=.env"})
	})

	cfg, err := loadConfig(rootCmd)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Session.Store)
	assert.Equal(t, "memory", cfg.LLM.Provider)
	assert.Equal(t, "memory", cfg.Documents.Store)
}
