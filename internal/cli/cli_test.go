package cli

import (
	"io"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"gen", "search", "show", "add", "new", "browse", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c.Logger.GetLevel() != LogInfo {
		t.Errorf("initial level = %v, want info", c.Logger.GetLevel())
	}
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level after SetLogLevel = %v, want debug", c.Logger.GetLevel())
	}
}

func TestCacheDirConfigOverride(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.cfg.CacheDir = "/tmp/custom-cache"
	if got := c.cacheDir(); got != "/tmp/custom-cache" {
		t.Errorf("cacheDir() = %q, want config override", got)
	}
}
