package cli

import (
	"io"
	"testing"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"flow", "structure", "preview", "serve", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	if c.Logger.GetLevel() != LogInfo {
		t.Errorf("level = %v, want info", c.Logger.GetLevel())
	}
	c.SetLogLevel(LogDebug)
	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input    string
		output   string
		expected string
	}{
		{"analysis.json", "", "analysis.canvas"},
		{"analysis.json", "custom.canvas", "custom.canvas"},
		{"noext", "", "noext.canvas"},
		{"dir/tree.json", "", "dir/tree.canvas"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.input, tt.output); got != tt.expected {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.input, tt.output, got, tt.expected)
		}
	}
}
