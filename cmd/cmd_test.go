package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"claude-haiku", 32, "claude-haiku"},
		{"google/gemini-2.0-flash-001", 10, "google/gem"},
		{"Kupu-kupu Ājaib", 11, "Kupu-kupu Ā"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		usd  float64
		want string
	}{
		{0, "$0.0000"},
		{0.0042, "$0.0042"},
		{0.01, "$0.01"},
		{1.5, "$1.50"},
	}
	for _, tt := range tests {
		if got := formatCost(tt.usd); got != tt.want {
			t.Errorf("formatCost(%v) = %q, want %q", tt.usd, got, tt.want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"play", "leaderboard", "stickers", "serve", "reset", "llm", "version"}
	have := make(map[string]*cobra.Command)
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = c
	}
	for _, name := range want {
		if have[name] == nil {
			t.Errorf("command %q not registered", name)
		}
	}
	if f := serveCmd.Flags().Lookup("addr"); f == nil || f.DefValue != ":8080" {
		t.Errorf("serve --addr flag = %+v", f)
	}
	for _, flag := range []string{"db", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}
