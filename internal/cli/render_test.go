package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelgrid/pkg/config"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "png", []string{"png"}},
		{"multiple formats", "svg,png,txt", []string{"svg", "png", "txt"}},
		{"spaces trimmed", "svg, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		formats []string
		want    map[string]string
	}{
		{"default base", "", []string{"svg"}, map[string]string{"svg": "grid.svg"}},
		{"single explicit", "out/frame.svg", []string{"svg"}, map[string]string{"svg": "out/frame.svg"}},
		{"single without extension", "frame", []string{"png"}, map[string]string{"png": "frame"}},
		{"multiple strips format ext", "frame.svg", []string{"svg", "png"},
			map[string]string{"svg": "frame.svg", "png": "frame.png"}},
		{"multiple keeps other ext", "frame.v2", []string{"svg", "txt"},
			map[string]string{"svg": "frame.v2.svg", "txt": "frame.v2.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := outputPaths(tt.output, tt.formats)
			for f, want := range tt.want {
				if got[f] != want {
					t.Errorf("outputPaths(%q)[%s] = %q, want %q", tt.output, f, got[f], want)
				}
			}
		})
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)
	base := filepath.Join(dir, "out", "frame")

	c := New(&bytes.Buffer{}, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs([]string{"render",
		"-f", "svg,txt,json",
		"-o", base,
		"--width", "64", "--height", "64", "--cell-size", "4",
		"--pattern", "cross",
	})

	captureStdout(t, func() {
		if err := root.Execute(); err != nil {
			t.Fatalf("render error = %v", err)
		}
	})

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg output starts with %.20q", svg)
	}

	txt, err := os.ReadFile(base + ".txt")
	if err != nil {
		t.Fatalf("read txt: %v", err)
	}
	if lines := strings.Count(string(txt), "\n"); lines != 16 {
		t.Errorf("txt output has %d lines, want 16", lines)
	}

	if _, err := os.Stat(base + ".json"); err != nil {
		t.Errorf("json output missing: %v", err)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", dir)

	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"render", "-f", "gif", "--no-cache"}},
		{"bad pattern", []string{"render", "--pattern", "spiral", "--no-cache"}},
		{"bad width", []string{"render", "--width=-5", "--no-cache"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
			root.SetArgs(tt.args)
			root.SetErr(&bytes.Buffer{})
			if err := root.Execute(); err == nil {
				t.Errorf("Execute(%v) error = nil, want error", tt.args)
			}
		})
	}
}

func TestApplyRenderFlagsKeepsUnsetValues(t *testing.T) {
	c := New(&bytes.Buffer{}, log.InfoLevel)
	cmd := c.renderCommand()
	if err := cmd.ParseFlags([]string{"--rotation", "30"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}

	cfg := config.DefaultConfig()
	var opts renderOpts
	opts.rotation = 30
	applyRenderFlags(cmd, cfg, &opts)

	if cfg.Rotation != 30 {
		t.Errorf("Rotation = %v, want 30", cfg.Rotation)
	}
	if cfg.Viewport.Width != config.DefaultConfig().Viewport.Width {
		t.Errorf("Width = %v, want the config default", cfg.Viewport.Width)
	}
}
