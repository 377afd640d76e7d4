package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/tagcloud/pkg/document"
	"github.com/matzehuels/tagcloud/pkg/pipeline"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,pdf,png", []string{"svg", "pdf", "png"}},
		{"spaces trimmed", "svg, json", []string{"svg", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "words.txt", "words"},
		{"", "cloud.layout.json", "cloud"},
		{"", "cloud.tags.json", "cloud"},
		{"out.svg", "words.txt", "out"},
		{"out", "words.txt", "out"},
		{"out.backup", "words.txt", "out.backup"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestArtifactPaths(t *testing.T) {
	paths := artifactPaths([]string{"svg"}, "words.txt", "cloud.svg")
	if paths["svg"] != "cloud.svg" {
		t.Errorf("single format: %v", paths)
	}

	paths = artifactPaths([]string{"svg", "png"}, "words.txt", "")
	if paths["svg"] != "words.svg" || paths["png"] != "words.png" {
		t.Errorf("multiple formats: %v", paths)
	}

	// Never overwrite the input.
	paths = artifactPaths([]string{"svg", "json"}, "tags.json", "")
	if paths["json"] != "tags.cloud.json" {
		t.Errorf("input collision: %v", paths)
	}
}

func TestLayoutFlagsOverrideOnlyWhenSet(t *testing.T) {
	var f layoutFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"--width", "1024", "--padding", "0", "--angle-count", "3"}); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Width: 500, Height: 400, Mode: "rectangular", Angles: []float64{0}}
	f.apply(fs, &opts)

	if opts.Width != 1024 {
		t.Errorf("Width = %d, want flag value", opts.Width)
	}
	if opts.Height != 400 || opts.Mode != "rectangular" {
		t.Errorf("unset flags changed config values: %+v", opts)
	}
	if opts.Padding == nil || *opts.Padding != 0 {
		t.Errorf("Padding = %v, want explicit 0", opts.Padding)
	}
	if opts.Angles != nil || opts.AngleCount != 3 || opts.AngleTo != 90 {
		t.Errorf("angle range = %v %d %v", opts.Angles, opts.AngleCount, opts.AngleTo)
	}
}

func TestRenderFlagsDefaultFormat(t *testing.T) {
	var f renderFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{}
	f.apply(fs, &opts)
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v", opts.Formats)
	}

	opts = pipeline.Options{Formats: []string{"png"}}
	f.apply(fs, &opts)
	if opts.Formats[0] != "png" {
		t.Errorf("config formats overwritten: %v", opts.Formats)
	}
}

func sampleLayout() document.Layout {
	return document.Layout{
		Width: 200, Height: 100, Mode: "spiral", Scale: 1,
		Words: []document.Word{
			{Text: "small", Size: 12, Fill: "#aaaaaa"},
			{Text: "big", Size: 40, Fill: "#3b5998"},
			{Text: "mid", Size: 20, Rotation: 90},
		},
		Skipped: []document.Skip{{Row: 3, Text: "huge", Reason: "unplaceable"}},
	}
}

func TestInspectModel(t *testing.T) {
	m := NewInspectModel("cloud.layout.json", sampleLayout())

	view := m.View()
	for _, want := range []string{"cloud.layout.json", "3 placed", "1 skipped", "small", "big"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(InspectModel)
	if m.Cursor != 1 {
		t.Errorf("Cursor = %d after down", m.Cursor)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	m = next.(InspectModel)
	if m.Cursor != 2 {
		t.Errorf("Cursor = %d after end", m.Cursor)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")})
	m = next.(InspectModel)
	if !m.BySize || m.Layout.Words[m.order[0]].Text != "big" {
		t.Errorf("sort by size: first = %q", m.Layout.Words[m.order[0]].Text)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(InspectModel)
	if !m.ShowSkipped || !strings.Contains(m.View(), "unplaceable") {
		t.Error("tab should show skipped words")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Error("q should quit")
	}
}

func TestInspectModelEmpty(t *testing.T) {
	m := NewInspectModel("empty", document.Layout{Width: 10, Height: 10})
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if next.(InspectModel).Cursor != 0 {
		t.Error("cursor should stay at 0")
	}
	if !strings.Contains(m.View(), "no words") {
		t.Error("empty view should say so")
	}
}

func TestDisplayURL(t *testing.T) {
	tests := map[string]string{
		":8080":          "http://localhost:8080",
		"127.0.0.1:9000": "http://127.0.0.1:9000",
		"bogus":          "bogus",
	}
	for addr, want := range tests {
		if got := displayURL(addr); got != want {
			t.Errorf("displayURL(%q) = %q, want %q", addr, got, want)
		}
	}
}

// isolate points config and cache lookups at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	return dir
}

func execute(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	var logs bytes.Buffer
	c := New(&logs, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return c, root.ExecuteContext(context.Background())
}

func TestCommandsEndToEnd(t *testing.T) {
	dir := isolate(t)
	input := filepath.Join(dir, "words.csv")
	if err := os.WriteFile(input, []byte("text,weight\ngo,10\ncloud,5\nspiral,2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tags := filepath.Join(dir, "words.tags.json")
	if _, err := execute(t, "parse", input, "-o", tags); err != nil {
		t.Fatalf("parse: %v", err)
	}

	layoutPath := filepath.Join(dir, "words.layout.json")
	if _, err := execute(t, "layout", tags, "--width", "300", "--height", "200", "-o", layoutPath); err != nil {
		t.Fatalf("layout: %v", err)
	}
	l, err := document.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 300 || l.Placed()+len(l.Skipped) != 3 {
		t.Errorf("layout = %dx%d, %d placed", l.Width, l.Height, l.Placed())
	}

	if _, err := execute(t, "visualize", layoutPath, "-f", "svg,json"); err != nil {
		t.Fatalf("visualize: %v", err)
	}
	svg, err := os.ReadFile(filepath.Join(dir, "words.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(svg, []byte(">go</text>")) {
		t.Errorf("svg missing word: %s", svg)
	}

	out := filepath.Join(dir, "direct.svg")
	if _, err := execute(t, "render", input, "--no-cache", "-o", out); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("render output: %v", err)
	}

	if _, err := execute(t, "inspect", layoutPath, "--plain"); err != nil {
		t.Errorf("inspect: %v", err)
	}
}

func TestConfigFileAppliesAndFlagsOverride(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "tagcloud.toml")
	cfg := "[layout]\nwidth = 320\nheight = 160\nangles = [0]\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	input := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(input, []byte("alpha beta beta gamma gamma gamma"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "a.layout.json")
	c, err := execute(t, "--config", cfgPath, "layout", input, "--height", "240", "-o", out)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if c.Config.Layout.Width != 320 {
		t.Errorf("config not loaded: %+v", c.Config.Layout)
	}

	l, err := document.ReadLayoutFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if l.Width != 320 || l.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", l.Width, l.Height)
	}
	for _, w := range l.Words {
		if w.Rotation != 0 {
			t.Errorf("word %q rotated despite angles = [0]", w.Text)
		}
	}
}

func TestMissingConfigFile(t *testing.T) {
	dir := isolate(t)
	if _, err := execute(t, "--config", filepath.Join(dir, "nope.toml"), "cache", "path"); err == nil {
		t.Error("expected error for missing explicit config")
	}
}

func TestCachePathUsesConfig(t *testing.T) {
	dir := isolate(t)
	cfgPath := filepath.Join(dir, "c.toml")
	custom := filepath.Join(dir, "custom-cache")
	if err := os.WriteFile(cfgPath, []byte("[cache]\ndir = \""+filepath.ToSlash(custom)+"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := execute(t, "--config", cfgPath, "cache", "clear")
	if err != nil {
		t.Fatal(err)
	}
	got, err := c.localCacheDir()
	if err != nil || got != filepath.ToSlash(custom) {
		t.Errorf("localCacheDir = %q, %v", got, err)
	}
}

func TestCompleteFormats(t *testing.T) {
	tests := []struct {
		toComplete string
		want       []string
	}{
		{"", []string{"svg", "png", "pdf", "json"}},
		{"svg,", []string{"svg,png", "svg,pdf", "svg,json"}},
		{"svg,png,p", []string{"svg,png,pdf", "svg,png,json"}},
	}
	for _, tt := range tests {
		t.Run(tt.toComplete, func(t *testing.T) {
			got, _ := completeFormats(nil, nil, tt.toComplete)
			if !slices.Equal(got, tt.want) {
				t.Errorf("completeFormats(%q) = %v, want %v", tt.toComplete, got, tt.want)
			}
		})
	}
}

func TestShellCompletion(t *testing.T) {
	isolate(t)
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"render", "--mode", ""}, []string{"spiral", "rectangular"}},
		{[]string{"render", "-f", "svg,"}, []string{"svg,png", "svg,json"}},
		{[]string{"layout", "--font", ""}, []string{"sans", "mono"}},
		{[]string{"layout", "--font-weight", ""}, []string{"bold"}},
		{[]string{"serve", "--cache", ""}, []string{"memory", "redis", "mongo"}},
		{[]string{"visualize", ""}, []string{"json"}},
		{[]string{"parse", ""}, []string{"txt", "csv", "tsv"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			var out bytes.Buffer
			c := New(&bytes.Buffer{}, log.InfoLevel)
			root := c.RootCommand()
			root.SetArgs(append([]string{cobra.ShellCompRequestCmd}, tt.args...))
			root.SetOut(&out)
			root.SetErr(&bytes.Buffer{})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w+"\n") {
					t.Errorf("completions %q missing %q", out.String(), w)
				}
			}
		})
	}
}
