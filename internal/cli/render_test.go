package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

const testDeckJSON = `{"slides": [
	` + testSlideJSON + `,
	{
		"canvas": {"width": 200, "height": 200},
		"backgroundLayers": [{
			"type": "color", "color": "#0000FF",
			"width": 1, "height": 1, "opacity": 1,
			"fitMode": "cover", "blendMode": "normal", "zIndex": 1
		}]
	}
]}`

// runCommand executes the CLI root with the given args against an
// isolated cache directory.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.ErrorLevel)
	c.Config.CacheDir = t.TempDir()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommandWritesPNG(t *testing.T) {
	input := writeDoc(t, "slide.json", testSlideJSON)
	output := filepath.Join(t.TempDir(), "out.png")

	if err := runCommand(t, "render", input, "-o", output); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte{0x89, 'P', 'N', 'G'}) {
		t.Error("output is not a PNG")
	}
}

func TestRenderCommandInfersFormatFromExtension(t *testing.T) {
	input := writeDoc(t, "slide.json", testSlideJSON)
	output := filepath.Join(t.TempDir(), "out.svg")

	if err := runCommand(t, "render", input, "-o", output); err != nil {
		t.Fatalf("render: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("<?xml")) {
		t.Error("output is not an SVG document")
	}
}

func TestRenderCommandPicksDeckSlide(t *testing.T) {
	input := writeDoc(t, "deck.json", testDeckJSON)
	output := filepath.Join(t.TempDir(), "out.png")

	if err := runCommand(t, "render", input, "-o", output, "--slide", "2"); err != nil {
		t.Fatalf("render: %v", err)
	}
	if err := runCommand(t, "render", input, "-o", output, "--slide", "3"); err == nil {
		t.Error("out-of-range slide index should error")
	}
}

func TestExportCommandWritesDeck(t *testing.T) {
	input := writeDoc(t, "deck.json", testDeckJSON)
	dir := t.TempDir()

	if err := runCommand(t, "export", input, "-o", dir, "--no-tui"); err != nil {
		t.Fatalf("export: %v", err)
	}

	for _, name := range []string{"slide_001.png", "slide_002.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestRenderCommandMissingInput(t *testing.T) {
	if err := runCommand(t, "render", "/nonexistent/slide.json"); err == nil {
		t.Error("missing input file should error")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path, want string
	}{
		{"out.png", "png"},
		{"out.JPG", "jpeg"},
		{"out.jpeg", "jpeg"},
		{"out.svg", "svg"},
		{"out.tiff", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := formatFromPath(tt.path); got != tt.want {
			t.Errorf("formatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
