package main

import (
	"image"
	"strings"
	"testing"

	"vparse/pkg/grid"
)

func TestLoad(t *testing.T) {
	lines, failed := load("../../_vsamples/counter.v")
	if failed {
		t.Fatalf("load failed: %v", lines)
	}
	if lines[0] != "module counter (" {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if lines[len(lines)-1] != "endmodule" {
		t.Errorf("unexpected last line %q", lines[len(lines)-1])
	}
}

func TestLoadFailure(t *testing.T) {
	lines, failed := load("../../_vsamples/missing.v")
	if !failed {
		t.Fatal("expected a failed load")
	}
	if !strings.Contains(lines[0], "missing.v") {
		t.Errorf("error should name the file, got %q", lines[0])
	}
}

func TestScrollClamps(t *testing.T) {
	g := &Game{lines: make([]string, rows+10)}
	g.scroll(100)
	if g.top != 10 {
		t.Errorf("top = %d, want 10", g.top)
	}
	g.scroll(-100)
	if g.top != 0 {
		t.Errorf("top = %d, want 0", g.top)
	}

	short := &Game{lines: []string{"a", "b"}}
	short.scroll(5)
	if short.top != 0 {
		t.Errorf("short document should not scroll, top = %d", short.top)
	}
}

func TestRender(t *testing.T) {
	fb := image.NewRGBA(image.Rect(0, 0, cols*cellWidth, rows*cellHeight))
	render(fb, grid.Fill([]string{"x"}, 0, cols, rows), foreground)

	lit := 0
	for y := 0; y < cellHeight; y++ {
		for x := 0; x < cellWidth; x++ {
			if fb.RGBAAt(x, y) != background {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("first cell should hold glyph pixels")
	}
	if fb.RGBAAt(cellWidth*5+3, cellHeight*3+6) != background {
		t.Error("empty cells should stay background")
	}
}

func TestStatus(t *testing.T) {
	g := &Game{path: "a.v", lines: []string{"a", "b", "c"}}
	if got := g.status(); got != "a.v  lines 1-3 of 3  [R] reload" {
		t.Errorf("status = %q", got)
	}
}
