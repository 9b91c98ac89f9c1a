package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"vparse/pkg/grid"
	"vparse/pkg/utils"
	"vparse/pkg/verilog"
)

const (
	cols       = 80
	rows       = 36
	cellWidth  = 7  // basicfont.Face7x13 advance
	cellHeight = 13 // basicfont.Face7x13 height
	statusH    = 16

	screenWidth  = cols * cellWidth
	screenHeight = rows*cellHeight + statusH
)

var (
	background = color.RGBA{0x10, 0x14, 0x1c, 0xff}
	foreground = color.RGBA{0xc8, 0xd0, 0xc0, 0xff}
	errorColor = color.RGBA{0xf0, 0x70, 0x60, 0xff}
)

// load parses the file at path and returns the formatted modules one line
// per entry. A failed parse is reported as the error text instead.
func load(path string) (lines []string, failed bool) {
	_, src, err := utils.ReadSource(path)
	if err != nil {
		return strings.Split(err.Error(), "\n"), true
	}
	mods, err := verilog.ParseModules(src)
	if err != nil {
		return strings.Split(fmt.Sprintf("%s: %v", path, err), "\n"), true
	}
	for i, m := range mods {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, strings.Split(m.String(), "\n")...)
	}
	return lines, false
}

// render paints a cols×rows cell buffer into fb.
func render(fb *image.RGBA, cells []rune, fg color.Color) {
	draw.Draw(fb, fb.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  fb,
		Src:  image.NewUniform(fg),
		Face: basicfont.Face7x13,
	}
	ascent := basicfont.Face7x13.Ascent
	for i, r := range cells {
		if r == ' ' {
			continue
		}
		x, y := grid.GetGridCoords(i, cols)
		d.Dot = fixed.P(x*cellWidth, y*cellHeight+ascent)
		d.DrawString(string(r))
	}
}

type Game struct {
	path   string
	lines  []string
	failed bool
	top    int

	fb     *image.RGBA
	canvas *ebiten.Image // reused text layer
	dirty  bool
}

func newGame(path string) *Game {
	g := &Game{
		path: path,
		fb:   image.NewRGBA(image.Rect(0, 0, cols*cellWidth, rows*cellHeight)),
	}
	g.reload()
	return g
}

func (g *Game) reload() {
	g.lines, g.failed = load(g.path)
	g.scroll(0)
	g.dirty = true
}

// scroll moves the first visible line by delta, keeping the view inside the
// document.
func (g *Game) scroll(delta int) {
	top := g.top + delta
	if limit := len(g.lines) - rows; top > limit {
		top = limit
	}
	if top < 0 {
		top = 0
	}
	if top != g.top {
		g.dirty = true
	}
	g.top = top
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.reload()
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.scroll(-len(g.lines))
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.scroll(len(g.lines))
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.scroll(rows - 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.scroll(-(rows - 1))
	case ebiten.IsKeyPressed(ebiten.KeyDown):
		g.scroll(1)
	case ebiten.IsKeyPressed(ebiten.KeyUp):
		g.scroll(-1)
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.scroll(-int(dy * 3))
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(cols*cellWidth, rows*cellHeight)
		g.dirty = true
	}
	if g.dirty {
		fg := color.Color(foreground)
		if g.failed {
			fg = errorColor
		}
		render(g.fb, grid.Fill(g.lines, g.top, cols, rows), fg)
		g.canvas.WritePixels(g.fb.Pix)
		g.dirty = false
	}
	screen.DrawImage(g.canvas, nil)
	ebitenutil.DebugPrintAt(screen, g.status(), 2, rows*cellHeight)
}

func (g *Game) status() string {
	last := g.top + rows
	if last > len(g.lines) {
		last = len(g.lines)
	}
	return fmt.Sprintf("%s  lines %d-%d of %d  [R] reload", g.path, g.top+1, last, len(g.lines))
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: vview <file.v>")
		os.Exit(2)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetWindowTitle("vparse viewer")

	if err := ebiten.RunGame(newGame(os.Args[1])); err != nil {
		log.Fatal(err)
	}
}
