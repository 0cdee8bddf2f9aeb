// Package preview prints a sprite sheet on the terminal.
//
// Terminals with an inline graphics protocol (kitty, iTerm2/WezTerm or sixel)
// get the real image. Anything else gets one pair of coloured blanks per
// pixel after the sheet has been scaled down to fit.
package preview

import (
	"fmt"
	"image"
	ic "image/color"
	"image/draw"
	"io"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/ericpauley/go-quantize/quantize"
	"github.com/gookit/color"
	"github.com/nfnt/resize"
	"golang.org/x/term"
)

// Mode selects how an image is drawn.
type Mode int

const (
	Auto Mode = iota
	Kitty
	ITerm
	Sixel
	TrueColor
	Color256
)

func (m Mode) String() string {
	switch m {
	case Auto:
		return "auto"
	case Kitty:
		return "kitty"
	case ITerm:
		return "iterm"
	case Sixel:
		return "sixel"
	case TrueColor:
		return "truecolor"
	case Color256:
		return "256color"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := Auto; m <= Color256; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return Auto, fmt.Errorf("preview: unknown mode %q", s)
}

// sixelColors is the palette size used for sixel output.
const sixelColors = 64

// Options controls Print. Columns and Rows bound the size of the text
// renderings; zero values are filled in from the terminal size.
type Options struct {
	Mode    Mode
	Columns int
	Rows    int
}

// Detect picks the best mode supported by the current terminal.
func Detect() Mode {
	if rasterm.IsTermKitty() {
		return Kitty
	}
	if rasterm.IsTermItermWez() {
		return ITerm
	}
	if capable, err := rasterm.IsSixelCapable(); capable && err == nil {
		return Sixel
	}
	return TrueColor
}

// TerminalSize returns the size of the terminal attached to f in character
// cells, falling back to 80x25.
func TerminalSize(f *os.File) (int, int) {
	if w, h, err := term.GetSize(int(f.Fd())); err == nil && w > 0 && h > 0 {
		return w, h
	}
	return 80, 25
}

// Print draws m to w.
func Print(w io.Writer, m image.Image, opts Options) error {
	mode := opts.Mode
	if mode == Auto {
		mode = Detect()
	}

	switch mode {
	case Kitty:
		if err := (rasterm.Settings{}).KittyWriteImage(w, m); err != nil {
			return err
		}
	case ITerm:
		if err := (rasterm.Settings{}).ItermWriteImage(w, m); err != nil {
			return err
		}
	case Sixel:
		if err := (rasterm.Settings{}).SixelWriteImage(w, Quantize(m, sixelColors)); err != nil {
			return err
		}
	case TrueColor, Color256:
		return printBlanks(w, Fit(m, opts.Columns, opts.Rows), mode)
	default:
		return fmt.Errorf("preview: unsupported mode %v", mode)
	}

	_, err := fmt.Fprintln(w)
	return err
}

// Quantize reduces m to a palette of at most n colors.
func Quantize(m image.Image, n int) *image.Paletted {
	b := m.Bounds()
	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(ic.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)
	return pm
}

// Fit scales m down so it can be drawn with two character cells per pixel
// inside columns by rows. Images that already fit are returned unchanged.
func Fit(m image.Image, columns, rows int) image.Image {
	if columns <= 0 || rows <= 0 {
		columns, rows = TerminalSize(os.Stdout)
	}
	return resize.Thumbnail(uint(columns/2), uint(rows), m, resize.NearestNeighbor)
}

func printBlanks(w io.Writer, m image.Image, mode Mode) error {
	b := m.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, err := io.WriteString(w, shade(m.At(x, y), mode)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\x1b[0m\n"); err != nil {
			return err
		}
	}
	return nil
}

func shade(c ic.Color, mode Mode) string {
	n := ic.NRGBAModel.Convert(c).(ic.NRGBA)
	if n.A == 0 {
		return "\x1b[0m  "
	}
	if mode == TrueColor {
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm  ", n.R, n.G, n.B)
	}
	return color.RGB(n.R, n.G, n.B, true).Sprint("  ")
}
