package texturepacker

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// Raster is a decoded 8-bit RGBA image and the file it came from.
type Raster struct {
	Path  string
	Image *image.NRGBA
}

// Skipped records a file that was left out of the sheet.
type Skipped struct {
	Path string
	Err  error
}

// PNG colour types from the IHDR chunk
const (
	ctGray      = 0
	ctRGB       = 2
	ctPalette   = 3
	ctGrayAlpha = 4
	ctRGBA      = 6
)

const pngHeader = "\x89PNG\r\n\x1a\n"

// header is the part of a PNG that describes its pixel layout.
type header struct {
	depth     uint8
	colorType uint8
	trns      bool // A tRNS chunk precedes the image data
}

// readHeader walks the chunks of a PNG up to the first IDAT.
func readHeader(b []byte) (header, error) {
	var h header
	if !bytes.HasPrefix(b, []byte(pngHeader)) {
		return h, errors.New("not a PNG file")
	}

	seenIHDR := false
	for b = b[len(pngHeader):]; len(b) >= 8; {
		length := binary.BigEndian.Uint32(b[:4])
		typ := string(b[4:8])
		if uint64(len(b)) < 12+uint64(length) {
			return h, errors.Errorf("truncated %s chunk", typ)
		}
		data := b[8 : 8+length]

		switch typ {
		case "IHDR":
			if length < 13 {
				return h, errors.New("short IHDR chunk")
			}
			h.depth, h.colorType = data[8], data[9]
			seenIHDR = true
		case "tRNS":
			h.trns = true
		case "IDAT":
			if !seenIHDR {
				return h, errors.New("missing IHDR chunk")
			}
			return h, nil
		}

		// Chunk data is followed by a CRC
		b = b[12+length:]
	}

	return h, errors.New("missing IDAT chunk")
}

// format names the pixel layout the file decodes to once palettes and
// tRNS transparency are expanded. Only RGBA8 can be packed.
func (h header) format() string {
	wide := h.depth == 16
	switch {
	case h.colorType == ctRGBA, h.colorType == ctRGB && h.trns:
		if wide {
			return "RGBA16"
		}
		return "RGBA8"
	case h.colorType == ctRGB:
		if wide {
			return "RGB16"
		}
		return "RGB8"
	case h.colorType == ctPalette:
		if h.trns {
			return "RGBA8"
		}
		return "Indexed8"
	case h.colorType == ctGrayAlpha, h.colorType == ctGray && h.trns:
		if wide {
			return "LA16"
		}
		return "LA8"
	case h.colorType == ctGray:
		if wide {
			return "L16"
		}
		return "L8"
	default:
		return fmt.Sprintf("colour type %d", h.colorType)
	}
}

// formatName describes the pixel layout of a decoded image.
func formatName(m image.Image) string {
	switch m.(type) {
	case *image.NRGBA:
		return "RGBA8"
	case *image.RGBA:
		return "RGB8"
	case *image.NRGBA64:
		return "RGBA16"
	case *image.RGBA64:
		return "RGB16"
	case *image.Gray:
		return "L8"
	case *image.Gray16:
		return "L16"
	case *image.Paletted:
		return "Indexed8"
	default:
		return fmt.Sprintf("%T", m)
	}
}

// expandPalette converts a paletted image to non-premultiplied RGBA. The
// palette entries image/png produces for tRNS are color.NRGBA so the
// conversion is exact.
func expandPalette(pm *image.Paletted) *image.NRGBA {
	b := pm.Bounds()
	m := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m.SetNRGBA(x, y, color.NRGBAModel.Convert(pm.At(x, y)).(color.NRGBA))
		}
	}
	return m
}

func decodeFile(file string) (*image.NRGBA, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, &Error{Kind: UndecodableImage, Path: file, Err: err}
	}

	m, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, &Error{Kind: UndecodableImage, Path: file, Err: err}
	}

	// image/png decodes grey+alpha to *image.NRGBA as well, so the pixel
	// layout has to come from the file itself
	h, err := readHeader(b)
	if err != nil {
		return nil, &Error{Kind: UndecodableImage, Path: file, Err: err}
	}
	if f := h.format(); f != "RGBA8" {
		return nil, &Error{Kind: UnsupportedPixelFormat, Path: file, Format: f}
	}

	switch m := m.(type) {
	case *image.NRGBA:
		return m, nil
	case *image.Paletted:
		return expandPalette(m), nil
	default:
		return nil, &Error{Kind: UnsupportedPixelFormat, Path: file, Format: formatName(m)}
	}
}
