package texturepacker

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

// noise returns a w by h image of pseudo-random pixels. Random alpha keeps
// image/png from writing it as opaque RGB.
func noise(seed int64, w, h int) *image.NRGBA {
	r := rand.New(rand.NewSource(seed))
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	r.Read(m.Pix)
	m.Pix[3] = 0x7f
	return m
}

func writePNG(t *testing.T, file string, m image.Image) {
	t.Helper()
	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func readPNG(t *testing.T, file string) image.Image {
	t.Helper()
	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	m, err := png.Decode(f)
	require.NoError(t, err)
	return m
}

// fixture writes one PNG per image into a new directory, named so that they
// sort in the given order.
func fixture(t *testing.T, images ...image.Image) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	files := make([]string, len(images))
	for i, m := range images {
		files[i] = filepath.Join(dir, string(rune('a'+i))+".png")
		writePNG(t, files[i], m)
	}
	return dir, files
}

func discard() *log.Logger {
	return log.New(io.Discard)
}

func chunk(typ string, data []byte) []byte {
	b := make([]byte, 8, 12+len(data))
	binary.BigEndian.PutUint32(b, uint32(len(data)))
	copy(b[4:], typ)
	b = append(b, data...)
	return binary.BigEndian.AppendUint32(b, crc32.ChecksumIEEE(b[4:]))
}

// rawPNG assembles an 8-bit PNG by hand, for layouts image/png never
// writes. pix holds the unfiltered samples row by row and extra chunks go
// between IHDR and IDAT.
func rawPNG(t *testing.T, w, h int, colorType uint8, pix []byte, extra ...[]byte) []byte {
	t.Helper()

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(h))
	ihdr[8], ihdr[9] = 8, colorType

	stride := len(pix) / h
	var z bytes.Buffer
	zw := zlib.NewWriter(&z)
	for y := 0; y < h; y++ {
		_, err := zw.Write(append([]byte{0}, pix[y*stride:(y+1)*stride]...))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	b := []byte(pngHeader)
	b = append(b, chunk("IHDR", ihdr)...)
	for _, c := range extra {
		b = append(b, c...)
	}
	b = append(b, chunk("IDAT", z.Bytes())...)
	return append(b, chunk("IEND", nil)...)
}

func writeRaw(t *testing.T, file string, b []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(file, b, 0644))
}
