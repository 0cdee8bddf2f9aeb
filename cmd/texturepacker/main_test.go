package main

import (
	"bytes"
	"image"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func writeSprite(t *testing.T, file string, seed int64, size int) {
	t.Helper()
	m := image.NewNRGBA(image.Rect(0, 0, size, size))
	rand.New(rand.NewSource(seed)).Read(m.Pix)
	m.Pix[3] = 0

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()

	code := 0
	exiter := cli.OsExiter
	cli.OsExiter = func(c int) { code = c }
	defer func() { cli.OsExiter = exiter }()

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	if err := app.Run(append([]string{"texturepacker"}, args...)); err != nil && code == 0 {
		code = 1
	}
	return stdout.String(), stderr.String(), code
}

func TestPack(t *testing.T) {
	dir := t.TempDir()
	for i, name := range []string{"c.png", "a.png", "b.png", "d.png", "e.png"} {
		writeSprite(t, filepath.Join(dir, name), int64(i), 8)
	}
	output := filepath.Join(t.TempDir(), "sheet.png")

	_, stderr, code := run(t, "--output", output, "-v", dir)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "a.png")

	f, err := os.Open(output)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Width)
	assert.Equal(t, 24, cfg.Height)
}

func TestPackPreview(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "a.png"), 1, 2)
	writeSprite(t, filepath.Join(dir, "b.png"), 2, 2)

	stdout, stderr, code := run(t, "--output", filepath.Join(t.TempDir(), "sheet.png"), "--preview", "--preview-mode", "truecolor", dir)
	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "\x1b[")
}

func TestPackFailure(t *testing.T) {
	dir := t.TempDir()
	writeSprite(t, filepath.Join(dir, "a.png"), 1, 8)
	output := filepath.Join(t.TempDir(), "sheet.png")

	_, stderr, code := run(t, "--output", output, dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "at least")
	assert.NoFileExists(t, output)
}

func TestMissingDirectory(t *testing.T) {
	_, _, code := run(t, "--output", filepath.Join(t.TempDir(), "sheet.png"), filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 1, code)
}

func TestBadPreviewMode(t *testing.T) {
	_, _, code := run(t, "--preview-mode", "bogus", t.TempDir())
	assert.Equal(t, 1, code)
}
