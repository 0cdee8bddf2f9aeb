package texturepacker

import (
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// translucent reports itself as never opaque so image/png always writes an
// alpha channel.
type translucent struct {
	image.Image
}

func (translucent) Opaque() bool {
	return false
}

// Write encodes m as a PNG at file. The image is written to a temporary file
// in the same directory first and renamed into place, so an existing file is
// never left truncated. The PNG always carries an alpha channel, even when
// every pixel is opaque.
func (p *Packer) Write(file string, m image.Image) error {
	f, err := os.CreateTemp(filepath.Dir(file), ".texturepacker-*.png")
	if err != nil {
		return &Error{Kind: WriteFailure, Path: file, Err: errors.Wrap(err, "create temporary file")}
	}
	tmp := f.Name()

	if err := png.Encode(f, translucent{m}); err != nil {
		f.Close()
		os.Remove(tmp)
		return &Error{Kind: WriteFailure, Path: file, Err: errors.Wrap(err, "encode png")}
	}

	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &Error{Kind: WriteFailure, Path: file, Err: errors.Wrap(err, "close temporary file")}
	}

	// CreateTemp uses 0600
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return &Error{Kind: WriteFailure, Path: file, Err: errors.Wrap(err, "chmod")}
	}

	if err := os.Rename(tmp, file); err != nil {
		os.Remove(tmp)
		return &Error{Kind: WriteFailure, Path: file, Err: errors.Wrap(err, "rename")}
	}

	p.logger.Debug("wrote sheet", "path", file)

	return nil
}
