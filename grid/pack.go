package grid

import (
	"image"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const minImages = 2

// Options tunes Pack. The zero value is ready to use.
type Options struct {
	// Workers is the number of row bands filled concurrently. Values less
	// than one use runtime.NumCPU().
	Workers int
}

// Validate checks that images can be packed and returns the resulting
// layout.
func Validate(images []*image.NRGBA) (Spec, error) {
	if len(images) < minImages {
		return Spec{}, &Error{Reason: InsufficientImages, Count: len(images)}
	}

	want := images[0].Bounds().Size()
	for i, m := range images[1:] {
		if got := m.Bounds().Size(); got != want {
			return Spec{}, &Error{
				Reason: DimensionMismatch,
				Count:  len(images),
				Index:  i + 1,
				Got:    got,
				Want:   want,
			}
		}
	}

	return NewSpec(len(images), want.X, want.Y), nil
}

// Pack composes images into a single square sprite sheet. Images are placed
// in order, row-major. Unused cells are transparent. The images are only
// read and may be shared with other readers while Pack runs.
func Pack(images []*image.NRGBA, opts Options) (*image.NRGBA, Spec, error) {
	spec, err := Validate(images)
	if err != nil {
		return nil, Spec{}, err
	}

	dst := image.NewNRGBA(spec.Bounds())
	if dst.Rect.Empty() {
		return dst, spec, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	height := spec.Height()
	if workers > height {
		workers = height
	}
	band := (height + workers - 1) / workers

	var g errgroup.Group
	for y0 := 0; y0 < height; y0 += band {
		y0, y1 := y0, y0+band
		if y1 > height {
			y1 = height
		}
		g.Go(func() error {
			fill(dst, images, spec, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Spec{}, err
	}

	return dst, spec, nil
}

// fill writes rows [y0, y1) of dst. Every destination pixel depends only on
// the source images so bands never overlap.
func fill(dst *image.NRGBA, images []*image.NRGBA, spec Spec, y0, y1 int) {
	width := spec.Width()
	for y := y0; y < y1; y++ {
		for x := 0; x < width; x++ {
			i := dst.PixOffset(x, y)
			cell, p := spec.Locate(x, y)
			if cell >= spec.Count {
				// Left transparent
				continue
			}
			src := images[cell]
			j := src.PixOffset(src.Rect.Min.X+p.X, src.Rect.Min.Y+p.Y)
			copy(dst.Pix[i:i+4], src.Pix[j:j+4])
		}
	}
}
