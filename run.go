package texturepacker

import (
	"context"
	"image"

	"github.com/bodgit/texturepacker/grid"
	"github.com/pkg/errors"
)

// Result describes a packed sheet.
type Result struct {
	Sheet   *image.NRGBA
	Spec    grid.Spec
	Rasters []Raster
	Skipped []Skipped
}

// Pack lays rasters out on a square sheet. On failure a *grid.Error is
// returned and logged.
func (p *Packer) Pack(rasters []Raster) (*image.NRGBA, grid.Spec, error) {
	images := make([]*image.NRGBA, len(rasters))
	for i, r := range rasters {
		images[i] = r.Image
	}

	sheet, spec, err := grid.Pack(images, grid.Options{Workers: p.workers})
	if err != nil {
		var e *grid.Error
		if errors.As(err, &e) && e.Reason == grid.DimensionMismatch {
			p.logger.Error("image dimension is not equal to expected", "path", rasters[e.Index].Path, "got", e.Got, "want", e.Want)
		} else {
			p.logger.Error("at least two images are expected", "count", len(rasters))
		}
		return nil, grid.Spec{}, err
	}

	p.logger.Info("packed images", "count", spec.Count, "side", spec.Side, "width", spec.Width(), "height", spec.Height())

	return sheet, spec, nil
}

// Run packs the PNG images found in dir and writes the sheet to output. If
// the Packer has an index configured the layout is recorded there too.
// Nothing is written unless packing succeeds.
func (p *Packer) Run(ctx context.Context, dir, output string) (*Result, error) {
	files, err := p.FindImages(dir)
	if err != nil {
		return nil, err
	}
	p.logger.Info("found images", "dir", dir, "count", len(files))
	for _, file := range files {
		p.logger.Info("found image", "path", file)
	}

	rasters, skipped, err := p.Load(ctx, files)
	if err != nil {
		return nil, err
	}

	sheet, spec, err := p.Pack(rasters)
	if err != nil {
		p.logger.Warn("no images are packed")
		return &Result{Rasters: rasters, Skipped: skipped}, err
	}

	if err := p.Write(output, sheet); err != nil {
		return nil, err
	}

	if p.index != "" {
		if err := p.record(output, spec, rasters); err != nil {
			return nil, err
		}
	}

	return &Result{
		Sheet:   sheet,
		Spec:    spec,
		Rasters: rasters,
		Skipped: skipped,
	}, nil
}

func (p *Packer) record(output string, spec grid.Spec, rasters []Raster) error {
	ix, err := OpenIndex(p.index)
	if err != nil {
		return &Error{Kind: WriteFailure, Path: p.index, Err: err}
	}
	defer ix.Close()

	if err := ix.Record(output, spec, rasters); err != nil {
		return &Error{Kind: WriteFailure, Path: p.index, Err: err}
	}
	p.logger.Debug("recorded layout", "path", p.index, "cells", len(rasters))

	return nil
}
