package texturepacker

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const imageExt = ".png"

// FindImages lists the PNG files directly inside dir, sorted by path. Only
// the exact lowercase extension matches, hidden files are ignored and
// subdirectories are not entered.
func (p *Packer) FindImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &Error{Kind: DirectoryUnreadable, Path: dir, Err: err}
	}

	var files []string
	for _, entry := range entries {
		// Ignore any hidden files, a bare ".png" has no extension
		if entry.Name()[0] == '.' {
			continue
		}
		if entry.IsDir() || filepath.Ext(entry.Name()) != imageExt {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)

	return files, nil
}

type job struct {
	index int
	file  string
}

type result struct {
	job
	image *image.NRGBA
	err   error
}

func (p *Packer) feedFiles(ctx context.Context, files []string) (<-chan job, <-chan error) {
	out := make(chan job)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		for i, file := range files {
			select {
			case out <- job{index: i, file: file}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return out, errc
}

func (p *Packer) decodeWorker(ctx context.Context, in <-chan job, out chan<- result) <-chan error {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for j := range in {
			p.logger.Debug("decoding", "path", j.file)
			m, err := decodeFile(j.file)
			select {
			case out <- result{job: j, image: m, err: err}:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()
	return errc
}

// waitForPipeline blocks until every stage has closed its error channel and
// returns the first error seen.
func waitForPipeline(errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Load decodes files and returns the 8-bit RGBA images in the same order.
// Files that fail to decode, or decode to any other pixel format, are logged
// and returned as skipped; they never abort the batch. An error is only
// returned if ctx is cancelled.
func (p *Packer) Load(ctx context.Context, files []string) ([]Raster, []Skipped, error) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	jobs, errc := p.feedFiles(ctx, files)
	errcList := []<-chan error{errc}

	results := make(chan result)
	for i := 0; i < p.workers; i++ {
		errcList = append(errcList, p.decodeWorker(ctx, jobs, results))
	}

	done := make(chan error, 1)
	go func() {
		done <- waitForPipeline(errcList...)
		close(results)
	}()

	decoded := make([]result, len(files))
	for r := range results {
		decoded[r.index] = r
	}

	if err := <-done; err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var rasters []Raster
	var skipped []Skipped
	for _, r := range decoded {
		if r.err != nil {
			p.logger.Error("skipping image", "path", r.file, "err", r.err)
			skipped = append(skipped, Skipped{Path: r.file, Err: r.err})
			continue
		}
		rasters = append(rasters, Raster{Path: r.file, Image: r.image})
	}

	return rasters, skipped, nil
}
