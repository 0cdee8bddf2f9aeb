/*
Package texturepacker combines a directory of equally sized PNG images into a
single square sprite sheet.

Images are discovered and sorted by path, decoded in parallel, validated and
laid out by package grid, then written back out as a PNG. Files that cannot be
decoded as 8-bit RGBA are skipped and reported rather than failing the whole
run.
*/
package texturepacker

import (
	"runtime"

	"github.com/charmbracelet/log"
)

// DefaultOutput is the file name written by the command line tool.
const DefaultOutput = "result.png"

// Packer runs the load, pack and write stages.
type Packer struct {
	logger  *log.Logger
	workers int
	index   string
}

// Option configures a Packer.
type Option func(*Packer)

// WithWorkers sets the number of goroutines used to decode and pack images.
// Values less than one use runtime.NumCPU().
func WithWorkers(n int) Option {
	return func(p *Packer) {
		if n < 1 {
			n = runtime.NumCPU()
		}
		p.workers = n
	}
}

// WithIndex records the layout of each packed sheet in the sqlite database
// at file.
func WithIndex(file string) Option {
	return func(p *Packer) {
		p.index = file
	}
}

// New returns a Packer that reports diagnostics to logger.
func New(logger *log.Logger, options ...Option) *Packer {
	p := &Packer{
		logger:  logger,
		workers: runtime.NumCPU(),
	}
	for _, o := range options {
		o(p)
	}
	return p
}
