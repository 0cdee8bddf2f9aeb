package main

import (
	"context"
	"io"
	"os"
	"runtime"

	"github.com/bodgit/texturepacker"
	"github.com/bodgit/texturepacker/preview"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()

	app.Name = "texturepacker"
	app.Usage = "Pack a directory of equally sized PNG images into a square sprite sheet"
	app.Version = "1.0.0"
	app.ArgsUsage = "DIRECTORY"
	app.Writer = stdout
	app.ErrWriter = stderr

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			EnvVars: []string{"TEXTUREPACKER_OUTPUT"},
			Value:   texturepacker.DefaultOutput,
			Usage:   "path of the sprite sheet to write",
		},
		&cli.StringFlag{
			Name:    "index",
			EnvVars: []string{"TEXTUREPACKER_INDEX"},
			Usage:   "record the sheet layout in this sqlite database",
		},
		&cli.IntFlag{
			Name:  "workers",
			Value: runtime.NumCPU(),
			Usage: "number of images decoded and packed concurrently",
		},
		&cli.BoolFlag{
			Name:  "preview",
			Usage: "show the sprite sheet on the terminal",
		},
		&cli.StringFlag{
			Name:  "preview-mode",
			Value: preview.Auto.String(),
			Usage: "one of auto, kitty, iterm, sixel, truecolor or 256color",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowAppHelpAndExit(c, 1)
		}

		logger := newLogger(stderr, c.Bool("verbose"))

		options := []texturepacker.Option{
			texturepacker.WithWorkers(c.Int("workers")),
		}
		if c.String("index") != "" {
			options = append(options, texturepacker.WithIndex(c.String("index")))
		}

		mode, err := preview.ParseMode(c.String("preview-mode"))
		if err != nil {
			return cli.Exit(err, 1)
		}

		p := texturepacker.New(logger, options...)

		// The directory is the last argument
		result, err := p.Run(c.Context, c.Args().Get(c.NArg()-1), c.String("output"))
		if err != nil {
			return cli.Exit(err, 1)
		}

		if c.Bool("preview") {
			if err := preview.Print(stdout, result.Sheet, preview.Options{Mode: mode}); err != nil {
				logger.Warn("preview failed", "err", err)
			}
		}

		return nil
	}

	return app
}

func main() {
	app := newApp(os.Stdout, os.Stderr)
	if err := app.RunContext(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
