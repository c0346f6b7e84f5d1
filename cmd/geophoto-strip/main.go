package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"github.com/nkvv/geophoto/internal/app"
)

func main() {
	var opts app.StripOptions
	var noProgress bool

	pflag.StringVarP(&opts.InputPath, "input", "i", "", "Path to a photo file, directory, or glob pattern")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", false, "Scan subdirectories when the input is a folder")
	pflag.StringSliceVar(&opts.Extensions, "ext", nil, "Photo extension allow-list (default .jpg,.jpeg)")
	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for both file and console outputs")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")
	pflag.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	pflag.Parse()

	opts.PrintSummary = true
	if !noProgress {
		var bar *progressbar.ProgressBar
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "stripping")
			}
			_ = bar.Set(done)
		}
	}

	ctx := context.Background()
	if _, err := app.Strip(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "geophoto-strip failed: %v\n", err)
		os.Exit(1)
	}
}
