package main

import (
	"context"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/pflag"

	"github.com/nkvv/geophoto/internal/app"
	"github.com/nkvv/geophoto/internal/track"
)

func main() {
	var opts app.Options
	var inspect bool
	var noProgress bool

	pflag.StringVarP(&opts.GPXPath, "gpx", "g", "", "Path to GPX track file")
	pflag.StringVarP(&opts.InputPath, "input", "i", "", "Path to a photo file, directory, or glob pattern")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", false, "Scan subdirectories when the input is a folder")
	pflag.Float64Var(&opts.OffsetMins, "offset-mins", 0, "Offset in minutes added to photo capture times to correct the camera clock")
	pflag.BoolVar(&opts.AutoOffset, "auto-offset", false, "Estimate the camera clock offset from the track when offset-mins is zero")
	pflag.BoolVarP(&opts.Overwrite, "overwrite-gps", "w", false, "Replace existing GPS tags in photos")
	pflag.StringSliceVar(&opts.Extensions, "ext", nil, "Photo extension allow-list (default .jpg,.jpeg)")
	pflag.StringVar(&opts.Timezone, "timezone", "", "IANA timezone for interpreting photo capture times (defaults to the system zone)")
	pflag.StringVarP(&opts.LogLevel, "log-level", "l", "info", "Logging level for both file and console outputs")
	pflag.StringVar(&opts.LogFile, "log-file", "", "Optional log file path (defaults to a file next to the binary)")
	pflag.BoolVar(&inspect, "inspect", false, "Print track statistics and exit without tagging")
	pflag.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	pflag.Parse()

	if inspect {
		st, err := track.Inspect(opts.GPXPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "geophoto failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(st)
		return
	}

	opts.PrintSummary = true
	if !noProgress {
		var bar *progressbar.ProgressBar
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "tagging")
			}
			_ = bar.Set(done)
		}
	}

	ctx := context.Background()
	if _, err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "geophoto failed: %v\n", err)
		os.Exit(1)
	}
}
