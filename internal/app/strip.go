package app

import (
	"context"
	"fmt"

	"github.com/nkvv/geophoto/internal/media"
)

// Strip removes GPS position tags from every photo under the input path.
// Useful for resetting a collection before re-tagging with a corrected
// offset or a different track.
func Strip(ctx context.Context, opts StripOptions) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logInstance, err := newLogger(opts.LogLevel, opts.LogFile, nil)
	if err != nil {
		return nil, err
	}

	infof := logInstance.Infof
	warnf := logInstance.Warningf
	errorf := logInstance.Errorf

	infof("Starting GPS strip with input=%s recursive=%t", opts.InputPath, opts.Recursive)

	files, err := media.CollectFiles(opts.InputPath, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to process")
	}

	var candidates []string
	sum := &Summary{}
	for _, path := range files {
		if !media.SupportedPhoto(path, opts.Extensions) {
			warnf("Skipping %s: extension not in allow-list %v", path, opts.Extensions)
			sum.add(path, StatusSkipped, "extension not allowed")
			continue
		}
		candidates = append(candidates, path)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("no photos to process")
	}

	tagger, err := media.NewGPSTagger()
	if err != nil {
		return nil, err
	}
	defer tagger.Close()

	for i, path := range candidates {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(candidates))
		}

		removed, err := tagger.Strip(path)
		if err != nil {
			errorf("Failed to strip GPS tags from %s: %v", path, err)
			sum.add(path, StatusFailed, err.Error())
			continue
		}
		if !removed {
			infof("No GPS tags on %s", path)
			sum.add(path, StatusClean, "no gps tags present")
			continue
		}
		infof("Removed GPS tags from %s", path)
		sum.add(path, StatusStripped, "gps tags removed")
	}

	line := sum.StripLine()
	if opts.PrintSummary {
		fmt.Println(line)
	}
	infof("%s", line)
	return sum, nil
}
