// Package app orchestrates the geotagging workflow: load a GPX track,
// collect candidate photos, and tag each one by interpolating its position
// at the offset-adjusted capture time.
package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nir0k/logger"

	"github.com/nkvv/geophoto/internal/media"
	"github.com/nkvv/geophoto/internal/track"
)

// metadataReader matches media.ReadMetadata.
type metadataReader func(path string, loc *time.Location) (media.Metadata, error)

// gpsTagger is the part of media.GPSTagger the tagging loop depends on.
type gpsTagger interface {
	HasLocation(path string) (bool, error)
	Write(path string, lat, lon float64) error
	Strip(path string) (bool, error)
}

type runLog struct {
	infof  func(format string, args ...interface{})
	warnf  func(format string, args ...interface{})
	errorf func(format string, args ...interface{})
}

// Run is the main entry point for the CLI workflow.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	return run(ctx, opts, nil)
}

// RunWithLogger mirrors the console log into an in-memory buffer.
func RunWithLogger(ctx context.Context, opts Options, buf *bytes.Buffer) (*Summary, error) {
	return run(ctx, opts, buf)
}

func run(ctx context.Context, opts Options, buf *bytes.Buffer) (*Summary, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	logInstance, err := newLogger(opts.LogLevel, opts.LogFile, buf)
	if err != nil {
		return nil, err
	}
	lg := runLog{
		infof:  logInstance.Infof,
		warnf:  logInstance.Warningf,
		errorf: logInstance.Errorf,
	}

	lg.infof("Starting geophoto with GPX=%s input=%s recursive=%t offset=%.2fm autoOffset=%t overwrite=%t timezone=%s",
		opts.GPXPath, opts.InputPath, opts.Recursive, opts.OffsetMins, opts.AutoOffset, opts.Overwrite, opts.Timezone)

	tr, err := track.Load(opts.GPXPath, opts.location)
	if err != nil {
		return nil, err
	}
	for _, d := range tr.Dropped() {
		lg.warnf("Skipping track point #%d: %s", d.Index, d.Reason)
	}
	start, end := tr.Bounds()
	lg.infof("Track loaded with %d points (%s .. %s), %d dropped",
		tr.Len(), start.Format(time.RFC3339), end.Format(time.RFC3339), len(tr.Dropped()))

	files, err := media.CollectFiles(opts.InputPath, opts.Recursive)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no files found to process")
	}

	sum := &Summary{}
	jobs, err := collectJobs(ctx, files, opts, media.ReadMetadata, sum, lg)
	if err != nil {
		return nil, err
	}

	if len(jobs) == 0 {
		line := sum.Line()
		if opts.PrintSummary {
			fmt.Println(line)
		}
		lg.infof("No taggable photos found. %s", line)
		return sum, nil
	}

	tagger, err := media.NewGPSTagger()
	if err != nil {
		return nil, err
	}
	defer tagger.Close()

	effectiveOffset := opts.offset
	if effectiveOffset == 0 && opts.AutoOffset {
		offset, samples, err := detectOffset(tr, jobs)
		if err != nil {
			lg.warnf("Auto offset detection failed, using 0s: %v", err)
		} else {
			effectiveOffset = offset
			lg.infof("Auto-detected time offset: %s using %d samples", effectiveOffset, samples)
		}
	}

	if err := tagPhotos(ctx, tr, jobs, tagger, opts, effectiveOffset, sum, lg); err != nil {
		return nil, err
	}

	line := sum.Line()
	if opts.PrintSummary {
		fmt.Println(line)
	}
	lg.infof("%s", line)
	return sum, nil
}

// collectJobs filters candidates by extension and reads their capture
// timestamps. Photos without a usable timestamp stay in the summary and are
// not returned as jobs.
func collectJobs(ctx context.Context, files []string, opts Options, read metadataReader, sum *Summary, lg runLog) ([]photoJob, error) {
	jobs := make([]photoJob, 0, len(files))

	for _, path := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !media.SupportedPhoto(path, opts.Extensions) {
			lg.warnf("Skipping %s: extension not in allow-list %v", path, opts.Extensions)
			sum.add(path, StatusSkipped, "extension not allowed")
			continue
		}

		meta, err := read(path, opts.location)
		if errors.Is(err, media.ErrNoCaptureTime) {
			lg.warnf("Skipping %s: no capture timestamp available", path)
			sum.add(path, StatusNoTimestamp, "no capture timestamp")
			continue
		}
		if err != nil {
			lg.warnf("Failed to read metadata for %s: %v", path, err)
			sum.add(path, StatusMetaError, err.Error())
			continue
		}

		jobs = append(jobs, photoJob{Path: path, Meta: meta})
	}

	return jobs, nil
}

// tagPhotos applies the per-photo policy: existing-location check, bounds
// check on the offset-adjusted capture time, interpolation, and write-back.
func tagPhotos(ctx context.Context, tr *track.Track, jobs []photoJob, tagger gpsTagger, opts Options, offset time.Duration, sum *Summary, lg runLog) error {
	start, end := tr.Bounds()

	for i, job := range jobs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if opts.Progress != nil {
			opts.Progress(i+1, len(jobs))
		}

		hasLocation, err := tagger.HasLocation(job.Path)
		if err != nil {
			lg.warnf("Failed to read GPS tags for %s: %v", job.Path, err)
			sum.add(job.Path, StatusMetaError, err.Error())
			continue
		}
		if hasLocation && !opts.Overwrite {
			lg.infof("Skipping %s: location already present (use --overwrite-gps to replace)", job.Path)
			sum.add(job.Path, StatusHasLocation, "location already present")
			continue
		}

		adjusted := job.Meta.CaptureTime.Add(offset)
		coord, err := tr.CoordinateAt(adjusted)
		if errors.Is(err, track.ErrOutOfBounds) {
			lg.infof("Skipping %s: capture time %s outside track coverage %s .. %s",
				job.Path, adjusted.Format(time.RFC3339), start.Format(time.RFC3339), end.Format(time.RFC3339))
			sum.add(job.Path, StatusOutOfBounds, fmt.Sprintf("capture time %s outside track", adjusted.Format(time.RFC3339)))
			continue
		}
		if err != nil {
			lg.errorf("No position for %s (%s): %v", job.Path, adjusted.Format(time.RFC3339), err)
			sum.add(job.Path, StatusFailed, err.Error())
			continue
		}

		if hasLocation && opts.Overwrite {
			if _, err := tagger.Strip(job.Path); err != nil {
				// Reported but not fatal; the write below replaces the tags.
				lg.warnf("Could not remove existing location tags on %s: %v", job.Path, err)
			}
		}

		if err := tagger.Write(job.Path, coord.Latitude, coord.Longitude); err != nil {
			lg.errorf("Failed to write location for %s: %v", job.Path, err)
			sum.add(job.Path, StatusFailed, err.Error())
			continue
		}

		lg.infof("Tagged %s (%s %s, %s) [lat=%.6f lon=%.6f]",
			job.Path, job.Meta.CameraMake, job.Meta.CameraModel,
			adjusted.Format(time.RFC3339), coord.Latitude, coord.Longitude)
		sum.add(job.Path, StatusTagged, fmt.Sprintf("lat=%.6f lon=%.6f", coord.Latitude, coord.Longitude))
	}

	return nil
}

func newLogger(level, file string, buf *bytes.Buffer) (*logger.Logger, error) {
	cfg := logger.LogConfig{
		FilePath:       file,
		Format:         "standard",
		FileLevel:      level,
		ConsoleLevel:   level,
		ConsoleOutput:  buf != nil,
		EnableRotation: true,
		RotationConfig: logger.RotationConfig{
			MaxSize:    25,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		},
	}
	logInstance, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	if buf != nil {
		logInstance.Config.ConsoleOutput = true
		logInstance.ConsoleLogger = log.New(buf, "", 0)
	}
	return logInstance, nil
}
