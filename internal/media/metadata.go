// Package media handles photo discovery and EXIF metadata IO.
package media

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/evanoberholster/imagemeta"
	"github.com/evanoberholster/imagemeta/exif2"
)

// ErrNoCaptureTime signals that a photo carries no usable capture timestamp.
var ErrNoCaptureTime = errors.New("no capture timestamp in metadata")

// Metadata is the subset of photo metadata required for geotagging.
type Metadata struct {
	CaptureTime time.Time
	CameraMake  string
	CameraModel string
}

// ReadMetadata extracts the capture time and camera details from a photo.
// EXIF capture times carry no zone information, so the wall clock is
// interpreted in loc to obtain an instant comparable with track timestamps.
func ReadMetadata(path string, loc *time.Location) (Metadata, error) {
	if loc == nil {
		loc = time.Local
	}

	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	exif, err := decodeExifSafe(file, path)
	if err != nil {
		return Metadata{}, fmt.Errorf("decode metadata: %w", err)
	}

	ts := exif.DateTimeOriginal()
	if ts.IsZero() {
		ts = exif.CreateDate()
	}
	if ts.IsZero() {
		ts = exif.ModifyDate()
	}
	if ts.IsZero() {
		return Metadata{}, ErrNoCaptureTime
	}

	return Metadata{
		CaptureTime: NormalizeCaptureTime(ts, loc),
		CameraMake:  strings.TrimSpace(exif.Make),
		CameraModel: strings.TrimSpace(exif.Model),
	}, nil
}

// NormalizeCaptureTime rebuilds the wall-clock components of ts in loc,
// discarding whatever zone the decoder attached.
func NormalizeCaptureTime(ts time.Time, loc *time.Location) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), ts.Hour(), ts.Minute(), ts.Second(), ts.Nanosecond(), loc)
}

// decodeExifSafe protects against panics from the decoder on malformed files.
func decodeExifSafe(r io.ReadSeeker, path string) (ex exif2.Exif, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic while decoding %s: %v", path, rec)
		}
	}()

	ex, err = imagemeta.Decode(r)
	return ex, err
}
