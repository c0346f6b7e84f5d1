package app

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nkvv/geophoto/internal/media"
)

// Options represents user-provided parameters for a tagging run.
type Options struct {
	GPXPath    string
	InputPath  string
	Recursive  bool
	Extensions []string
	// OffsetMins is added to every photo capture time before lookup, to
	// correct for a camera clock that was not synced to the GPS device.
	OffsetMins float64
	AutoOffset bool
	Overwrite  bool
	// Timezone is the IANA zone used to interpret zone-less EXIF capture
	// times. Empty means the system local zone.
	Timezone     string
	LogLevel     string
	LogFile      string
	PrintSummary bool
	Progress     func(done, total int)

	location *time.Location
	offset   time.Duration
}

// Validate performs basic validation and assigns defaults where needed.
func (o *Options) Validate() error {
	o.GPXPath = strings.TrimSpace(o.GPXPath)
	o.InputPath = strings.TrimSpace(o.InputPath)
	o.Timezone = strings.TrimSpace(o.Timezone)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)

	if o.GPXPath == "" {
		return fmt.Errorf("GPX path is required")
	}
	if o.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	if math.IsNaN(o.OffsetMins) || math.IsInf(o.OffsetMins, 0) {
		return fmt.Errorf("offset must be a finite number of minutes")
	}
	o.offset = time.Duration(o.OffsetMins * float64(time.Minute))

	o.Extensions = media.NormalizeExtensions(o.Extensions)

	if o.Timezone == "" {
		o.location = time.Local
	} else {
		loc, err := time.LoadLocation(o.Timezone)
		if err != nil {
			return fmt.Errorf("load timezone %q: %w", o.Timezone, err)
		}
		o.location = loc
	}

	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := defaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	return nil
}

// Offset returns the capture-time correction computed by Validate.
func (o *Options) Offset() time.Duration {
	return o.offset
}

// Location returns the timezone resolved by Validate.
func (o *Options) Location() *time.Location {
	return o.location
}

// StripOptions represents user-provided parameters for a GPS strip run.
type StripOptions struct {
	InputPath    string
	Recursive    bool
	Extensions   []string
	LogLevel     string
	LogFile      string
	PrintSummary bool
	Progress     func(done, total int)
}

// Validate performs basic validation and assigns defaults where needed.
func (o *StripOptions) Validate() error {
	o.InputPath = strings.TrimSpace(o.InputPath)
	o.LogLevel = strings.TrimSpace(o.LogLevel)
	o.LogFile = strings.TrimSpace(o.LogFile)

	if o.InputPath == "" {
		return fmt.Errorf("input path is required")
	}
	o.Extensions = media.NormalizeExtensions(o.Extensions)
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFile == "" {
		defaultPath, err := defaultLogPath()
		if err != nil {
			return err
		}
		o.LogFile = defaultPath
	}
	return nil
}

func defaultLogPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("resolve executable path: %w", err)
	}
	dir := filepath.Dir(exe)
	// When running via `go run`, executable resides in temp; prefer current working dir then.
	if strings.HasPrefix(dir, os.TempDir()) {
		cwd, err := os.Getwd()
		if err == nil {
			dir = cwd
		}
	}
	return filepath.Join(dir, "geophoto.log"), nil
}
