// Package track loads GPX track logs and answers position queries by
// piecewise-linear interpolation over the recorded samples.
package track

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrOutOfBounds signals that the requested time is outside track coverage.
var ErrOutOfBounds = errors.New("timestamp outside track bounds")

// Point is one recorded (time, latitude, longitude) sample.
type Point struct {
	Time      time.Time
	Latitude  float64
	Longitude float64
}

// Coordinate represents an interpolated location.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// DroppedPoint reports a trkpt that was skipped during loading because a
// required field was missing or unparsable.
type DroppedPoint struct {
	Index  int
	Reason string
}

// Track keeps the usable samples from one GPX file. Samples stay in file
// order, which the recording device is trusted to keep chronological; they
// are not re-sorted.
type Track struct {
	points  []Point
	dropped []DroppedPoint
}

type gpxDocument struct {
	Tracks []gpxTrack `xml:"trk"`
}

type gpxTrack struct {
	Segments []gpxSegment `xml:"trkseg"`
}

type gpxSegment struct {
	Points []gpxPoint `xml:"trkpt"`
}

// Attributes are decoded as strings so that a missing lat/lon can be told
// apart from a legitimate 0.0.
type gpxPoint struct {
	Lat  string `xml:"lat,attr"`
	Lon  string `xml:"lon,attr"`
	Time string `xml:"time"`
}

// Load parses a GPX file into a Track. Point timestamps carry a zone offset
// and are converted into loc, the same location used to interpret the
// zone-less photo capture times they are compared against. A point missing
// its timestamp or a coordinate is dropped and recorded, not fatal; a file
// that is not well-formed XML is.
func Load(path string, loc *time.Location) (*Track, error) {
	if loc == nil {
		loc = time.Local
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gpx: %w", err)
	}
	defer file.Close()

	var doc gpxDocument
	if err := xml.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse gpx: %w", err)
	}

	tr := &Track{}
	idx := 0
	for _, t := range doc.Tracks {
		for _, seg := range t.Segments {
			for _, raw := range seg.Points {
				pt, reason := convertPoint(raw, loc)
				if reason != "" {
					tr.dropped = append(tr.dropped, DroppedPoint{Index: idx, Reason: reason})
				} else {
					tr.points = append(tr.points, pt)
				}
				idx++
			}
		}
	}

	if len(tr.points) == 0 {
		return nil, fmt.Errorf("gpx file contains no usable track points")
	}
	return tr, nil
}

func convertPoint(raw gpxPoint, loc *time.Location) (Point, string) {
	latStr := strings.TrimSpace(raw.Lat)
	lonStr := strings.TrimSpace(raw.Lon)
	timeStr := strings.TrimSpace(raw.Time)

	if latStr == "" {
		return Point{}, "missing lat attribute"
	}
	if lonStr == "" {
		return Point{}, "missing lon attribute"
	}
	if timeStr == "" {
		return Point{}, "missing time element"
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return Point{}, fmt.Sprintf("invalid lat %q", latStr)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return Point{}, fmt.Sprintf("invalid lon %q", lonStr)
	}
	ts, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return Point{}, fmt.Sprintf("invalid time %q", timeStr)
	}

	return Point{Time: ts.In(loc), Latitude: lat, Longitude: lon}, ""
}

// CoordinateAt returns the interpolated coordinate for the provided time.
// Latitude and longitude are interpolated independently between the two
// bracketing samples; values at the endpoints are clamped, never
// extrapolated, and times outside coverage return ErrOutOfBounds.
func (tr *Track) CoordinateAt(ts time.Time) (Coordinate, error) {
	if len(tr.points) == 0 {
		return Coordinate{}, fmt.Errorf("no track points loaded")
	}

	first, last := tr.points[0], tr.points[len(tr.points)-1]
	if ts.Before(first.Time) || ts.After(last.Time) {
		return Coordinate{}, fmt.Errorf("%w: %s not in %s .. %s",
			ErrOutOfBounds,
			ts.Format(time.RFC3339), first.Time.Format(time.RFC3339), last.Time.Format(time.RFC3339))
	}

	idx := sort.Search(len(tr.points), func(i int) bool {
		return !tr.points[i].Time.Before(ts)
	})
	if idx == len(tr.points) {
		return coordOf(last), nil
	}
	if tr.points[idx].Time.Equal(ts) || idx == 0 {
		return coordOf(tr.points[idx]), nil
	}

	prev := tr.points[idx-1]
	next := tr.points[idx]

	total := next.Time.Sub(prev.Time).Seconds()
	if total <= 0 {
		return coordOf(prev), nil
	}

	progress := ts.Sub(prev.Time).Seconds() / total
	return Coordinate{
		Latitude:  prev.Latitude + progress*(next.Latitude-prev.Latitude),
		Longitude: prev.Longitude + progress*(next.Longitude-prev.Longitude),
	}, nil
}

// Nearest returns the sample closest in time to ts and its timestamp.
func (tr *Track) Nearest(ts time.Time) (Coordinate, time.Time, error) {
	if len(tr.points) == 0 {
		return Coordinate{}, time.Time{}, fmt.Errorf("no track points loaded")
	}

	first, last := tr.points[0], tr.points[len(tr.points)-1]
	if ts.Before(first.Time) {
		return coordOf(first), first.Time, nil
	}
	if ts.After(last.Time) {
		return coordOf(last), last.Time, nil
	}

	idx := sort.Search(len(tr.points), func(i int) bool {
		return !tr.points[i].Time.Before(ts)
	})
	if idx == len(tr.points) {
		return coordOf(last), last.Time, nil
	}
	if tr.points[idx].Time.Equal(ts) || idx == 0 {
		return coordOf(tr.points[idx]), tr.points[idx].Time, nil
	}

	prev := tr.points[idx-1]
	next := tr.points[idx]
	if ts.Sub(prev.Time) <= next.Time.Sub(ts) {
		return coordOf(prev), prev.Time, nil
	}
	return coordOf(next), next.Time, nil
}

// Bounds returns the first and last timestamps in the track.
func (tr *Track) Bounds() (time.Time, time.Time) {
	if len(tr.points) == 0 {
		return time.Time{}, time.Time{}
	}
	return tr.points[0].Time, tr.points[len(tr.points)-1].Time
}

// Len returns the number of usable points.
func (tr *Track) Len() int {
	return len(tr.points)
}

// Dropped returns the points skipped during loading.
func (tr *Track) Dropped() []DroppedPoint {
	return tr.dropped
}

func coordOf(p Point) Coordinate {
	return Coordinate{Latitude: p.Latitude, Longitude: p.Longitude}
}
