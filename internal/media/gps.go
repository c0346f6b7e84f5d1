package media

import (
	"fmt"

	"github.com/barasher/go-exiftool"

	"github.com/nkvv/geophoto/internal/geo"
)

// gpsTags are the position tags consulted for presence and cleared on strip.
var gpsTags = []string{
	"GPSLatitude",
	"GPSLatitudeRef",
	"GPSLongitude",
	"GPSLongitudeRef",
}

// GPSTagger reads and writes GPS EXIF tags through one long-lived exiftool
// session. The underlying tool rewrites the file's full metadata block on
// write, so a photo is never left with a partially updated tag set.
type GPSTagger struct {
	et *exiftool.Exiftool
}

// NewGPSTagger starts the exiftool session. Callers must Close it.
func NewGPSTagger() (*GPSTagger, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("start exiftool: %w", err)
	}
	return &GPSTagger{et: et}, nil
}

// Close terminates the exiftool session.
func (g *GPSTagger) Close() error {
	return g.et.Close()
}

// HasLocation reports whether any GPS position or reference tag is present.
func (g *GPSTagger) HasLocation(path string) (bool, error) {
	meta, err := g.extract(path)
	if err != nil {
		return false, err
	}
	for _, tag := range gpsTags {
		if _, ok := meta.Fields[tag]; ok {
			return true, nil
		}
	}
	return false, nil
}

// Write stores latitude and longitude as degrees/minutes/seconds values
// together with their hemisphere reference tags ("N"/"S", "E"/"W").
func (g *GPSTagger) Write(path string, lat, lon float64) error {
	latVal, latRef := geo.FormatDMS(lat, "N", "S")
	lonVal, lonRef := geo.FormatDMS(lon, "E", "W")

	meta := exiftool.EmptyFileMetadata()
	meta.File = path
	meta.SetString("GPSLatitude", latVal)
	meta.SetString("GPSLatitudeRef", latRef)
	meta.SetString("GPSLongitude", lonVal)
	meta.SetString("GPSLongitudeRef", lonRef)

	return g.write(meta)
}

// Strip removes the GPS position and reference tags. It returns false when
// the photo carried none.
func (g *GPSTagger) Strip(path string) (bool, error) {
	present, err := g.HasLocation(path)
	if err != nil {
		return false, err
	}
	if !present {
		return false, nil
	}

	meta := exiftool.EmptyFileMetadata()
	meta.File = path
	// Writing an empty value deletes the tag.
	for _, tag := range gpsTags {
		meta.SetString(tag, "")
	}

	if err := g.write(meta); err != nil {
		return false, err
	}
	return true, nil
}

func (g *GPSTagger) extract(path string) (exiftool.FileMetadata, error) {
	metas := g.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return exiftool.FileMetadata{}, fmt.Errorf("no metadata returned for %s", path)
	}
	if metas[0].Err != nil {
		return exiftool.FileMetadata{}, fmt.Errorf("read metadata: %w", metas[0].Err)
	}
	return metas[0], nil
}

func (g *GPSTagger) write(meta exiftool.FileMetadata) error {
	metas := []exiftool.FileMetadata{meta}
	g.et.WriteMetadata(metas)
	if metas[0].Err != nil {
		return fmt.Errorf("write metadata: %w", metas[0].Err)
	}
	return nil
}
