package track

import (
	"fmt"
	"time"

	gogpx "github.com/tkrajina/gpxgo/gpx"
)

// Stats summarizes a GPX file for display before tagging.
type Stats struct {
	Points     int
	Start      time.Time
	End        time.Time
	Length2DKm float64
	MovingTime time.Duration
}

// Inspect reads a GPX file and computes display statistics. It uses the full
// GPX model rather than the strict loader, so points the loader would drop
// still count here.
func Inspect(path string) (Stats, error) {
	doc, err := gogpx.ParseFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("parse gpx: %w", err)
	}

	bounds := doc.TimeBounds()
	moving := doc.MovingData()

	return Stats{
		Points:     doc.GetTrackPointsNo(),
		Start:      bounds.StartTime,
		End:        bounds.EndTime,
		Length2DKm: doc.Length2D() / 1000,
		MovingTime: time.Duration(moving.MovingTime) * time.Second,
	}, nil
}

func (s Stats) String() string {
	return fmt.Sprintf("%d points, %s .. %s, %.2f km, moving %s",
		s.Points,
		s.Start.Format(time.RFC3339), s.End.Format(time.RFC3339),
		s.Length2DKm, s.MovingTime)
}
