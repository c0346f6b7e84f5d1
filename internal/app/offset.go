package app

import (
	"fmt"
	"slices"
	"time"

	"github.com/nkvv/geophoto/internal/media"
	"github.com/nkvv/geophoto/internal/track"
)

const maxAutoOffset = 12 * time.Hour

type photoJob struct {
	Path string
	Meta media.Metadata
}

// detectOffset estimates a consistent camera-clock correction from the
// median delta between each capture time and its nearest track sample.
func detectOffset(tr *track.Track, photos []photoJob) (time.Duration, int, error) {
	diffs := make([]time.Duration, 0, len(photos))
	for _, job := range photos {
		_, nearestTime, err := tr.Nearest(job.Meta.CaptureTime)
		if err != nil {
			continue
		}
		if diff := nearestTime.Sub(job.Meta.CaptureTime); absDuration(diff) <= maxAutoOffset {
			diffs = append(diffs, diff)
		}
	}

	if len(diffs) == 0 {
		return 0, 0, fmt.Errorf("unable to detect offset: no usable samples within %s window", maxAutoOffset)
	}

	slices.Sort(diffs)

	mid := len(diffs) / 2
	median := diffs[mid]
	if len(diffs)%2 == 0 {
		median = (diffs[mid-1] + diffs[mid]) / 2
	}

	return median, len(diffs), nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
