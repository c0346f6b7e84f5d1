package app

import (
	"strings"
	"testing"
)

func TestSummaryCounters(t *testing.T) {
	sum := &Summary{}
	sum.add("a.jpg", StatusTagged, "lat=1 lon=2")
	sum.add("b.txt", StatusSkipped, "extension not allowed")
	sum.add("c.jpg", StatusNoTimestamp, "no capture timestamp")
	sum.add("d.jpg", StatusHasLocation, "location already present")
	sum.add("e.jpg", StatusOutOfBounds, "outside track")
	sum.add("f.jpg", StatusFailed, "boom")

	if sum.Tagged != 1 || sum.Skipped != 1 || sum.NoTimestamp != 1 ||
		sum.HasLocation != 1 || sum.OutOfBounds != 1 || sum.Failed != 1 {
		t.Fatalf("counters = %+v", sum)
	}
	if len(sum.Files) != 6 {
		t.Fatalf("results = %d, want 6", len(sum.Files))
	}

	line := sum.Line()
	for _, want := range []string{"tagged=1", "no_timestamp=1", "has_location=1", "out_of_bounds=1", "failed=1"} {
		if !strings.Contains(line, want) {
			t.Errorf("summary line %q missing %q", line, want)
		}
	}
}
