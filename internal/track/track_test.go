package track

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const gpxHeader = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
<trk><trkseg>
`

const gpxFooter = `</trkseg></trk>
</gpx>
`

func writeGPX(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.gpx")
	if err := os.WriteFile(path, []byte(gpxHeader+body+gpxFooter), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

// twoPointGPX covers t=0 at (0,0) and t=100s at (10,20).
const twoPointGPX = `<trkpt lat="0" lon="0"><time>2023-06-10T12:00:00Z</time></trkpt>
<trkpt lat="10" lon="20"><time>2023-06-10T12:01:40Z</time></trkpt>
`

func TestCoordinateAtInterpolates(t *testing.T) {
	tr, err := Load(writeGPX(t, twoPointGPX), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	base := time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		offset   time.Duration
		lat, lon float64
	}{
		{0, 0, 0},
		{50 * time.Second, 5, 10},
		{100 * time.Second, 10, 20},
		{25 * time.Second, 2.5, 5},
	}
	for _, tc := range tests {
		coord, err := tr.CoordinateAt(base.Add(tc.offset))
		if err != nil {
			t.Fatalf("CoordinateAt(+%s): %v", tc.offset, err)
		}
		if math.Abs(coord.Latitude-tc.lat) > 1e-9 || math.Abs(coord.Longitude-tc.lon) > 1e-9 {
			t.Errorf("CoordinateAt(+%s) = (%v, %v), want (%v, %v)",
				tc.offset, coord.Latitude, coord.Longitude, tc.lat, tc.lon)
		}
	}
}

func TestCoordinateAtOutOfBounds(t *testing.T) {
	tr, err := Load(writeGPX(t, twoPointGPX), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	base := time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{base.Add(-time.Second), base.Add(101 * time.Second)} {
		if _, err := tr.CoordinateAt(ts); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("CoordinateAt(%s) error = %v, want ErrOutOfBounds", ts, err)
		}
	}

	// An offset that moves a late capture time back inside coverage makes it
	// resolvable again.
	late := base.Add(101 * time.Second)
	if _, err := tr.CoordinateAt(late.Add(-2 * time.Second)); err != nil {
		t.Errorf("offset-corrected time still out of bounds: %v", err)
	}
}

func TestCoordinateAtDuplicateTimestamps(t *testing.T) {
	body := `<trkpt lat="1" lon="1"><time>2023-06-10T12:00:00Z</time></trkpt>
<trkpt lat="2" lon="2"><time>2023-06-10T12:00:10Z</time></trkpt>
<trkpt lat="3" lon="3"><time>2023-06-10T12:00:10Z</time></trkpt>
<trkpt lat="4" lon="4"><time>2023-06-10T12:00:20Z</time></trkpt>
`
	tr, err := Load(writeGPX(t, body), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	coord, err := tr.CoordinateAt(time.Date(2023, 6, 10, 12, 0, 10, 0, time.UTC))
	if err != nil {
		t.Fatalf("CoordinateAt: %v", err)
	}
	if coord.Latitude < 1 || coord.Latitude > 4 {
		t.Errorf("coordinate at duplicate timestamp outside sample range: %+v", coord)
	}
}

func TestLoadDropsPointsWithMissingFields(t *testing.T) {
	body := `<trkpt lat="1" lon="1"><time>2023-06-10T12:00:00Z</time></trkpt>
<trkpt lon="2"><time>2023-06-10T12:00:10Z</time></trkpt>
<trkpt lat="3" lon="3"></trkpt>
<trkpt lat="bad" lon="4"><time>2023-06-10T12:00:30Z</time></trkpt>
<trkpt lat="5" lon="5"><time>2023-06-10T12:00:40Z</time></trkpt>
`
	tr, err := Load(writeGPX(t, body), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tr.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (well-formed points retained)", tr.Len())
	}
	if len(tr.Dropped()) != 3 {
		t.Fatalf("Dropped = %d, want 3", len(tr.Dropped()))
	}
	indexes := map[int]bool{}
	for _, d := range tr.Dropped() {
		if d.Reason == "" {
			t.Errorf("dropped point %d has empty reason", d.Index)
		}
		indexes[d.Index] = true
	}
	for _, want := range []int{1, 2, 3} {
		if !indexes[want] {
			t.Errorf("expected point %d to be dropped, got %v", want, tr.Dropped())
		}
	}
}

func TestLoadMalformedFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.gpx")
	if err := os.WriteFile(path, []byte("<gpx><trk><trkseg>"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := Load(path, time.UTC); err == nil {
		t.Fatal("Load of malformed file succeeded")
	}
}

func TestLoadEmptyTrackIsFatal(t *testing.T) {
	if _, err := Load(writeGPX(t, ""), time.UTC); err == nil {
		t.Fatal("Load of empty track succeeded")
	}
}

func TestLoadConvertsIntoLocation(t *testing.T) {
	body := `<trkpt lat="1" lon="1"><time>2023-06-10T12:00:00+02:00</time></trkpt>
<trkpt lat="2" lon="2"><time>2023-06-10T12:10:00+02:00</time></trkpt>
`
	loc := time.FixedZone("UTC-5", -5*3600)
	tr, err := Load(writeGPX(t, body), loc)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	start, _ := tr.Bounds()
	if start.Location() != loc {
		t.Errorf("start location = %v, want %v", start.Location(), loc)
	}
	// Same instant regardless of presentation zone.
	if !start.Equal(time.Date(2023, 6, 10, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %s, want 10:00Z", start.Format(time.RFC3339))
	}
}

func TestBounds(t *testing.T) {
	tr, err := Load(writeGPX(t, twoPointGPX), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	start, end := tr.Bounds()
	if !start.Equal(time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %s", start)
	}
	if !end.Equal(time.Date(2023, 6, 10, 12, 1, 40, 0, time.UTC)) {
		t.Errorf("end = %s", end)
	}
}

func TestNearest(t *testing.T) {
	tr, err := Load(writeGPX(t, twoPointGPX), time.UTC)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	base := time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC)

	coord, at, err := tr.Nearest(base.Add(10 * time.Second))
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if !at.Equal(base) || coord.Latitude != 0 {
		t.Errorf("Nearest(+10s) = %+v at %s, want first point", coord, at)
	}

	coord, at, err = tr.Nearest(base.Add(90 * time.Second))
	if err != nil {
		t.Fatalf("Nearest: %v", err)
	}
	if !at.Equal(base.Add(100*time.Second)) || coord.Latitude != 10 {
		t.Errorf("Nearest(+90s) = %+v at %s, want last point", coord, at)
	}

	// Outside coverage clamps to the closest endpoint.
	if _, at, _ = tr.Nearest(base.Add(-time.Hour)); !at.Equal(base) {
		t.Errorf("Nearest before track = %s, want first point time", at)
	}
}

func TestInspect(t *testing.T) {
	st, err := Inspect(writeGPX(t, twoPointGPX))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if st.Points != 2 {
		t.Errorf("Points = %d, want 2", st.Points)
	}
	if !st.Start.Equal(time.Date(2023, 6, 10, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("Start = %s", st.Start)
	}
	if st.Length2DKm <= 0 {
		t.Errorf("Length2DKm = %v, want > 0", st.Length2DKm)
	}
}
