package app

import "fmt"

// Photo outcome statuses reported in FileResult.Status.
const (
	StatusTagged      = "tagged"
	StatusSkipped     = "skipped" // extension filter
	StatusNoTimestamp = "no_timestamp"
	StatusHasLocation = "has_location"
	StatusOutOfBounds = "out_of_bounds"
	StatusMetaError   = "meta_error"
	StatusFailed      = "failed"
	StatusStripped    = "stripped"
	StatusClean       = "clean" // strip run, no GPS tags present
)

// FileResult describes the outcome for a single photo.
type FileResult struct {
	Path    string `json:"path"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Summary aggregates per-photo outcomes of a run.
type Summary struct {
	Tagged      int          `json:"tagged"`
	Skipped     int          `json:"skipped"`
	NoTimestamp int          `json:"noTimestamp"`
	HasLocation int          `json:"hasLocation"`
	OutOfBounds int          `json:"outOfBounds"`
	MetaError   int          `json:"metaError"`
	Failed      int          `json:"failed"`
	Stripped    int          `json:"stripped"`
	Clean       int          `json:"clean"`
	Files       []FileResult `json:"files"`
}

func (s *Summary) add(path, status, message string) {
	switch status {
	case StatusTagged:
		s.Tagged++
	case StatusSkipped:
		s.Skipped++
	case StatusNoTimestamp:
		s.NoTimestamp++
	case StatusHasLocation:
		s.HasLocation++
	case StatusOutOfBounds:
		s.OutOfBounds++
	case StatusMetaError:
		s.MetaError++
	case StatusFailed:
		s.Failed++
	case StatusStripped:
		s.Stripped++
	case StatusClean:
		s.Clean++
	}
	s.Files = append(s.Files, FileResult{Path: path, Status: status, Message: message})
}

// Line renders the one-line run summary used for console and log output.
func (s *Summary) Line() string {
	return fmt.Sprintf("Finished. tagged=%d skipped=%d no_timestamp=%d has_location=%d out_of_bounds=%d meta_errors=%d failed=%d",
		s.Tagged, s.Skipped, s.NoTimestamp, s.HasLocation, s.OutOfBounds, s.MetaError, s.Failed)
}

// StripLine renders the summary line for a strip run.
func (s *Summary) StripLine() string {
	return fmt.Sprintf("Finished. stripped=%d clean=%d skipped=%d failed=%d",
		s.Stripped, s.Clean, s.Skipped, s.Failed)
}
