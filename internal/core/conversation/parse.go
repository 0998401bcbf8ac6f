package conversation

import (
	"fmt"
	"time"
)

// recordLayouts covers the date forms seen in diagram_9 payloads. The
// upstream strings carry no timezone marker, so everything is interpreted
// as wall-clock time in the caller's configured location.
var recordLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339,
}

// ParseRecordTime parses an upstream record date string in loc.
func ParseRecordTime(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range recordLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized record date %q", s)
}
