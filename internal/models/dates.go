package models

import (
	"fmt"
	"time"
)

// ParseDate parses an ISO-8601 timestamp from the remote source and
// normalizes it to a naive UTC value: the instant is converted to UTC and the
// offset discarded. All stored timestamps are implicitly UTC. An empty string
// maps to nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", s, err)
	}
	u := t.UTC()
	return &u, nil
}
