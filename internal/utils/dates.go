package utils

import "time"

// ParseDate turns an optional "YYYY-MM-DD" string into a UTC midnight time.
func ParseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, *s, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate is the inverse of ParseDate; nil stays nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}
