package models

import (
	"database/sql/driver"
	"fmt"
)

// VideoStatus mirrors the asset provider's processing state.
type VideoStatus uint8

const (
	StatusProcessing VideoStatus = iota + 1
	StatusReady
	StatusFailed
)

var statusNames = map[VideoStatus]string{
	StatusProcessing: "processing",
	StatusReady:      "ready",
	StatusFailed:     "failed",
}

// ParseStatus accepts only the exact lower-case names.
func ParseStatus(s string) (VideoStatus, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, fmt.Errorf("unknown video status %q", s)
}

func (s VideoStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("VideoStatus(%d)", uint8(s))
}

func (s VideoStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

func (s VideoStatus) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid video status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *VideoStatus) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Scan reads the TEXT column; unknown values are an error.
func (s *VideoStatus) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return s.UnmarshalText([]byte(v))
	case []byte:
		return s.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into VideoStatus", src)
	}
}

func (s VideoStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid video status %d", uint8(s))
	}
	return s.String(), nil
}
