package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"attendeelist/internal/domain"
)

type attendeeFile struct{}

// NewAttendeeFile returns a domain.AttendeeWriter producing a 2-space indented JSON array.
func NewAttendeeFile() domain.AttendeeWriter {
	return &attendeeFile{}
}

func (attendeeFile) Write(path string, attendees []domain.Attendee) (string, error) {
	if attendees == nil {
		attendees = []domain.Attendee{}
	}
	if err := ensureDir(path); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create output file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(attendees); err != nil {
		f.Close()
		return "", fmt.Errorf("encode attendees: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
