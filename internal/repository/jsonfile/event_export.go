package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"attendeelist/internal/domain"
)

type eventExportReader struct{}

// NewEventExportReader returns a domain.EventExportReader backed by a local JSON file.
func NewEventExportReader() domain.EventExportReader {
	return &eventExportReader{}
}

func (r *eventExportReader) Read(path string) (*domain.EventExport, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file '%s' not found", domain.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("read event export: %w", err)
	}
	var export domain.EventExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return nil, fmt.Errorf("%w: failed to parse JSON in '%s': %v", domain.ErrMalformedInput, path, err)
	}
	return &export, nil
}
