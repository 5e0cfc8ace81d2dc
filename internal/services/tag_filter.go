package services

import (
	"fmt"
	"log/slog"

	"attendeelist/internal/domain"
)

// TagFilterService collects event api_ids from an export by tag name.
type TagFilterService struct {
	reader domain.EventExportReader
	logger *slog.Logger
}

// NewTagFilterService creates a TagFilterService reading exports through reader.
func NewTagFilterService(reader domain.EventExportReader, logger *slog.Logger) *TagFilterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TagFilterService{reader: reader, logger: logger}
}

// ExtractAPIIDs loads the export at path and returns the api_ids of entries tagged tag.
// Reader errors (missing file, malformed JSON) are returned and are fatal for the run.
func (s *TagFilterService) ExtractAPIIDs(path, tag string) ([]string, domain.FilterStats, error) {
	s.logger.Info("loading event export", "path", path)
	export, err := s.reader.Read(path)
	if err != nil {
		return nil, domain.FilterStats{}, fmt.Errorf("load event export: %w", err)
	}
	s.logger.Info("loaded event export", "entries", len(export.Entries))

	ids, stats := FilterAPIIDs(export, tag, s.logger)
	return ids, stats, nil
}

// FilterAPIIDs returns, in input order and without dedup, the api_id of every
// entry carrying tag. Tagged entries without an api_id are logged and counted.
func FilterAPIIDs(export *domain.EventExport, tag string, logger *slog.Logger) ([]string, domain.FilterStats) {
	stats := domain.FilterStats{Total: len(export.Entries)}
	ids := []string{}

	for i, entry := range export.Entries {
		n := i + 1
		if !entry.HasTag(tag) {
			logger.Info("tag not found on entry", "entry", n, "tag", tag, "tags", entry.TagNames())
			continue
		}
		stats.Matched++

		id := entry.APIID()
		if id == "" {
			stats.MissingAPIID++
			logger.Warn("api_id missing in tagged event", "entry", n, "tag", tag)
			continue
		}
		ids = append(ids, id)
		logger.Info("found api_id", "entry", n, "api_id", id)
	}
	stats.Collected = len(ids)

	logger.Info("tag filter finished",
		"tag", tag,
		"entries", stats.Total,
		"matched", stats.Matched,
		"missing_api_id", stats.MissingAPIID,
		"collected", stats.Collected,
	)
	return ids, stats
}
