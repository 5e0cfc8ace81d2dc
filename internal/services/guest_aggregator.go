package services

import (
	"context"
	"log/slog"

	"attendeelist/internal/domain"
)

// GuestAggregatorService fetches guests per event and folds them into a
// UniqueGuests map keyed by email.
type GuestAggregatorService struct {
	fetcher domain.GuestFetcher
	hasher  domain.EmailHasher
	logger  *slog.Logger
}

// AggregatorOption configures a GuestAggregatorService.
type AggregatorOption func(*GuestAggregatorService)

// WithEmailHasher fills Attendee.EmailHash using h.
func WithEmailHasher(h domain.EmailHasher) AggregatorOption {
	return func(s *GuestAggregatorService) { s.hasher = h }
}

// NewGuestAggregatorService creates a GuestAggregatorService using fetcher for the guest-list API.
func NewGuestAggregatorService(fetcher domain.GuestFetcher, logger *slog.Logger, opts ...AggregatorOption) *GuestAggregatorService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &GuestAggregatorService{fetcher: fetcher, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Aggregate fetches guests for each id in order. A failed fetch is logged and
// counts as zero guests; the run always continues with the next id.
func (s *GuestAggregatorService) Aggregate(ctx context.Context, apiIDs []string) (*domain.UniqueGuests, domain.AggregateStats) {
	unique := domain.NewUniqueGuests()
	stats := domain.AggregateStats{IDs: len(apiIDs)}
	s.logger.Info("loaded event api_ids", "count", len(apiIDs))

	for _, id := range apiIDs {
		s.logger.Info("fetching guests", "event_api_id", id)
		guests, err := s.fetcher.FetchGuests(ctx, id)
		if err != nil {
			stats.FailedIDs++
			s.logger.Error("error fetching guests", "event_api_id", id, "error", err)
			continue
		}
		s.logger.Info("got guests", "event_api_id", id, "guests", len(guests))
		stats.Fetched += len(guests)

		for _, g := range guests {
			s.add(unique, g, id, &stats)
		}
	}
	stats.Unique = unique.Len()

	s.logger.Info("total unique guests collected",
		"unique", stats.Unique,
		"fetched", stats.Fetched,
		"duplicates", stats.Duplicates,
		"missing_email", stats.MissingEmail,
		"failed_event_ids", stats.FailedIDs,
	)
	return unique, stats
}

func (s *GuestAggregatorService) add(unique *domain.UniqueGuests, g domain.Guest, eventID string, stats *domain.AggregateStats) {
	email, ok := g.Email()
	if !ok {
		stats.MissingEmail++
		s.logger.Warn("guest without email, skipping", "event_api_id", eventID, "guest_api_id", g["api_id"])
		return
	}

	obscured, ok := domain.ObscureEmail(email)
	if !ok {
		s.logger.Warn("email not redactable, keeping as-is", "event_api_id", eventID)
	}
	a := domain.Attendee{Email: obscured}
	if name, ok := g.Name(); ok {
		a.Name = &name
	}
	if s.hasher != nil {
		a.EmailHash = s.hasher.Hash(email)
	}

	if unique.Add(email, a) == domain.Duplicate {
		stats.Duplicates++
		s.logger.Info("duplicate guest email, skipping", "event_api_id", eventID, "email", obscured)
	}
}
