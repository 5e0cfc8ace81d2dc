// Command guestlist builds a deduplicated, redacted attendee list from the
// Luma guest lists of the events named in an api_id file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"attendeelist/config"
	"attendeelist/internal/adapters/email"
	"attendeelist/internal/adapters/fingerprint"
	"attendeelist/internal/adapters/luma"
	"attendeelist/internal/adapters/metrics"
	"attendeelist/internal/domain"
	"attendeelist/internal/repository/jsonfile"
	"attendeelist/internal/services"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("guestlist", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (default: $CONFIG_FILE)")
	idsPath := fs.String("ids", "", "api_id list, one per line (default: $API_IDS_FILE or "+config.DefaultAPIIDsFile+")")
	output := fs.String("output", "", "Attendee JSON output path (default: $OUTPUT_FILE or "+config.DefaultOutputFile+")")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}
	if *idsPath == "" {
		*idsPath = cfg.Files.APIIDs
	}
	if *output == "" {
		*output = cfg.Files.Output
	}

	logger := config.NewLogger("guestlist")

	ids, err := (jsonfile.APIIDList{}).Read(*idsPath)
	if err != nil {
		return fmt.Errorf("load api_ids: %w", err)
	}

	var opts []services.AggregatorOption
	if cfg.EmailHashKey != "" {
		hasher, err := fingerprint.NewBlake2bHasher(cfg.EmailHashKey)
		if err != nil {
			return err
		}
		opts = append(opts, services.WithEmailHasher(hasher))
	}

	fetcher := luma.NewGuestFetcher(
		luma.WithRequestLogging(luma.NewHTTPClient(cfg.Luma.Timeout), logger),
		luma.Config{GuestListURL: cfg.Luma.GuestListURL, APIKey: cfg.Luma.APIKey},
		logger,
	)
	unique, stats := services.NewGuestAggregatorService(fetcher, logger, opts...).Aggregate(ctx, ids)

	attendees := unique.Attendees()
	written, err := jsonfile.NewAttendeeFile().Write(*output, attendees)
	if err != nil {
		return err
	}
	logger.Info("unique attendees saved", "path", written, "count", len(attendees))

	if err := metrics.NewRecorder(cfg.Metrics.TextfileDir, metrics.PipelineGuestList).RecordAggregate(stats); err != nil {
		logger.Error("failed to record metrics", "error", err)
	}

	if cfg.Report.To != "" {
		sendReport(ctx, cfg, logger, &domain.AttendeeReportData{
			To:         cfg.Report.To,
			OutputPath: written,
			Stats:      stats,
			Attendees:  attendees,
		})
	}
	return nil
}

// sendReport mails the run summary. Failures are logged; the attendee file is already written.
func sendReport(ctx context.Context, cfg *config.Config, logger *slog.Logger, data *domain.AttendeeReportData) {
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Report.Provider,
		FromAddress: cfg.Report.FromAddress,
		FromName:    cfg.Report.FromName,
		SES: email.SESConfig{
			Region:             cfg.Report.SES.Region,
			AccessKeyID:        cfg.Report.SES.AccessKeyID,
			SecretAccessKey:    cfg.Report.SES.SecretAccessKey,
			InsecureSkipVerify: cfg.Report.SES.InsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "error", err)
		return
	}
	report := services.NewReportService(mailer, email.NewTemplateRenderer(), logger)
	if err := report.SendAttendeeReport(ctx, data); err != nil {
		logger.Error("failed to send attendee report", "error", err)
	}
}
