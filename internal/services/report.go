package services

import (
	"context"
	"fmt"
	"log/slog"

	"attendeelist/internal/domain"
)

const attendeeReportTemplate = "attendee_report"

type reportService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewReportService returns a ReportService that uses the given Mailer and template renderer.
func NewReportService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reportService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendAttendeeReport sends the run summary using the "attendee_report" template.
func (s *reportService) SendAttendeeReport(ctx context.Context, data *domain.AttendeeReportData) error {
	if data == nil {
		return fmt.Errorf("attendee report data is nil")
	}
	if data.To == "" {
		return fmt.Errorf("attendee report recipient is empty")
	}
	subject, htmlBody, textBody, err := s.renderer.Render(attendeeReportTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", attendeeReportTemplate, err)
	}
	if err := s.mailer.Send(ctx, data.To, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send attendee report: %w", err)
	}
	s.logger.Info("attendee report sent", "unique", data.Stats.Unique)
	return nil
}
