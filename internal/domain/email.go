package domain

import (
	"context"
	"strings"
)

// ObscureMarker replaces the hidden tail of an email's local part.
const ObscureMarker = "...."

// ObscureEmail redacts the local part of an address, keeping its first three
// characters (one when the local part has three or fewer) and the domain:
// "abcdef@x.com" → "abc....@x.com", "ab@x.com" → "a....@x.com".
// Addresses without exactly one "@" or with an empty local part are returned
// unchanged with ok == false.
func ObscureEmail(email string) (string, bool) {
	local, domain, found := strings.Cut(email, "@")
	if !found || local == "" || strings.Contains(domain, "@") {
		return email, false
	}
	r := []rune(local)
	keep := 3
	if len(r) <= 3 {
		keep = 1
	}
	return string(r[:keep]) + ObscureMarker + "@" + domain, true
}

// Mailer defines the contract for sending emails (infrastructure port).
// Implementations stop waiting on the provider when ctx is done.
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// AttendeeReportData holds data for the attendee report email.
type AttendeeReportData struct {
	To         string
	OutputPath string
	Stats      AggregateStats
	Attendees  []Attendee
}

// ReportService sends run summaries to an operator.
type ReportService interface {
	SendAttendeeReport(ctx context.Context, data *AttendeeReportData) error
}
