// Package notification emails a user when their enrichment job finishes,
// adapted from the teacher's contract-alert mailer (internal/notification)
// onto job-completion summaries instead of newly scraped contracts.
package notification

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// Notifier sends job-completion emails over SMTP.
type Notifier struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
}

// NewNotifier creates a new notifier instance.
func NewNotifier(smtpHost, smtpPort, smtpUsername, smtpPassword, fromEmail string) *Notifier {
	return &Notifier{
		smtpHost:     smtpHost,
		smtpPort:     smtpPort,
		smtpUsername: smtpUsername,
		smtpPassword: smtpPassword,
		fromEmail:    fromEmail,
	}
}

// JobSummary is the subset of a completed job worth emailing about.
type JobSummary struct {
	OriginalName string
	DownloadURL  string
	RowsIn       int
	RowsEnriched int
	EligibleRows int
	Confidence   string
}

// SendJobCompletion emails toEmail a summary of a finished enrichment job.
func (n *Notifier) SendJobCompletion(toEmail string, s JobSummary) error {
	if toEmail == "" {
		return nil
	}
	subject := fmt.Sprintf("Lead enrichment finished: %s (%d/%d enriched)", s.OriginalName, s.RowsEnriched, s.EligibleRows)
	body := n.buildEmailBody(s)
	return n.sendEmail([]string{toEmail}, subject, body)
}

func (n *Notifier) sendEmail(toEmails []string, subject, body string) error {
	auth := smtp.PlainAuth("", n.smtpUsername, n.smtpPassword, n.smtpHost)

	headers := []string{
		fmt.Sprintf("From: %s", n.fromEmail),
		fmt.Sprintf("To: %s", strings.Join(toEmails, ", ")),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
		"",
		body,
	}
	message := strings.Join(headers, "\r\n")

	err := smtp.SendMail(n.smtpHost+":"+n.smtpPort, auth, n.fromEmail, toEmails, []byte(message))
	if err != nil {
		return fmt.Errorf("notification: send email: %w", err)
	}

	log.Printf("notification: job-completion email sent to %s", strings.Join(toEmails, ", "))
	return nil
}

func (n *Notifier) buildEmailBody(s JobSummary) string {
	var sb strings.Builder
	sb.WriteString(`
	<html>
	<head>
		<style>
			body { font-family: Arial, sans-serif; margin: 20px; }
			.card { border: 1px solid #ddd; margin: 10px 0; padding: 15px; border-radius: 5px; }
			.file { font-weight: bold; color: #333; }
			.stat { color: #666; font-size: 14px; }
			.count { color: #2c5aa0; font-weight: bold; }
		</style>
	</head>
	<body>
		<h2>Lead enrichment finished</h2>
		<div class="card">
			<div class="file">`)
	sb.WriteString(s.OriginalName)
	sb.WriteString(`</div>
			<div class="stat">
				<span class="count">`)
	sb.WriteString(fmt.Sprintf("%d", s.RowsEnriched))
	sb.WriteString(`</span> of <span class="count">`)
	sb.WriteString(fmt.Sprintf("%d", s.EligibleRows))
	sb.WriteString(`</span> eligible rows enriched, out of `)
	sb.WriteString(fmt.Sprintf("%d", s.RowsIn))
	sb.WriteString(` total rows. Schema-inference confidence: `)
	sb.WriteString(s.Confidence)
	sb.WriteString(`.
			</div>
		</div>
		<p><a href="`)
	sb.WriteString(s.DownloadURL)
	sb.WriteString(`">Download the merged file</a></p>
		<p><small>This notification was sent automatically by the lead enrichment pipeline.</small></p>
	</body>
	</html>
	`)
	return sb.String()
}

// TestConnection tests the email configuration without sending a message.
func (n *Notifier) TestConnection() error {
	log.Println("notification: testing SMTP configuration...")

	auth := smtp.PlainAuth("", n.smtpUsername, n.smtpPassword, n.smtpHost)
	addr := n.smtpHost + ":" + n.smtpPort
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("notification: connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("notification: authenticate with SMTP server: %w", err)
	}

	log.Println("notification: SMTP configuration OK")
	return nil
}
