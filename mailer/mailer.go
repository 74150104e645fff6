package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"go-airwatch/config"
	"go-airwatch/types"
)

// Mailer sends transactional email over SMTP.
type Mailer struct {
	cfg config.SMTPConfig
}

func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendReport emails a stored health report to the user.
func (m *Mailer) SendReport(to string, report types.Report) error {
	subject := fmt.Sprintf("Your AirWatch health report for %s", report.Location)
	body := fmt.Sprintf(
		"Air quality near %s: AQI %d (%s)\nGenerated %s\n\n%s\n\nThis advisory is informational and not medical advice.",
		report.Location, report.AQI, report.Category,
		report.CreatedAt.Format("Jan 2, 2006 3:04 PM"), report.Advisory,
	)
	return m.send(to, subject, body)
}

func (m *Mailer) send(to, subject, body string) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.cfg.From)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}
