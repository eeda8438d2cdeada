package mail

import (
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Mailer dispatches transactional notifications. Implementations report
// success as a boolean; callers never roll back a persisted action because a
// notification failed.
type Mailer interface {
	Send(to, subject, htmlBody string) bool
}

// SMTPConfig holds the outbound mail transport settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// SMTPMailer sends HTML mail over an authenticated SMTP connection. When no
// credentials are configured it logs the message at warn level and reports
// not-sent, which keeps local environments working without a mail server.
type SMTPMailer struct {
	cfg    SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a mailer bound to the given transport settings.
func NewSMTPMailer(cfg SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, logger: logger}
}

// Send delivers a single HTML message. Transport failures are logged and
// surfaced as false, never as an error the caller must handle.
func (m *SMTPMailer) Send(to, subject, htmlBody string) bool {
	if m.cfg.Username == "" || m.cfg.Password == "" {
		m.logger.Warn().
			Str("to", to).
			Str("subject", subject).
			Msg("SMTP credentials not configured, mail not sent")
		return false
	}

	message := "From: " + m.cfg.FromName + " <" + m.cfg.From + ">\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Reply-To: " + m.cfg.From + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" + htmlBody

	addr := m.cfg.Host + ":" + strconv.Itoa(m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, []byte(message)); err != nil {
		m.logger.Error().Err(err).Str("to", to).Str("subject", subject).Msg("mail send failed")
		return false
	}
	m.logger.Info().Str("to", to).Str("subject", subject).Msg("mail sent")
	return true
}

// FormatAmount renders an integer FCFA amount with French thousand grouping,
// e.g. 25000 -> "25 000".
func FormatAmount(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
