package utils

import (
	"DentalCenter/config"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mail is a single outgoing message.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, mail Mail) error
}

// SMTPMailer delivers mail through gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, mail Mail) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", mail.To)
	msg.SetHeader("Subject", mail.Subject)
	msg.SetBody("text/plain", mail.Text)
	if mail.HTML != "" {
		msg.AddAlternative("text/html", mail.HTML)
	}

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", mail.To, err)
	}
	return nil
}

// LogMailer only logs messages. It is used when no SMTP host is configured.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, mail Mail) error {
	m.logger.Info("mail not sent, SMTP is not configured",
		zap.String("to", mail.To),
		zap.String("subject", mail.Subject))
	return nil
}

// NewMailer picks the SMTP mailer when a host is configured.
func NewMailer(cfg config.SMTPConfig, logger *zap.Logger) Mailer {
	if strings.TrimSpace(cfg.Host) == "" {
		return NewLogMailer(logger)
	}
	return NewSMTPMailer(cfg)
}

// ReminderDetails fills the appointment reminder template.
type ReminderDetails struct {
	PatientName string
	Title       string
	When        string
}

var reminderTemplate = template.Must(template.New("reminder").Parse(`
	<!DOCTYPE html>
	<html>
	<head>
		<title>Appointment Reminder</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			p {
				color: #666666;
			}
			.when {
				font-weight: bold;
				color: #007bff;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Appointment Reminder</h1>
			<p>Dear {{.PatientName}},</p>
			<p>This is a reminder of your appointment "{{.Title}}" on:</p>
			<p class="when">{{.When}}</p>
			<p>If you cannot attend, please contact the clinic.</p>
		</div>
	</body>
	</html>
`))

// ReminderMail renders the appointment reminder sent to a patient.
func ReminderMail(to string, details ReminderDetails) (Mail, error) {
	var html strings.Builder
	if err := reminderTemplate.Execute(&html, details); err != nil {
		return Mail{}, fmt.Errorf("failed to render reminder: %w", err)
	}
	return Mail{
		To:      to,
		Subject: "Appointment Reminder",
		Text:    fmt.Sprintf("Dear %s, this is a reminder of your appointment %q on %s.", details.PatientName, details.Title, details.When),
		HTML:    html.String(),
	}, nil
}
