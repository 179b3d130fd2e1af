package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations. Sends are
// best-effort: callers log failures but never fail their own operation on
// one.
type EmailService interface {
	SendInvitationEmail(toEmail string, userType, token string) error
	SendReviewNotification(toEmail, toName, requestType, status string, comment string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for links embedded in emails
	// InviteExpiry is the configured invitation lifetime, quoted in the
	// invitation email body.
	InviteExpiry time.Duration
}

// invitationExpiryText renders a duration as the human wording used in the
// invitation email. Whole days read as "N days"; anything else falls back
// to the duration string.
func invitationExpiryText(d time.Duration) string {
	if d <= 0 {
		d = 168 * time.Hour
	}
	days := int(d.Hours()) / 24
	if days >= 1 && d == time.Duration(days)*24*time.Hour {
		if days == 1 {
			return "1 day"
		}
		return fmt.Sprintf("%d days", days)
	}
	return d.String()
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// SendInvitationEmail sends an email carrying the invitation signup link
func (s *EmailServiceImpl) SendInvitationEmail(toEmail, userType, token string) error {
	inviteURL := fmt.Sprintf("%s/signup?token=%s", s.config.BaseURL, token)

	// Without SMTP credentials, log the link instead of sending
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("inviteURL", inviteURL).
			Msg("SMTP credentials not configured - invitation email not sent. Use the URL above for testing.")
		return nil
	}

	subject := "You're invited to join ScholarBase"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to ScholarBase!</h2>
				<p>Hello,</p>
				<p>You have been invited to join ScholarBase as a %s. Click the button below to create your account:</p>

				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Accept Invitation</a>
				</div>

				<p>This invitation will expire in %s.</p>

				<p>If you were not expecting this invitation, please ignore this email.</p>

				<p>Best regards,<br>The ScholarBase Team</p>
			</div>
		</body>
		</html>
	`, userType, inviteURL, invitationExpiryText(s.config.InviteExpiry))

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendReviewNotification tells a scholar their request was reviewed
func (s *EmailServiceImpl) SendReviewNotification(toEmail, toName, requestType, status, comment string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("status", status).
			Msg("SMTP credentials not configured - review notification not sent.")
		return nil
	}

	subject := fmt.Sprintf("Your %s request has been %s", requestType, status)

	commentHTML := ""
	if comment != "" {
		commentHTML = fmt.Sprintf("<p>Reviewer comment: %s</p>", comment)
	}

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Request Update</h2>
				<p>Hello %s,</p>
				<p>Your %s request has been marked as <strong>%s</strong>.</p>
				%s
				<p>Log in to your portal to see the details.</p>

				<p>Best regards,<br>The ScholarBase Team</p>
			</div>
		</body>
		</html>
	`, toName, requestType, status, commentHTML)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email over SMTP
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: s.config.Host,
		}

		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		if err = w.Close(); err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
