package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendStudentCredentialsEmail(toEmail, toName, matricNumber, password string) error
	SendStaffCredentialsEmail(toEmail, toName, staffID, password string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
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

// SendStudentCredentialsEmail sends a newly admitted student their matric
// number and generated password.
func (s *EmailServiceImpl) SendStudentCredentialsEmail(toEmail, toName, matricNumber, password string) error {
	// Without SMTP credentials, log instead of sending (development only)
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("matricNumber", matricNumber).
			Msg("SMTP credentials not configured - admission email not sent. Credentials logged for testing.")
		return nil
	}
	subject := "Your CampusCore Student Account"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to CampusCore!</h2>
				<p>Hello %s,</p>
				<p>Your student account has been created. Use the credentials below to log in at <a href="%s">%s</a>:</p>

				<p>Matric number: <strong>%s</strong><br>
				Password: <strong>%s</strong></p>

				<p>Please change your password after your first login.</p>

				<p>Best regards,<br>The Registry</p>
			</div>
		</body>
		</html>
	`, toName, s.config.BaseURL, s.config.BaseURL, matricNumber, password)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendStaffCredentialsEmail sends a new staff member their staff ID and
// generated password.
func (s *EmailServiceImpl) SendStaffCredentialsEmail(toEmail, toName, staffID, password string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("staffID", staffID).
			Msg("SMTP credentials not configured - staff credentials email not sent. Credentials logged for testing.")
		return nil
	}
	subject := "Your CampusCore Staff Account"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Welcome to CampusCore!</h2>
				<p>Hello %s,</p>
				<p>Your staff account has been created. Use the credentials below to log in at <a href="%s">%s</a>:</p>

				<p>Staff ID: <strong>%s</strong><br>
				Password: <strong>%s</strong></p>

				<p>Please change your password after your first login.</p>

				<p>Best regards,<br>The Registry</p>
			</div>
		</body>
		</html>
	`, toName, s.config.BaseURL, s.config.BaseURL, staffID, password)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
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
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
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
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
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
