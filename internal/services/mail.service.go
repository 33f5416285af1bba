package services

import (
	"fmt"
	"net/smtp"
	"net/url"

	"audora/config"
	"audora/internal/logger"
)

// EmailSender delivers a single plain-text mail
type EmailSender interface {
	Send(to, subject, body string) error
}

// SMTPSender sends mail through a configured SMTP relay
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPSender(config config.Config) *SMTPSender {
	return &SMTPSender{
		host:     config.SMTPHost,
		port:     config.SMTPPort,
		username: config.SMTPUser,
		password: config.SMTPPassword,
		from:     config.SMTPFrom,
	}
}

func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	msg := []byte(
		fmt.Sprintf("From: %s\r\n", s.from) +
			fmt.Sprintf("To: %s\r\n", to) +
			fmt.Sprintf("Subject: %s\r\n", subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=UTF-8\r\n" +
			"\r\n" +
			body + "\r\n",
	)

	return smtp.SendMail(addr, auth, s.from, []string{to}, msg)
}

// LogSender writes mails to the log instead of delivering them, for local
// development without an SMTP relay
type LogSender struct {
	log logger.Logger
}

func NewLogSender() *LogSender {
	return &LogSender{log: logger.New("mail")}
}

func (s *LogSender) Send(to, subject, body string) error {
	s.log.Info("mail not delivered, SMTP is not configured",
		"to", to, "subject", subject, "body", body)
	return nil
}

// MailService builds and sends the account lifecycle mails
type MailService struct {
	sender            EmailSender
	passwordResetLink string
	signInURL         string
	log               logger.Logger
}

func NewMailService(config config.Config) *MailService {
	var sender EmailSender
	if config.SMTPHost != "" {
		sender = NewSMTPSender(config)
	} else {
		sender = NewLogSender()
	}

	return &MailService{
		sender:            sender,
		passwordResetLink: config.PasswordResetLink,
		signInURL:         config.SignInURL,
		log:               logger.New("MailService"),
	}
}

// SendVerification mails the one-time code a new account confirms with
func (s *MailService) SendVerification(to, name, otp string) error {
	log := s.log.Function("SendVerification")

	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to Audora. Use the following code to verify your email address:\n\n%s\n\nIf you did not create this account you can ignore this mail.\n",
		name, otp,
	)
	if err := s.sender.Send(to, "Verify your email", body); err != nil {
		return log.Err("failed to send verification mail", err, "to", to)
	}

	return nil
}

// SendPasswordReset mails the reset link carrying the token and user id
func (s *MailService) SendPasswordReset(to, userID, token string) error {
	log := s.log.Function("SendPasswordReset")

	link := fmt.Sprintf("%s?token=%s&userId=%s",
		s.passwordResetLink, url.QueryEscape(token), url.QueryEscape(userID))

	body := fmt.Sprintf(
		"We received a request to reset your password.\n\nFollow this link to choose a new one:\n\n%s\n\nThe link expires in one hour. If you did not request a reset you can ignore this mail.\n",
		link,
	)
	if err := s.sender.Send(to, "Reset your password", body); err != nil {
		return log.Err("failed to send password reset mail", err, "to", to)
	}

	return nil
}

// SendPasswordResetSuccess confirms the password change and points back at
// the sign-in page
func (s *MailService) SendPasswordResetSuccess(to, name string) error {
	log := s.log.Function("SendPasswordResetSuccess")

	body := fmt.Sprintf(
		"Hi %s,\n\nYour password was just changed. You can sign in with your new password here:\n\n%s\n\nIf this was not you, reset your password again immediately.\n",
		name, s.signInURL,
	)
	if err := s.sender.Send(to, "Your password was changed", body); err != nil {
		return log.Err("failed to send reset confirmation mail", err, "to", to)
	}

	return nil
}
