package service

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"microblog/internal/config"
	"microblog/internal/model"
)

// Mailer sends outbound application mail. When no mail server is
// configured it degrades to logging, so the rest of the app keeps working.
type Mailer struct {
	dialer *gomail.Dialer
	sender string
	admins []string
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		sender: cfg.MailSender,
		admins: cfg.Admins,
	}

	if cfg.MailServer == "" {
		log.Warn().Msg("MAIL_SERVER not set, outbound mail disabled")
		return m
	}

	dialer := gomail.NewDialer(cfg.MailServer, cfg.MailPort, cfg.MailUsername, cfg.MailPassword)
	dialer.SSL = cfg.MailUseTLS && cfg.MailPort == 465
	m.dialer = dialer
	return m
}

// SendPasswordResetEmail delivers the reset token to the user. Delivery
// happens in a goroutine so the request never waits on SMTP.
func (m *Mailer) SendPasswordResetEmail(user *model.User, token string) {
	body := fmt.Sprintf(
		"Dear %s,\n\n"+
			"To reset your password visit the following link:\n\n"+
			"/reset_password/%s\n\n"+
			"If you have not requested a password reset simply ignore this message.\n",
		user.Username, token)

	m.sendAsync("[Microblog] Reset Your Password", body, []string{user.Email})
}

// NotifyAdmins mails the configured admin addresses about a failure.
func (m *Mailer) NotifyAdmins(subject, body string) {
	if len(m.admins) == 0 {
		return
	}
	m.sendAsync(subject, body, m.admins)
}

func (m *Mailer) sendAsync(subject, body string, to []string) {
	if m.dialer == nil {
		log.Info().Str("subject", subject).Strs("to", to).Msg("mail disabled, dropping message")
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	go func() {
		if err := m.dialer.DialAndSend(msg); err != nil {
			log.Error().Err(err).Str("subject", subject).Msg("failed to send mail")
		}
	}()
}
