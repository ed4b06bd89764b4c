package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/lucabelezal/cardlimit-service/internal/config"
	"github.com/lucabelezal/cardlimit-service/internal/limits"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendLimitChangeNotification notifies a user that their card limit
// changed
func (s *Sender) SendLimitChangeNotification(to, username string, oldLimit, newLimit int64) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if newLimit > oldLimit {
		e.Subject = "Card Limit Increased"
	} else {
		e.Subject = "Card Limit Decreased"
	}

	body := fmt.Sprintf(
		"Dear %s,\n\n", username,
	)
	body += fmt.Sprintf(
		"Your card limit was changed from %s to %s on %s.\n"+
			"If you did not request this change, please contact support immediately.\n",
		limits.FormatAmount(oldLimit),
		limits.FormatAmount(newLimit),
		time.Now().Format("2006-01-02 15:04:05"),
	)
	body += "\nBest regards,\nCard Service"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	err := e.Send(addr, auth)
	if err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
