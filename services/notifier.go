package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"savrepa-api/config"
	"savrepa-api/models"
)

// Notifier sends low-stock alert emails to the shop manager. It is
// best-effort: failures are logged and never surfaced to API callers.
type Notifier struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewNotifier(cfg *config.Config) *Notifier {
	return &Notifier{
		config: cfg,
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
	}
}

// Enabled reports whether alerting is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.config.SMTPHost != "" && n.config.StockAlertEmail != ""
}

// LowStockAlert emails the configured recipient that a part dropped to or
// below its threshold.
func (n *Notifier) LowStockAlert(part models.Part) {
	if !n.Enabled() {
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", n.config.FromName, n.config.FromEmail))
	m.SetHeader("To", n.config.StockAlertEmail)
	m.SetHeader("Subject", fmt.Sprintf("Stock bas: %s", part.Name))
	m.SetBody("text/plain", fmt.Sprintf(
		"La piece %q est descendue a %d en stock (seuil: %d).",
		part.Name, part.StockQuantity, part.LowStockThreshold,
	))

	if err := n.dialer.DialAndSend(m); err != nil {
		logrus.WithError(err).WithField("part", part.Name).Error("failed to send low stock alert")
		return
	}

	logrus.WithField("part", part.Name).Info("low stock alert sent")
}
