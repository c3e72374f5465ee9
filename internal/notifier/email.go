package notifier

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"vigia-precos/config"
)

// EmailNotifier envia alertas por submissão SMTP autenticada (STARTTLS)
type EmailNotifier struct {
	host     string
	port     int
	sender   string
	password string
}

// NewEmail cria o notificador de e-mail com as credenciais da configuração
func NewEmail(cfg *config.Config) *EmailNotifier {
	return &EmailNotifier{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		sender:   cfg.EmailSender,
		password: cfg.EmailPassword,
	}
}

// SendPriceAlert envia o e-mail de queda de preço. Retorna false em
// qualquer falha, inclusive credenciais ausentes.
func (n *EmailNotifier) SendPriceAlert(recipient, productName string, currentPrice, targetPrice float64, url string) bool {
	if n.sender == "" || n.password == "" {
		log.Warn("Credenciais de e-mail não configuradas, alerta não enviado")
		return false
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.sender)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", fmt.Sprintf("Price Drop Alert: %s...", truncate(productName, 30)))
	m.SetBody("text/plain", fmt.Sprintf(
		"Good news!\n\n"+
			"The price for '%s' has dropped to %.2f.\n"+
			"Your target was %.2f.\n\n"+
			"Grab it here: %s\n",
		productName, currentPrice, targetPrice, url,
	))

	d := gomail.NewDialer(n.host, n.port, n.sender, n.password)
	if err := d.DialAndSend(m); err != nil {
		log.WithField("recipient", recipient).Errorf("Erro ao enviar e-mail: %v", err)
		return false
	}

	log.WithField("recipient", recipient).Info("E-mail de alerta enviado")
	return true
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
