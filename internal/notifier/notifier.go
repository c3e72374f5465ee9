package notifier

import (
	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
)

// Notifier envia um alerta de queda de preço. Implementações retornam
// false em qualquer falha de transporte ou autenticação — nunca propagam
// erro ao chamador, que trata false como "não marcar como notificado".
type Notifier interface {
	SendPriceAlert(recipient, productName string, currentPrice, targetPrice float64, url string) bool
}

// FromConfig monta o notificador a partir da configuração: e-mail como
// canal principal e Telegram como canal extra quando configurado
func FromConfig(cfg *config.Config) Notifier {
	email := NewEmail(cfg)

	telegram, err := NewTelegram(cfg)
	if err != nil {
		log.Warnf("Canal de Telegram desativado: %v", err)
		return email
	}
	if telegram == nil {
		return email
	}
	return &MultiNotifier{Primary: email, Extras: []Notifier{telegram}}
}

// MultiNotifier encaminha o alerta para vários canais. Apenas o canal
// principal decide o resultado; os extras são melhor esforço.
type MultiNotifier struct {
	Primary Notifier
	Extras  []Notifier
}

// SendPriceAlert envia pelo canal principal e replica nos extras
func (m *MultiNotifier) SendPriceAlert(recipient, productName string, currentPrice, targetPrice float64, url string) bool {
	ok := m.Primary.SendPriceAlert(recipient, productName, currentPrice, targetPrice, url)
	for _, extra := range m.Extras {
		if !extra.SendPriceAlert(recipient, productName, currentPrice, targetPrice, url) {
			log.Debug("Canal extra de notificação falhou")
		}
	}
	return ok
}
