package monitor

import (
	"time"

	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
	"vigia-precos/internal/database"
	"vigia-precos/internal/models"
	"vigia-precos/internal/notifier"
	"vigia-precos/internal/observability"
	"vigia-precos/internal/renderer"
	"vigia-precos/internal/scraper"
)

// ProductScraper é o que o monitor precisa do motor de extração
type ProductScraper interface {
	ScrapeProduct(url string) (*models.ProductRecord, error)
}

// AlertStore é a fatia da persistência usada durante um passe
type AlertStore interface {
	PendingAlerts() ([]models.Alert, error)
	MarkNotified(id int64) error
}

// Monitor percorre os alertas pendentes de um passe, reavalia o preço ao
// vivo de cada um e dispara a notificação quando o alvo é atingido.
// Processamento estritamente sequencial: um alerta termina antes do
// próximo começar, com pausa de cortesia entre eles.
type Monitor struct {
	store    AlertStore
	scraper  ProductScraper
	notifier notifier.Notifier
	delay    time.Duration
}

// New cria um monitor sobre os colaboradores de um passe
func New(store AlertStore, s ProductScraper, n notifier.Notifier, politenessDelay time.Duration) *Monitor {
	return &Monitor{store: store, scraper: s, notifier: n, delay: politenessDelay}
}

// RunOnce executa um passe completo sobre os alertas pendentes e retorna
// quantos foram processados e quantos notificados. Falhas de um alerta são
// registradas e nunca derrubam o restante do lote.
func (m *Monitor) RunOnce() (processed, notified int, err error) {
	alerts, err := m.store.PendingAlerts()
	if err != nil {
		return 0, 0, err
	}
	if len(alerts) == 0 {
		log.Info("Nenhum alerta pendente")
		return 0, 0, nil
	}

	log.Infof("Verificando %d alertas...", len(alerts))
	for i, alert := range alerts {
		// Pausa de cortesia entre alertas para não rajar o site alvo
		if i > 0 {
			time.Sleep(m.delay)
		}

		processed++
		if m.checkAlert(alert) {
			notified++
		}
	}
	return processed, notified, nil
}

// checkAlert reavalia um único alerta. Retorna true somente quando o envio
// foi confirmado e o alerta marcado como notificado.
func (m *Monitor) checkAlert(alert models.Alert) bool {
	logger := log.WithFields(log.Fields{"alert_id": alert.ID, "url": alert.ProductURL})

	observability.ScrapesTotal.Inc()
	rec, err := m.scraper.ScrapeProduct(alert.ProductURL)
	if err != nil {
		observability.ScrapeFailuresTotal.Inc()
		logger.Errorf("Erro ao verificar alerta: %v", err)
		return false
	}

	// Preço 0 significa "desconhecido": nunca dispara o alerta, apenas
	// pula este passe
	if rec.PriceNumeric <= 0 || rec.PriceNumeric > alert.TargetPrice {
		logger.WithFields(log.Fields{
			"price":      rec.PriceNumeric,
			"target":     alert.TargetPrice,
			"confidence": rec.Confidence,
		}).Info("Preço ainda acima do alvo (ou desconhecido)")
		return false
	}

	logger.Infof("📉 Queda de preço: %.2f <= alvo %.2f", rec.PriceNumeric, alert.TargetPrice)

	// MarkNotified só depois do envio confirmado: é isso que garante no
	// máximo uma notificação por queda. Envio falhou → alerta continua
	// pendente e volta no próximo passe.
	if !m.notifier.SendPriceAlert(alert.Email, rec.Name, rec.PriceNumeric, alert.TargetPrice, alert.ProductURL) {
		logger.Warn("Envio não confirmado, alerta permanece pendente")
		return false
	}
	if err := m.store.MarkNotified(alert.ID); err != nil {
		logger.Errorf("Erro ao marcar alerta como notificado: %v", err)
		return false
	}

	observability.AlertsNotifiedTotal.Inc()
	return true
}

// Pass monta os recursos de um passe (uma conexão de banco e um navegador,
// reutilizados por todos os alertas), executa RunOnce e libera tudo em
// qualquer caminho de saída. Só falhas de setup abortam o passe.
func Pass(cfg *config.Config) (processed, notified int, err error) {
	store, err := database.Connect(cfg)
	if err != nil {
		return 0, 0, err
	}
	defer store.Close()

	if err := store.EnsureSchema(); err != nil {
		return 0, 0, err
	}

	r, err := renderer.New(cfg)
	if err != nil {
		return 0, 0, err
	}
	defer r.Close()

	m := New(store, scraper.New(r), notifier.FromConfig(cfg), cfg.PolitenessDelay)
	return m.RunOnce()
}

// Loop executa passes indefinidamente com um intervalo longo entre eles.
// Não há condição de parada além da interrupção do processo.
func Loop(cfg *config.Config) {
	log.Infof("Monitor de alertas iniciado. Passes a cada %v", cfg.CheckInterval)
	for {
		processed, notified, err := Pass(cfg)
		if err != nil {
			log.Errorf("Passe abortado: %v", err)
		} else {
			log.Infof("Passe concluído: %d alertas processados, %d notificados", processed, notified)
		}
		log.Infof("Dormindo por %v...", cfg.CheckInterval)
		time.Sleep(cfg.CheckInterval)
	}
}
