package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	// ScrapesTotal conta as extrações tentadas
	ScrapesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scrapes_total",
			Help: "Total de extrações de produto tentadas",
		},
	)
	// ScrapeFailuresTotal conta renderizações/extrações que falharam
	ScrapeFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "scrape_failures_total",
			Help: "Total de extrações que falharam",
		},
	)
	// AlertsNotifiedTotal conta alertas notificados com confirmação
	AlertsNotifiedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "alerts_notified_total",
			Help: "Total de alertas de preço notificados",
		},
	)
)

// Start registra os contadores e serve /metrics na porta informada
func Start(port string) {
	prometheus.MustRegister(ScrapesTotal, ScrapeFailuresTotal, AlertsNotifiedTotal)
	http.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(":"+port, nil); err != nil {
			log.Errorf("Erro no servidor de métricas: %v", err)
		}
	}()
}
