package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
	"vigia-precos/internal/analyzer"
	"vigia-precos/internal/database"
	"vigia-precos/internal/observability"
	"vigia-precos/internal/renderer"
	"vigia-precos/internal/scraper"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
}

// Entrada avulsa de lote: extrai cada URL passada como argumento, pontua o
// sentimento das avaliações e arquiva o resultado, sem passar pelo loop do
// monitor.
func main() {
	logLevel := flag.String("loglevel", "info", "Nível de log (debug, info, warn, error)")
	flag.Parse()

	parsedLevel, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Nível de log inválido: %v", err)
	}
	log.SetLevel(parsedLevel)

	urls := flag.Args()
	if len(urls) == 0 {
		log.Fatal("Uso: scrape [opções] <url> [url...]")
	}

	if err := godotenv.Load(); err != nil {
		log.Info("Arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configurações: %v", err)
	}

	// Sem banco a ferramenta continua útil: extrai e mostra, só não arquiva
	store, err := database.Connect(cfg)
	if err != nil {
		log.Warnf("Banco indisponível, resultados não serão salvos: %v", err)
	} else {
		defer store.Close()
	}

	r, err := renderer.New(cfg)
	if err != nil {
		log.Fatalf("Erro ao iniciar o renderizador: %v", err)
	}
	defer r.Close()

	s := scraper.New(r)
	sentiment := analyzer.New()

	for i, url := range urls {
		if i > 0 {
			time.Sleep(cfg.PolitenessDelay)
		}

		log.WithField("url", url).Info("Processando...")
		observability.ScrapesTotal.Inc()

		rec, err := s.ScrapeProduct(url)
		if err != nil {
			observability.ScrapeFailuresTotal.Inc()
			log.WithField("url", url).Errorf("Erro ao extrair produto: %v", err)
			continue
		}

		score := sentiment.Sentiment(rec.Reviews)
		log.WithFields(log.Fields{
			"name":         rec.Name,
			"price":        rec.PriceDisplay,
			"availability": rec.Availability,
			"rating":       rec.Rating,
			"reviews":      len(rec.Reviews),
			"sentiment":    score,
			"confidence":   rec.Confidence,
		}).Info("Produto extraído")

		if path, err := scraper.SaveDiagnostic(cfg.DiagnosticsDir, rec); err != nil {
			log.Warnf("Erro ao salvar diagnóstico: %v", err)
		} else if path != "" {
			log.WithField("file", path).Info("Diagnóstico salvo")
		}

		if store != nil {
			if err := store.InsertProduct(rec, score); err != nil {
				log.Errorf("Erro ao arquivar produto: %v", err)
			}
		}
	}

	log.Info("Trabalho concluído.")
}
