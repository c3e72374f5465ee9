package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
	"vigia-precos/internal/monitor"
	"vigia-precos/internal/observability"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
}

func main() {
	loop := flag.Bool("loop", false, "Executa continuamente em vez de um único passe")
	logLevel := flag.String("loglevel", "info", "Nível de log (debug, info, warn, error)")
	flag.Parse()

	parsedLevel, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("Nível de log inválido: %v", err)
	}
	log.SetLevel(parsedLevel)

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Info("Arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configurações: %v", err)
	}

	observability.Start(cfg.MetricsPort)

	if !*loop {
		// Modo de passe único, para cron ou agendadores externos
		log.Info("Executando em modo de passe único...")
		processed, notified, err := monitor.Pass(cfg)
		if err != nil {
			log.Fatalf("Passe abortado: %v", err)
		}
		log.Infof("Finalizado: %d alertas processados, %d notificados", processed, notified)
		return
	}

	// Modo contínuo: roda até interrupção externa. Os recursos de cada
	// passe são liberados dentro do próprio passe.
	go monitor.Loop(cfg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Encerrando monitor...")
}
