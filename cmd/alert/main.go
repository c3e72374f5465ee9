package main

import (
	"flag"
	"strconv"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
	"vigia-precos/internal/database"
)

// Registra uma inscrição de alerta de queda de preço direto no banco.
// Uso: alert <url> <preço_alvo> <email>
func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) != 3 {
		log.Fatal("Uso: alert <url> <preço_alvo> <email>")
	}

	targetPrice, err := strconv.ParseFloat(args[1], 64)
	if err != nil || targetPrice <= 0 {
		log.Fatal("Preço alvo inválido. Use um valor numérico positivo.")
	}

	if err := godotenv.Load(); err != nil {
		log.Info("Arquivo .env não encontrado, usando variáveis de ambiente do sistema")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configurações: %v", err)
	}

	store, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Erro ao conectar ao banco: %v", err)
	}
	defer store.Close()

	id, err := store.AddAlert(args[0], targetPrice, args[2])
	if err != nil {
		log.Fatalf("Erro ao registrar alerta: %v", err)
	}

	log.Infof("Alerta %d registrado: avisaremos %s quando o preço cair para %.2f", id, args[2], targetPrice)
}
