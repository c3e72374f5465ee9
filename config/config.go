package config

import (
	"os"
	"strconv"
	"time"
)

// UserAgents é a lista de identidades de navegador usadas em rotação
// pelo renderizador para reduzir a detecção de tráfego automatizado.
var UserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
}

// Config contém as configurações da aplicação
type Config struct {
	// Banco de dados: DSN do Postgres (primário) e caminho do SQLite (fallback)
	DatabaseURL string
	SQLitePath  string

	// Credenciais SMTP para os alertas por e-mail
	SMTPHost      string
	SMTPPort      int
	EmailSender   string
	EmailPassword string

	// Canal opcional de notificação via Telegram
	TelegramBotToken string
	TelegramChatID   int64

	// Renderização e monitoramento
	Headless        bool
	DelayMin        time.Duration // faixa de espera aleatória após carregar a página
	DelayMax        time.Duration
	PolitenessDelay time.Duration // pausa entre alertas dentro de um passe
	CheckInterval   time.Duration // intervalo entre passes no modo loop
	DiagnosticsDir  string
	MetricsPort     string
}

// Load carrega as configurações das variáveis de ambiente
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SQLitePath:       getEnv("SQLITE_PATH", "./ecommerce.db"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         587,
		EmailSender:      os.Getenv("EMAIL_SENDER"),
		EmailPassword:    os.Getenv("EMAIL_PASSWORD"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		Headless:         true,
		DelayMin:         2 * time.Second,
		DelayMax:         5 * time.Second,
		PolitenessDelay:  2 * time.Second,
		CheckInterval:    6 * time.Hour,
		DiagnosticsDir:   getEnv("DIAGNOSTICS_DIR", "./diagnostics"),
		MetricsPort:      getEnv("METRICS_PORT", "9090"),
	}

	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.SMTPPort = port
		}
	}

	// Chat ID é opcional; sem ele o canal de Telegram fica desativado
	if chatIDStr := os.Getenv("TELEGRAM_CHAT_ID"); chatIDStr != "" {
		if chatID, err := strconv.ParseInt(chatIDStr, 10, 64); err == nil {
			cfg.TelegramChatID = chatID
		}
	}

	if headless := os.Getenv("HEADLESS"); headless != "" {
		if parsed, err := strconv.ParseBool(headless); err == nil {
			cfg.Headless = parsed
		}
	}

	// Intervalo entre passes do monitor, em horas
	if envInterval := os.Getenv("CHECK_INTERVAL_HOURS"); envInterval != "" {
		if parsed, err := strconv.Atoi(envInterval); err == nil && parsed > 0 {
			cfg.CheckInterval = time.Duration(parsed) * time.Hour
		}
	}

	return cfg, nil
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
