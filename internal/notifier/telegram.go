package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
)

// TelegramNotifier replica os alertas em um chat do Telegram. Canal
// opcional: sem token e chat id configurados ele simplesmente não existe.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegram inicializa o bot do Telegram. Retorna (nil, nil) quando o
// canal não está configurado.
func NewTelegram(cfg *config.Config) (*TelegramNotifier, error) {
	if cfg.TelegramBotToken == "" || cfg.TelegramChatID == 0 {
		return nil, nil
	}

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar com Telegram: %w", err)
	}
	bot.Debug = false

	log.Infof("Bot do Telegram autorizado como: %s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: cfg.TelegramChatID}, nil
}

// SendPriceAlert envia a mensagem de queda de preço para o chat configurado
func (n *TelegramNotifier) SendPriceAlert(_, productName string, currentPrice, targetPrice float64, url string) bool {
	text := fmt.Sprintf(
		"📉 Queda de preço!\n\n"+
			"Produto: %s\n"+
			"Preço atual: %.2f\n"+
			"Preço alvo: %.2f\n\n"+
			"Link: %s",
		productName, currentPrice, targetPrice, url,
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		log.Errorf("Erro ao enviar mensagem no Telegram: %v", err)
		return false
	}
	return true
}
