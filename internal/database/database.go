// Package database implementa a camada de persistência com dois backends
// intercambiáveis atrás da mesma interface: um Postgres de rede (primário)
// e um SQLite embutido (fallback local). A escolha acontece uma única vez
// em Connect e fica fixa pela sessão; os chamadores não enxergam qual
// backend está ativo.
//
// Esquema lógico compartilhado (cada backend gera o próprio DDL no seu
// dialeto — autoincremento e literais booleanos divergem):
//
//	products(id PK, name, price, availability, rating, sentiment_score, created_at)
//	alerts(id PK, product_url, target_price DECIMAL(10,2), email, is_notified BOOL default false, created_at)
package database

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"vigia-precos/config"
	"vigia-precos/internal/models"
)

// ErrStorageUnavailable indica que nenhum dos dois backends aceitou conexão
var ErrStorageUnavailable = errors.New("nenhum backend de armazenamento disponível")

// Store é o contrato único de persistência dos dois backends
type Store interface {
	// EnsureSchema cria as tabelas do esquema lógico se não existirem
	EnsureSchema() error
	// InsertProduct arquiva um registro de extração. Idempotente: um par
	// (nome, preço exibido) já arquivado vira no-op.
	InsertProduct(rec *models.ProductRecord, sentimentScore float64) error
	// AddAlert registra uma inscrição de alerta e retorna o id atribuído
	AddAlert(url string, targetPrice float64, email string) (int64, error)
	// PendingAlerts retorna os alertas ainda não notificados, em ordem de id
	PendingAlerts() ([]models.Alert, error)
	// MarkNotified é a única transição de estado de um alerta. Deve ser
	// chamada somente após o notificador confirmar o envio.
	MarkNotified(id int64) error
	// Backend identifica o backend ativo ("postgres" ou "sqlite")
	Backend() string
	Close() error
}

// Connect tenta o backend primário e, em qualquer erro de conexão, cai de
// forma transparente para o SQLite local, mantendo o sistema utilizável
// offline
func Connect(cfg *config.Config) (Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := NewPostgres(cfg.DatabaseURL)
		if err == nil {
			log.Info("Conectado ao banco primário (Postgres)")
			return store, nil
		}
		log.Warnf("Banco primário indisponível, usando SQLite local: %v", err)
	}

	store, err := NewSQLite(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	log.Info("Conectado ao banco local (SQLite)")
	return store, nil
}
