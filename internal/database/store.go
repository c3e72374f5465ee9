package database

import (
	"database/sql"

	"vigia-precos/internal/models"
)

// statements reúne as instruções SQL que cada backend constrói no próprio
// dialeto a partir do esquema lógico. Nada de tradução de strings em tempo
// de execução: os dois conjuntos existem por inteiro, lado a lado.
type statements struct {
	createProducts string
	createAlerts   string
	productExists  string
	insertProduct  string
	// insertAlertReturning é usado quando o dialeto suporta RETURNING;
	// caso contrário insertAlert + LastInsertId
	insertAlert          string
	insertAlertReturning string
	pendingAlerts        string
	markNotified         string
}

// sqlStore implementa Store sobre database/sql com o conjunto de
// instruções do backend escolhido
type sqlStore struct {
	db      *sql.DB
	stmts   statements
	backend string
}

func (s *sqlStore) EnsureSchema() error {
	if _, err := s.db.Exec(s.stmts.createProducts); err != nil {
		return err
	}
	_, err := s.db.Exec(s.stmts.createAlerts)
	return err
}

func (s *sqlStore) InsertProduct(rec *models.ProductRecord, sentimentScore float64) error {
	// Deduplicação exata em (nome, preço exibido): o histórico de preços é
	// capturado implicitamente por linhas novas com preço diferente
	var exists bool
	err := s.db.QueryRow(s.stmts.productExists, rec.Name, rec.PriceDisplay).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	_, err = s.db.Exec(s.stmts.insertProduct,
		rec.Name, rec.PriceDisplay, rec.Availability, rec.Rating, sentimentScore)
	return err
}

func (s *sqlStore) AddAlert(url string, targetPrice float64, email string) (int64, error) {
	if s.stmts.insertAlertReturning != "" {
		var id int64
		err := s.db.QueryRow(s.stmts.insertAlertReturning, url, targetPrice, email).Scan(&id)
		return id, err
	}

	res, err := s.db.Exec(s.stmts.insertAlert, url, targetPrice, email)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *sqlStore) PendingAlerts() ([]models.Alert, error) {
	rows, err := s.db.Query(s.stmts.pendingAlerts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var createdAt sql.NullTime
		if err := rows.Scan(&a.ID, &a.ProductURL, &a.TargetPrice, &a.Email, &a.Notified, &createdAt); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			a.CreatedAt = createdAt.Time
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

func (s *sqlStore) MarkNotified(id int64) error {
	_, err := s.db.Exec(s.stmts.markNotified, id)
	return err
}

func (s *sqlStore) Backend() string {
	return s.backend
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
