package database

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// NewPostgres abre o backend primário de rede. O Ping é obrigatório aqui:
// sql.Open é preguiçoso e o fallback de Connect depende de um erro real.
func NewPostgres(dsn string) (Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir conexão com Postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar ao Postgres: %w", err)
	}

	store := &sqlStore{db: db, stmts: postgresStatements(), backend: "postgres"}
	if err := store.EnsureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao criar esquema no Postgres: %w", err)
	}
	return store, nil
}

func postgresStatements() statements {
	return statements{
		createProducts: `
		CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name VARCHAR(512),
			price VARCHAR(50),
			availability VARCHAR(50),
			rating VARCHAR(50),
			sentiment_score FLOAT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		createAlerts: `
		CREATE TABLE IF NOT EXISTS alerts (
			id SERIAL PRIMARY KEY,
			product_url TEXT,
			target_price DECIMAL(10, 2),
			email VARCHAR(255),
			is_notified BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		productExists:        "SELECT EXISTS(SELECT 1 FROM products WHERE name = $1 AND price = $2)",
		insertProduct:        "INSERT INTO products (name, price, availability, rating, sentiment_score) VALUES ($1, $2, $3, $4, $5)",
		insertAlertReturning: "INSERT INTO alerts (product_url, target_price, email) VALUES ($1, $2, $3) RETURNING id",
		pendingAlerts:        "SELECT id, product_url, target_price, email, is_notified, created_at FROM alerts WHERE is_notified = FALSE ORDER BY id",
		markNotified:         "UPDATE alerts SET is_notified = TRUE WHERE id = $1",
	}
}
