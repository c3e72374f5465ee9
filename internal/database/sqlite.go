package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLite abre o backend embutido local usado como fallback offline
func NewSQLite(path string) (Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco SQLite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao conectar ao SQLite: %w", err)
	}

	store := &sqlStore{db: db, stmts: sqliteStatements(), backend: "sqlite"}
	if err := store.EnsureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("erro ao criar esquema no SQLite: %w", err)
	}
	return store, nil
}

func sqliteStatements() statements {
	return statements{
		createProducts: `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT,
			price TEXT,
			availability TEXT,
			rating TEXT,
			sentiment_score REAL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		createAlerts: `
		CREATE TABLE IF NOT EXISTS alerts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			product_url TEXT,
			target_price DECIMAL(10, 2),
			email TEXT,
			is_notified BOOLEAN DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		productExists: "SELECT EXISTS(SELECT 1 FROM products WHERE name = ? AND price = ?)",
		insertProduct: "INSERT INTO products (name, price, availability, rating, sentiment_score) VALUES (?, ?, ?, ?, ?)",
		insertAlert:   "INSERT INTO alerts (product_url, target_price, email) VALUES (?, ?, ?)",
		pendingAlerts: "SELECT id, product_url, target_price, email, is_notified, created_at FROM alerts WHERE is_notified = 0 ORDER BY id",
		markNotified:  "UPDATE alerts SET is_notified = 1 WHERE id = ?",
	}
}
