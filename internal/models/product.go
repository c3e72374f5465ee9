package models

import "time"

// ConfidenceFlag classifica o resultado de uma extração
type ConfidenceFlag string

const (
	// ConfidenceOK indica que título e preço foram extraídos normalmente
	ConfidenceOK ConfidenceFlag = "ok"
	// ConfidenceBlocked indica um provável bloqueio anti-bot (página sem título)
	ConfidenceBlocked ConfidenceFlag = "blocked"
	// ConfidencePriceMissing indica que nenhum seletor de preço encontrou valor
	ConfidencePriceMissing ConfidenceFlag = "price_missing"
)

// ProductRecord é o resultado de uma única extração. Cada scrape produz um
// registro novo e imutável; registros nunca são mesclados entre si.
type ProductRecord struct {
	Name         string
	PriceDisplay string  // texto bruto do preço, com símbolo de moeda
	PriceNumeric float64 // preço parseado; 0 significa desconhecido
	Availability string
	Rating       string
	Reviews      []string // até 10 avaliações, na ordem da página
	Confidence   ConfidenceFlag
	Diagnostic   []byte // screenshot da página, presente apenas quando Confidence != ok
	ScrapedAt    time.Time
}

// Alert representa uma inscrição de alerta de queda de preço.
// Depois que Notified vira true o alerta é terminal e nunca reverte.
type Alert struct {
	ID          int64
	ProductURL  string
	TargetPrice float64
	Email       string
	Notified    bool
	CreatedAt   time.Time
}
