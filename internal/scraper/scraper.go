package scraper

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"

	"vigia-precos/internal/models"
)

// PageRenderer define o que o motor de extração precisa de um navegador
type PageRenderer interface {
	Render(url string) (string, error)
	SettleReviews() (string, error)
	Screenshot() ([]byte, error)
}

// Scraper é o motor de extração resiliente: renderiza a página, aplica a
// cascata de regras estruturais e anexa o artefato de diagnóstico quando a
// extração sai com confiança baixa
type Scraper struct {
	renderer PageRenderer
}

// New cria um scraper sobre o renderizador fornecido
func New(r PageRenderer) *Scraper {
	return &Scraper{renderer: r}
}

// ScrapeProduct extrai um registro de produto da URL. Cada chamada produz
// um snapshot limpo e independente dos anteriores.
func (s *Scraper) ScrapeProduct(url string) (*models.ProductRecord, error) {
	html, err := s.renderer.Render(url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("erro ao montar o DOM de %s: %w", url, err)
	}

	rec := ParseProduct(doc)
	rec.ScrapedAt = time.Now().UTC()
	rec.Reviews = s.scrapeReviews(doc)

	// Screenshot para triagem offline de bloqueio ou mudança de markup.
	// Best-effort: a falha da captura nunca derruba a extração.
	if rec.Confidence != models.ConfidenceOK || rec.PriceNumeric == 0 {
		if shot, shotErr := s.renderer.Screenshot(); shotErr == nil {
			rec.Diagnostic = shot
		} else {
			log.WithField("url", url).Warnf("Erro ao capturar diagnóstico: %v", shotErr)
		}
	}

	log.WithFields(log.Fields{
		"url":        url,
		"name":       rec.Name,
		"price":      rec.PriceDisplay,
		"confidence": rec.Confidence,
		"reviews":    len(rec.Reviews),
	}).Debug("Extração concluída")

	return rec, nil
}

// scrapeReviews faz a rolagem extra de acomodação e lê as avaliações do
// snapshot atualizado. Qualquer falha é engolida: avaliações são
// best-effort e nunca reprovam a extração inteira.
func (s *Scraper) scrapeReviews(doc *goquery.Document) []string {
	if html, err := s.renderer.SettleReviews(); err == nil {
		if fresh, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html)); parseErr == nil {
			doc = fresh
		}
	} else {
		log.Debugf("Rolagem de avaliações falhou, usando snapshot original: %v", err)
	}
	return ParseReviews(doc)
}
