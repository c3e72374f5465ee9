package scraper

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"

	"vigia-precos/internal/models"
)

const (
	unknownTitle = "Unknown Product"
	noPrice      = "N/A"
	maxReviews   = 10
)

// priceRule é um par (seletor, validador) da cascata de preço. As regras
// são avaliadas em ordem fixa, da mais específica ao layout da página à
// classe genérica de preço; vence o primeiro candidato validado.
type priceRule struct {
	selector string
	valid    func(text string) bool
}

var priceRules = []priceRule{
	{".a-price .a-offscreen", hasDigit},
	{"#priceblock_ourprice", hasDigit},
	{"#priceblock_dealprice", hasDigit},
	{".price", hasDigit},
}

// Glifos de moeda reconhecidos pela varredura de texto completo
var currencyGlyphs = []string{"$", "€", "£", "₹"}

// Seletores de texto oculto/acessibilidade removidos antes de ler o título
const hiddenSelectors = ".a-offscreen, .screen-reader-text, .visually-hidden"

// ParseProduct extrai os campos estruturados de um snapshot do DOM.
// Avaliações não entram aqui: elas exigem um snapshot próprio após a
// rolagem extra e são sempre best-effort.
func ParseProduct(doc *goquery.Document) *models.ProductRecord {
	rec := &models.ProductRecord{
		Name:         unknownTitle,
		PriceDisplay: noPrice,
		Availability: "Unknown",
		Rating:       noPrice,
		Confidence:   models.ConfidenceOK,
	}

	// Título vazio em uma página supostamente bem formada é o principal
	// sinal de bloqueio anti-bot
	if title := findTitle(doc); title != "" {
		rec.Name = title
	} else {
		rec.Confidence = models.ConfidenceBlocked
	}

	if text, ok := findPrice(doc); ok {
		rec.PriceDisplay = text
		rec.PriceNumeric = ParsePrice(text)
	} else if rec.Confidence == models.ConfidenceOK {
		rec.Confidence = models.ConfidencePriceMissing
	}

	// Disponibilidade e nota são best-effort e não afetam a confiança
	if avail := selectText(doc, "#availability, .availability"); avail != "" {
		rec.Availability = avail
	}
	if rating := selectText(doc, "i.a-icon-star span, .a-icon-alt"); rating != "" {
		rec.Rating = rating
	}

	return rec
}

// findTitle tenta o seletor estrutural primário e cai para o primeiro h1
// que não seja o heading de tooltip do resumo do produto
func findTitle(doc *goquery.Document) string {
	sel := doc.Find("#productTitle").First()
	if sel.Length() == 0 {
		sel = doc.Find("h1:not(#pqv-ingress)").First()
	}
	if sel.Length() == 0 {
		return ""
	}
	// Remove sub-elementos ocultos antes de ler o texto
	sel.Find(hiddenSelectors).Remove()
	return strings.TrimSpace(sel.Text())
}

// findPrice percorre a cascata de seletores e, se nenhuma regra render um
// candidato válido, varre o texto da página atrás de um glifo de moeda
// acompanhado de dígito
func findPrice(doc *goquery.Document) (string, bool) {
	for _, rule := range priceRules {
		var match string
		doc.Find(rule.selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if rule.valid(text) {
				match = text
				return false
			}
			return true
		})
		if match != "" {
			return match, true
		}
	}
	return scanCurrencyText(doc)
}

// scanCurrencyText é o último recurso da cascata: procura qualquer nó folha
// cujo texto contenha um símbolo de moeda junto de um dígito
func scanCurrencyText(doc *goquery.Document) (string, bool) {
	var match string
	doc.Find("body *").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 {
			return true
		}
		text := strings.TrimSpace(s.Text())
		if text == "" || !hasDigit(text) {
			return true
		}
		for _, glyph := range currencyGlyphs {
			if strings.Contains(text, glyph) {
				match = text
				return false
			}
		}
		return true
	})
	return match, match != ""
}

// ParsePrice normaliza o texto de exibição do preço para um valor decimal.
// Mantém apenas dígitos e pontos na ordem original; havendo mais de um
// ponto, os anteriores ao último são tratados como separadores de milhar.
// Falha de parse resulta em 0 (preço desconhecido).
func ParsePrice(display string) float64 {
	var b strings.Builder
	for _, r := range display {
		if unicode.IsDigit(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if strings.Count(cleaned, ".") > 1 {
		last := strings.LastIndex(cleaned, ".")
		cleaned = strings.ReplaceAll(cleaned[:last], ".", "") + cleaned[last:]
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// ParseReviews coleta até dez avaliações na ordem do documento. Seletor
// primário primeiro; o secundário só entra quando o primário não acha nada.
func ParseReviews(doc *goquery.Document) []string {
	elements := doc.Find(`div[data-hook="review-collapsed"]`)
	if elements.Length() == 0 {
		elements = doc.Find(`span[data-hook="review-body"] span`)
	}

	// Limita aos dez primeiros elementos e descarta entradas vazias
	var reviews []string
	seen := 0
	elements.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		seen++
		if text := strings.TrimSpace(s.Text()); text != "" {
			reviews = append(reviews, text)
		}
		return seen < maxReviews
	})
	return reviews
}

func selectText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}

func hasDigit(text string) bool {
	if text == "" {
		return false
	}
	return strings.ContainsFunc(text, unicode.IsDigit)
}
