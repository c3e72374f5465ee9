package analyzer

import (
	"strings"

	"github.com/jonreiter/govader"
)

// SentimentAnalyzer pontua avaliações textuais com o léxico VADER.
// É um colaborador puro: mesma entrada, mesma saída, sem estado mutável.
type SentimentAnalyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// New cria o analisador com o léxico padrão
func New() *SentimentAnalyzer {
	return &SentimentAnalyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Sentiment retorna a média da polaridade das avaliações no intervalo
// [-1.0, 1.0]. Entrada vazia (ou só avaliações em branco) retorna 0.0.
func (a *SentimentAnalyzer) Sentiment(reviews []string) float64 {
	var sum float64
	var count int
	for _, review := range reviews {
		if strings.TrimSpace(review) == "" {
			continue
		}
		sum += a.vader.PolarityScores(review).Compound
		count++
	}
	if count == 0 {
		return 0.0
	}

	score := sum / float64(count)
	if score > 1.0 {
		score = 1.0
	} else if score < -1.0 {
		score = -1.0
	}
	return score
}
