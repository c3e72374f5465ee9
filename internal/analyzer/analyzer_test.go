package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentiment_EmptyInputIsExactlyZero(t *testing.T) {
	a := New()

	assert.Equal(t, 0.0, a.Sentiment(nil))
	assert.Equal(t, 0.0, a.Sentiment([]string{}))
	assert.Equal(t, 0.0, a.Sentiment([]string{"", "   "}))
}

func TestSentiment_Polarity(t *testing.T) {
	a := New()

	positive := a.Sentiment([]string{
		"Great product, I love it!",
		"Excellent quality, works perfectly.",
	})
	negative := a.Sentiment([]string{
		"Terrible, broke after one day.",
		"Awful quality, total waste of money.",
	})

	assert.Positive(t, positive)
	assert.Negative(t, negative)
	assert.Greater(t, positive, negative)
}

func TestSentiment_WithinBounds(t *testing.T) {
	a := New()

	cases := [][]string{
		{"amazing amazing amazing best ever!!!"},
		{"horrible horrible worst ever!!!"},
		{"it is a product", "ok"},
	}
	for _, reviews := range cases {
		score := a.Sentiment(reviews)
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
