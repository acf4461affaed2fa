package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	id1 := IDFromContent("XPhone: Good battery")
	id2 := IDFromContent("XPhone: Good battery")
	assert.Equal(t, id1, id2)
}

func TestIDFromContent_DifferentContent(t *testing.T) {
	id1 := IDFromContent("XPhone: Good battery")
	id2 := IDFromContent("XPhone: Bad battery")
	assert.NotEqual(t, id1, id2)
}

func TestNormalizeTopic(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"lowercase passthrough", "electronics", "electronics"},
		{"uppercase", "Electronics", "electronics"},
		{"spaces become underscores", "Wireless Headphones", "wireless_headphones"},
		{"surrounding whitespace", "  bicycles  ", "bicycles"},
		{"collapsed interior whitespace", "smart  home   hubs", "smart_home_hubs"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTopic(tt.topic))
		})
	}
}

func TestCollectionName(t *testing.T) {
	assert.Equal(t, "electronics_product_reviews", CollectionName("Electronics"))
	assert.Equal(t, "wireless_headphones_product_reviews", CollectionName("Wireless Headphones"))
}

func TestReview_Document(t *testing.T) {
	review := &Review{
		ProductName: "XPhone",
		ReviewText:  "Good battery life",
		Sentiment:   SentimentPositive,
	}
	assert.Equal(t, "XPhone: Good battery life", review.Document())
}
