package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validReview() *Review {
	return &Review{
		ProductName: "XPhone",
		ReviewText:  "Good battery life",
		Sentiment:   SentimentPositive,
	}
}

func TestValidateReview_Valid(t *testing.T) {
	require.NoError(t, ValidateReview(validReview()))
}

func TestValidateReview_Nil(t *testing.T) {
	err := ValidateReview(nil)
	assert.ErrorIs(t, err, ErrInvalidReview)
}

func TestValidateReview_EmptyProductName(t *testing.T) {
	review := validReview()
	review.ProductName = ""
	err := ValidateReview(review)
	assert.ErrorIs(t, err, ErrInvalidReview)
	assert.ErrorIs(t, err, ErrEmptyProductName)
}

func TestValidateReview_EmptyReviewText(t *testing.T) {
	review := validReview()
	review.ReviewText = ""
	err := ValidateReview(review)
	assert.ErrorIs(t, err, ErrInvalidReview)
	assert.ErrorIs(t, err, ErrEmptyReviewText)
}

func TestValidateReview_UnknownSentiment(t *testing.T) {
	review := validReview()
	review.Sentiment = "Ecstatic"
	err := ValidateReview(review)
	assert.ErrorIs(t, err, ErrInvalidReview)
	assert.ErrorIs(t, err, ErrInvalidSentiment)
}

func TestValidateSentiment(t *testing.T) {
	for _, s := range Sentiments {
		assert.NoError(t, ValidateSentiment(s))
	}
	assert.ErrorIs(t, ValidateSentiment(""), ErrInvalidSentiment)
	assert.ErrorIs(t, ValidateSentiment("positive"), ErrInvalidSentiment)
}

func TestValidateTopic(t *testing.T) {
	assert.NoError(t, ValidateTopic("electronics"))
	assert.NoError(t, ValidateTopic("  Wireless Headphones "))
	assert.ErrorIs(t, ValidateTopic(""), ErrEmptyTopic)
	assert.ErrorIs(t, ValidateTopic("   "), ErrEmptyTopic)
}
