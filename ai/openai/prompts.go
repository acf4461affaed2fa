package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/datagen/core"
)

const generationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "reviews": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "product_name": {
            "type": "string",
            "minLength": 1
          },
          "review": {
            "type": "string",
            "minLength": 1
          },
          "sentiment": {
            "type": "string",
            "enum": ["Positive", "Negative", "Neutral"]
          }
        },
        "required": ["product_name", "review", "sentiment"],
        "additionalProperties": false
      }
    }
  },
  "required": ["reviews"],
  "additionalProperties": false
}`

const generationPromptTemplate = `You write synthetic product review datasets and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Produce exactly the number of reviews the user requests, no more, no fewer.
- Every review must stay on the requested topic. Do not drift into other categories or products.
- The sentiment field must be exactly one of: %s.
- The data should feel real: use believable made-up product names, and vary review length and tone.
- Distribute sentiments plausibly; do not label every review with the same sentiment.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example request: 2 reviews about smartphones
Example output:
{
  "reviews": [
    {"product_name":"XPhone 12","review":"Good battery, lasts the whole day even with heavy use.","sentiment":"Positive"},
    {"product_name":"Nebula S3","review":"The screen scratches far too easily for the price.","sentiment":"Negative"}
  ]
}`

// buildSystemPrompt creates the system prompt with the sentiment labels embedded.
func buildSystemPrompt() string {
	labels := make([]string, len(core.Sentiments))
	for i, s := range core.Sentiments {
		labels[i] = string(s)
	}
	return fmt.Sprintf(generationPromptTemplate,
		generationResponseSchema,
		strings.Join(labels, ", "))
}

// buildUserPrompt creates the per-request instruction.
func buildUserPrompt(topic string, count int) string {
	return fmt.Sprintf("Generate %d product reviews about %s.", count, topic)
}
