package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Sentiment is the label assigned to a generated review.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// Sentiments lists the valid sentiment labels.
var Sentiments = []Sentiment{
	SentimentPositive,
	SentimentNegative,
	SentimentNeutral,
}

// Review represents a single synthetic product review.
// Reviews are immutable once persisted; only administrative tooling removes them.
type Review struct {
	Id          ID
	Topic       string // Normalized topic that partitions reviews and vectors
	ProductName string
	ReviewText  string
	Sentiment   Sentiment
	InsertedAt  time.Time // When the row was inserted into the database
}

// Document returns the text that is embedded for semantic search.
func (r *Review) Document() string {
	return r.ProductName + ": " + r.ReviewText
}

// VectorEntry is a single entry in a topic's vector collection.
// Each persisted review owns exactly one entry in its topic collection
// (best effort; no transaction spans both stores).
type VectorEntry struct {
	Id          ID // Content-based ID, stable across re-indexing
	ReviewId    ID
	Document    string // Bare review text, returned verbatim in search hits
	ProductName string
	Sentiment   Sentiment
	Vector      []float32
}

// CollectionMeta records bookkeeping for a vector collection.
type CollectionMeta struct {
	Name      string
	Dimension int
	Count     int
}

// SearchHit represents a single nearest-neighbor match from a vector collection.
// Distance is 1 - cosine similarity, so smaller means more similar.
type SearchHit struct {
	Document    string
	ProductName string
	Sentiment   Sentiment
	Distance    float32
}

const collectionSuffix = "_product_reviews"

// NormalizeTopic canonicalizes a caller-supplied topic string.
// Topics are lower-cased, trimmed, and internal whitespace becomes underscores,
// so "Wireless Headphones" and "wireless headphones" share one partition.
func NormalizeTopic(topic string) string {
	topic = strings.ToLower(strings.TrimSpace(topic))
	return strings.Join(strings.Fields(topic), "_")
}

// CollectionName derives the vector collection name for a topic.
func CollectionName(topic string) string {
	return NormalizeTopic(topic) + collectionSuffix
}
