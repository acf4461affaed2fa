package badger

import (
	"encoding/binary"
	"fmt"

	"github.com/poiesic/datagen/core"
)

// Key prefixes for different data types
const (
	reviewRecordPrefix = "revrec"
	reviewTopicPrefix  = "revtop"
	reviewIDSeq        = "revrecseq"
	vectorEntryPrefix  = "vecent"
	collectionMetaKey  = "vecmeta"
)

// makeReviewKey generates a key for a review by ID.
func makeReviewKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", reviewRecordPrefix, id))
}

// makeReviewTopicKey generates a composite key for the topic index.
// Format: prefix:topic:id
func makeReviewTopicKey(topic string, id core.ID) []byte {
	prefix := reviewTopicPrefix + ":" + topic + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort follows insertion order
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeReviewTopicPrefix generates the iteration prefix for a topic's index.
func makeReviewTopicPrefix(topic string) []byte {
	return []byte(reviewTopicPrefix + ":" + topic + ":")
}

// makeVectorEntryKey generates a composite key for a collection entry.
// Format: prefix:collection:id
func makeVectorEntryKey(collection string, id core.ID) []byte {
	prefix := vectorEntryPrefix + ":" + collection + ":"
	prefixBytes := []byte(prefix)
	buf := make([]byte, len(prefixBytes)+8)
	offset := copy(buf, prefixBytes)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeVectorEntryPrefix generates the iteration prefix for a collection.
func makeVectorEntryPrefix(collection string) []byte {
	return []byte(vectorEntryPrefix + ":" + collection + ":")
}

// makeCollectionMetaKey generates the key for a collection's metadata record.
func makeCollectionMetaKey(collection string) []byte {
	return []byte(collectionMetaKey + ":" + collection)
}
