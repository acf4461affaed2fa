// Package workflow implements the generation and search pipelines that sit
// between the HTTP surface and the storage and AI layers.
//
// The generate pipeline produces labeled reviews for a topic, persists them,
// embeds each document concurrently, and indexes the vectors in the topic's
// collection. The search pipeline embeds a query and returns the nearest
// documents from that collection. Reindex rebuilds a topic's collection from
// the stored rows.
package workflow
