package workflow

import (
	"encoding/csv"
	"os"
	"testing"

	"github.com/poiesic/datagen/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_WritesPerTopicFiles(t *testing.T) {
	exporter, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	reviews := []*core.Review{
		{Id: 1, Topic: "electronics", ProductName: "Gadget", ReviewText: "Works great.", Sentiment: core.SentimentPositive},
		{Id: 2, Topic: "electronics", ProductName: "Widget", ReviewText: "Broke fast.", Sentiment: core.SentimentNegative},
		{Id: 3, Topic: "bicycles", ProductName: "Roadster", ReviewText: "Decent ride.", Sentiment: core.SentimentNeutral},
	}
	require.NoError(t, exporter.Export(reviews))

	records := readCSV(t, exporter.FilePath("electronics"))
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "product_name", "review_text", "sentiment"}, records[0])
	assert.Equal(t, []string{"1", "Gadget", "Works great.", "Positive"}, records[1])
	assert.Equal(t, []string{"2", "Widget", "Broke fast.", "Negative"}, records[2])

	records = readCSV(t, exporter.FilePath("bicycles"))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"3", "Roadster", "Decent ride.", "Neutral"}, records[1])
}

func TestExporter_OverwritesPreviousBatch(t *testing.T) {
	exporter, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	first := []*core.Review{
		{Id: 1, Topic: "electronics", ProductName: "Old", ReviewText: "Old batch.", Sentiment: core.SentimentPositive},
		{Id: 2, Topic: "electronics", ProductName: "Old", ReviewText: "Old batch.", Sentiment: core.SentimentNegative},
	}
	require.NoError(t, exporter.Export(first))

	second := []*core.Review{
		{Id: 3, Topic: "electronics", ProductName: "New", ReviewText: "New batch.", Sentiment: core.SentimentNeutral},
	}
	require.NoError(t, exporter.Export(second))

	records := readCSV(t, exporter.FilePath("electronics"))
	require.Len(t, records, 2, "each export replaces the topic's file")
	assert.Equal(t, "New", records[1][1])
}

func TestExporter_EmptyBatchIsNoOp(t *testing.T) {
	dir := t.TempDir()
	exporter, err := NewExporter(dir)
	require.NoError(t, err)

	require.NoError(t, exporter.Export(nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}
