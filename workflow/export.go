// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package workflow

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/poiesic/datagen/core"
)

var csvHeader = []string{"id", "product_name", "review_text", "sentiment"}

// Exporter writes generated review batches to per-topic CSV files.
// Each export replaces the topic's file with the latest batch.
type Exporter struct {
	dir string
	mu  sync.Mutex
}

// NewExporter creates an exporter writing into dir, creating it if needed.
func NewExporter(dir string) (*Exporter, error) {
	if dir == "" {
		return nil, fmt.Errorf("export directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Exporter{dir: dir}, nil
}

// Export writes the reviews to one CSV file per topic.
func (e *Exporter) Export(reviews []*core.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	byTopic := make(map[string][]*core.Review)
	for _, review := range reviews {
		byTopic[review.Topic] = append(byTopic[review.Topic], review)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for topic, batch := range byTopic {
		if err := e.writeTopic(topic, batch); err != nil {
			return err
		}
	}
	return nil
}

// FilePath returns the CSV path for a topic.
func (e *Exporter) FilePath(topic string) string {
	return filepath.Join(e.dir, core.CollectionName(topic)+".csv")
}

func (e *Exporter) writeTopic(topic string, reviews []*core.Review) error {
	f, err := os.Create(e.FilePath(topic))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, review := range reviews {
		record := []string{
			strconv.FormatUint(uint64(review.Id), 10),
			review.ProductName,
			review.ReviewText,
			string(review.Sentiment),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
