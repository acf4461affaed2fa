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


package storage

import (
	"github.com/poiesic/datagen/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalReview serializes a Review to bytes.
func MarshalReview(review *core.Review) []byte {
	buf := make([]byte, core.ReviewMUS.Size(*review))
	core.ReviewMUS.Marshal(*review, buf)
	return buf
}

// UnmarshalReview deserializes a Review from bytes.
func UnmarshalReview(data []byte) (*core.Review, error) {
	review, _, err := core.ReviewMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// MarshalVectorEntry serializes a VectorEntry to bytes.
func MarshalVectorEntry(entry *core.VectorEntry) []byte {
	buf := make([]byte, core.VectorEntryMUS.Size(*entry))
	core.VectorEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalVectorEntry deserializes a VectorEntry from bytes.
func UnmarshalVectorEntry(data []byte) (*core.VectorEntry, error) {
	entry, _, err := core.VectorEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// MarshalCollectionMeta serializes a CollectionMeta to bytes.
func MarshalCollectionMeta(meta *core.CollectionMeta) []byte {
	buf := make([]byte, core.CollectionMetaMUS.Size(*meta))
	core.CollectionMetaMUS.Marshal(*meta, buf)
	return buf
}

// UnmarshalCollectionMeta deserializes a CollectionMeta from bytes.
func UnmarshalCollectionMeta(data []byte) (*core.CollectionMeta, error) {
	meta, _, err := core.CollectionMetaMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &meta, nil
}
