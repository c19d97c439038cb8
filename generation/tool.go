// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package generation

import (
	"google.golang.org/genai"

	"github.com/go-a2a/rag-go/rag"
)

// RetrievalTool declares a retrieval capability over the given corpora for a
// generation call. The model queries the corpora during response generation
// and grounds its answer in the retrieved contexts.
//
// topK bounds how many contexts the model retrieves; distanceThreshold drops
// contexts whose vector distance exceeds it. Zero values leave the service
// defaults in place.
func RetrievalTool(resources []rag.Resource, topK int32, distanceThreshold float64) *genai.Tool {
	store := &genai.VertexRAGStore{
		RAGResources: make([]*genai.VertexRAGStoreRAGResource, 0, len(resources)),
	}
	for _, r := range resources {
		store.RAGResources = append(store.RAGResources, &genai.VertexRAGStoreRAGResource{
			RAGCorpus:  r.Corpus,
			RAGFileIDs: r.FileIDs,
		})
	}
	if topK > 0 {
		store.SimilarityTopK = genai.Ptr(topK)
	}
	if distanceThreshold > 0 {
		store.VectorDistanceThreshold = genai.Ptr(distanceThreshold)
	}

	return &genai.Tool{
		Retrieval: &genai.Retrieval{
			VertexRAGStore: store,
		},
	}
}

// CorpusRetrievalTool declares a retrieval tool over a single corpus with the
// default retrieval parameters.
func CorpusRetrievalTool(corpusName string) *genai.Tool {
	return RetrievalTool([]rag.Resource{{Corpus: corpusName}}, rag.DefaultTopK, rag.DefaultDistanceThreshold)
}
