// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"testing"
	"time"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestVectorDBConfigToProto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *VectorDBConfig
		want *aiplatformpb.RagVectorDbConfig
	}{
		{
			name: "nil",
			cfg:  nil,
			want: nil,
		},
		{
			name: "managed_db_default",
			cfg:  &VectorDBConfig{},
			want: &aiplatformpb.RagVectorDbConfig{
				VectorDb: &aiplatformpb.RagVectorDbConfig_RagManagedDb_{
					RagManagedDb: &aiplatformpb.RagVectorDbConfig_RagManagedDb{},
				},
			},
		},
		{
			name: "publisher_embedding_model",
			cfg: &VectorDBConfig{
				EmbeddingModel: &EmbeddingModelConfig{
					PublisherModel: DefaultEmbeddingModel,
				},
				ManagedDB: &ManagedDBConfig{},
			},
			want: &aiplatformpb.RagVectorDbConfig{
				RagEmbeddingModelConfig: &aiplatformpb.RagEmbeddingModelConfig{
					ModelConfig: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint_{
						VertexPredictionEndpoint: &aiplatformpb.RagEmbeddingModelConfig_VertexPredictionEndpoint{
							Endpoint: DefaultEmbeddingModel,
						},
					},
				},
				VectorDb: &aiplatformpb.RagVectorDbConfig_RagManagedDb_{
					RagManagedDb: &aiplatformpb.RagVectorDbConfig_RagManagedDb{},
				},
			},
		},
		{
			name: "weaviate",
			cfg: &VectorDBConfig{
				Weaviate: &WeaviateConfig{
					HTTPEndpoint:   "http://weaviate.example.com:8080",
					CollectionName: "tutorial",
				},
			},
			want: &aiplatformpb.RagVectorDbConfig{
				VectorDb: &aiplatformpb.RagVectorDbConfig_Weaviate_{
					Weaviate: &aiplatformpb.RagVectorDbConfig_Weaviate{
						HttpEndpoint:   "http://weaviate.example.com:8080",
						CollectionName: "tutorial",
					},
				},
			},
		},
		{
			name: "pinecone",
			cfg: &VectorDBConfig{
				Pinecone: &PineconeConfig{IndexName: "tutorial-index"},
			},
			want: &aiplatformpb.RagVectorDbConfig{
				VectorDb: &aiplatformpb.RagVectorDbConfig_Pinecone_{
					Pinecone: &aiplatformpb.RagVectorDbConfig_Pinecone{
						IndexName: "tutorial-index",
					},
				},
			},
		},
		{
			name: "vertex_vector_search",
			cfg: &VectorDBConfig{
				VertexVectorSearch: &VertexVectorSearchConfig{
					IndexEndpoint: "projects/p/locations/l/indexEndpoints/ep",
					Index:         "projects/p/locations/l/indexes/idx",
				},
			},
			want: &aiplatformpb.RagVectorDbConfig{
				VectorDb: &aiplatformpb.RagVectorDbConfig_VertexVectorSearch_{
					VertexVectorSearch: &aiplatformpb.RagVectorDbConfig_VertexVectorSearch{
						IndexEndpoint: "projects/p/locations/l/indexEndpoints/ep",
						Index:         "projects/p/locations/l/indexes/idx",
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := vectorDBConfigToProto(tt.cfg)
			if diff := cmp.Diff(tt.want, got, protocmp.Transform()); diff != "" {
				t.Errorf("vectorDBConfigToProto() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVectorDBConfigRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *VectorDBConfig
	}{
		{
			name: "managed_db_with_embedding",
			cfg: &VectorDBConfig{
				EmbeddingModel: &EmbeddingModelConfig{PublisherModel: DefaultEmbeddingModel},
				ManagedDB:      &ManagedDBConfig{},
			},
		},
		{
			name: "custom_endpoint_embedding",
			cfg: &VectorDBConfig{
				EmbeddingModel: &EmbeddingModelConfig{
					Endpoint: "projects/p/locations/us-central1/endpoints/12345",
					Model:    "projects/p/locations/us-central1/models/custom-embedder",
				},
				ManagedDB: &ManagedDBConfig{},
			},
		},
		{
			name: "weaviate",
			cfg: &VectorDBConfig{
				Weaviate: &WeaviateConfig{
					HTTPEndpoint:   "http://weaviate.example.com:8080",
					CollectionName: "tutorial",
				},
			},
		},
		{
			name: "pinecone",
			cfg: &VectorDBConfig{
				Pinecone: &PineconeConfig{IndexName: "tutorial-index"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := vectorDBConfigFromProto(vectorDBConfigToProto(tt.cfg))
			if diff := cmp.Diff(tt.cfg, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCorpusFromProto(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	pb := &aiplatformpb.RagCorpus{
		Name:        "projects/test-project/locations/us-central1/ragCorpora/1234",
		DisplayName: "Tutorial Corpus",
		Description: "A tutorial corpus",
		CorpusStatus: &aiplatformpb.CorpusStatus{
			State: aiplatformpb.CorpusStatus_INITIALIZED,
		},
		CreateTime: timestamppb.New(created),
		UpdateTime: timestamppb.New(updated),
	}

	want := &Corpus{
		Name:        "projects/test-project/locations/us-central1/ragCorpora/1234",
		DisplayName: "Tutorial Corpus",
		Description: "A tutorial corpus",
		State:       CorpusStateActive,
		CreateTime:  &created,
		UpdateTime:  &updated,
	}

	got := corpusFromProto(pb)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("corpusFromProto() mismatch (-want +got):\n%s", diff)
	}
}

func TestCorpusFromProto_States(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		state *aiplatformpb.CorpusStatus
		want  CorpusState
	}{
		{
			name:  "initialized",
			state: &aiplatformpb.CorpusStatus{State: aiplatformpb.CorpusStatus_INITIALIZED},
			want:  CorpusStateActive,
		},
		{
			name:  "error",
			state: &aiplatformpb.CorpusStatus{State: aiplatformpb.CorpusStatus_ERROR},
			want:  CorpusStateError,
		},
		{
			name: "missing",
			want: CorpusStateUnspecified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := corpusFromProto(&aiplatformpb.RagCorpus{CorpusStatus: tt.state})
			if got.State != tt.want {
				t.Errorf("State = %v, want %v", got.State, tt.want)
			}
		})
	}
}
