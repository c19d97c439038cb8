// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"testing"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/testing/protocmp"
)

func TestBuildRetrieveRequest(t *testing.T) {
	t.Parallel()

	s := &Service{projectID: "test-project", location: "us-central1"}
	threshold := 0.7

	tests := []struct {
		name      string
		query     *Query
		resources []Resource
		want      *aiplatformpb.RetrieveContextsRequest
	}{
		{
			name: "single_corpus",
			query: &Query{
				Text:              "What is retrieval?",
				TopK:              10,
				DistanceThreshold: 0.7,
			},
			resources: []Resource{
				{Corpus: "projects/test-project/locations/us-central1/ragCorpora/1"},
			},
			want: &aiplatformpb.RetrieveContextsRequest{
				Parent: "projects/test-project/locations/us-central1",
				Query: &aiplatformpb.RagQuery{
					Query:          &aiplatformpb.RagQuery_Text{Text: "What is retrieval?"},
					SimilarityTopK: 10,
				},
				DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
					VertexRagStore: &aiplatformpb.RetrieveContextsRequest_VertexRagStore{
						RagResources: []*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
							{RagCorpus: "projects/test-project/locations/us-central1/ragCorpora/1"},
						},
						VectorDistanceThreshold: &threshold,
					},
				},
			},
		},
		{
			name: "file_filter_no_threshold",
			query: &Query{
				Text: "chunk overlap",
				TopK: 3,
			},
			resources: []Resource{
				{
					Corpus:  "projects/test-project/locations/us-central1/ragCorpora/1",
					FileIDs: []string{"file-a", "file-b"},
				},
			},
			want: &aiplatformpb.RetrieveContextsRequest{
				Parent: "projects/test-project/locations/us-central1",
				Query: &aiplatformpb.RagQuery{
					Query:          &aiplatformpb.RagQuery_Text{Text: "chunk overlap"},
					SimilarityTopK: 3,
				},
				DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
					VertexRagStore: &aiplatformpb.RetrieveContextsRequest_VertexRagStore{
						RagResources: []*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
							{
								RagCorpus:  "projects/test-project/locations/us-central1/ragCorpora/1",
								RagFileIds: []string{"file-a", "file-b"},
							},
						},
					},
				},
			},
		},
		{
			name: "multiple_corpora",
			query: &Query{
				Text: "embedding model",
				TopK: 5,
			},
			resources: []Resource{
				{Corpus: "projects/test-project/locations/us-central1/ragCorpora/1"},
				{Corpus: "projects/test-project/locations/us-central1/ragCorpora/2"},
			},
			want: &aiplatformpb.RetrieveContextsRequest{
				Parent: "projects/test-project/locations/us-central1",
				Query: &aiplatformpb.RagQuery{
					Query:          &aiplatformpb.RagQuery_Text{Text: "embedding model"},
					SimilarityTopK: 5,
				},
				DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
					VertexRagStore: &aiplatformpb.RetrieveContextsRequest_VertexRagStore{
						RagResources: []*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
							{RagCorpus: "projects/test-project/locations/us-central1/ragCorpora/1"},
							{RagCorpus: "projects/test-project/locations/us-central1/ragCorpora/2"},
						},
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.buildRetrieveRequest(tt.query, tt.resources)
			if diff := cmp.Diff(tt.want, got, protocmp.Transform()); diff != "" {
				t.Errorf("buildRetrieveRequest() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContextsFromProto(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pb   *aiplatformpb.RagContexts
		want []*RetrievedContext
	}{
		{
			name: "nil",
			pb:   nil,
			want: nil,
		},
		{
			name: "empty",
			pb:   &aiplatformpb.RagContexts{},
			want: []*RetrievedContext{},
		},
		{
			name: "ranked_contexts",
			pb: &aiplatformpb.RagContexts{
				Contexts: []*aiplatformpb.RagContexts_Context{
					{
						Text:              "Retrieval augments generation with indexed documents.",
						Distance:          0.12,
						SourceUri:         "gs://bucket/intro.txt",
						SourceDisplayName: "intro.txt",
					},
					{
						Text:     "Chunk overlap preserves continuity across chunks.",
						Distance: 0.31,
					},
				},
			},
			want: []*RetrievedContext{
				{
					Text:              "Retrieval augments generation with indexed documents.",
					Distance:          0.12,
					SourceURI:         "gs://bucket/intro.txt",
					SourceDisplayName: "intro.txt",
				},
				{
					Text:     "Chunk overlap preserves continuity across chunks.",
					Distance: 0.31,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := contextsFromProto(tt.pb)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("contextsFromProto() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
