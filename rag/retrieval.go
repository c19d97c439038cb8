// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/aiplatform/apiv1beta1/aiplatformpb"
)

// RetrieveContexts runs a retrieval query against one or more corpora and
// returns the ranked snippets. A resource may restrict retrieval to specific
// file IDs within its corpus.
func (s *Service) RetrieveContexts(ctx context.Context, query *Query, resources ...Resource) ([]*RetrievedContext, error) {
	if err := query.validate(); err != nil {
		return nil, fmt.Errorf("rag: %w", err)
	}
	if len(resources) == 0 {
		return nil, errors.New("rag: at least one resource is required")
	}

	s.logger.InfoContext(ctx, "retrieving contexts",
		slog.String("query", query.Text),
		slog.Int("top_k", int(query.TopK)),
		slog.Float64("distance_threshold", query.DistanceThreshold),
		slog.Int("resources", len(resources)),
	)

	resp, err := s.retrievalClient.RetrieveContexts(ctx, s.buildRetrieveRequest(query, resources))
	if err != nil {
		return nil, fmt.Errorf("retrieve contexts: %w", err)
	}

	contexts := contextsFromProto(resp.GetContexts())
	s.logger.InfoContext(ctx, "contexts retrieved",
		slog.Int("count", len(contexts)),
	)
	return contexts, nil
}

// QueryCorpus retrieves contexts from a single corpus with the default top-k
// and distance threshold.
func (s *Service) QueryCorpus(ctx context.Context, corpusName, text string) ([]*RetrievedContext, error) {
	query := &Query{
		Text:              text,
		TopK:              DefaultTopK,
		DistanceThreshold: DefaultDistanceThreshold,
	}
	return s.RetrieveContexts(ctx, query, Resource{Corpus: corpusName})
}

// QueryCorpora retrieves contexts across several corpora with the default
// top-k and distance threshold.
func (s *Service) QueryCorpora(ctx context.Context, corpusNames []string, text string) ([]*RetrievedContext, error) {
	query := &Query{
		Text:              text,
		TopK:              DefaultTopK,
		DistanceThreshold: DefaultDistanceThreshold,
	}
	resources := make([]Resource, 0, len(corpusNames))
	for _, name := range corpusNames {
		resources = append(resources, Resource{Corpus: name})
	}
	return s.RetrieveContexts(ctx, query, resources...)
}

func (s *Service) buildRetrieveRequest(query *Query, resources []Resource) *aiplatformpb.RetrieveContextsRequest {
	pbResources := make([]*aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource, 0, len(resources))
	for _, r := range resources {
		pbResources = append(pbResources, &aiplatformpb.RetrieveContextsRequest_VertexRagStore_RagResource{
			RagCorpus:  r.Corpus,
			RagFileIds: r.FileIDs,
		})
	}

	store := &aiplatformpb.RetrieveContextsRequest_VertexRagStore{
		RagResources: pbResources,
	}
	if query.DistanceThreshold > 0 {
		threshold := query.DistanceThreshold
		store.VectorDistanceThreshold = &threshold
	}

	return &aiplatformpb.RetrieveContextsRequest{
		Parent: s.parent(),
		Query: &aiplatformpb.RagQuery{
			Query: &aiplatformpb.RagQuery_Text{
				Text: query.Text,
			},
			SimilarityTopK: query.TopK,
		},
		DataSource: &aiplatformpb.RetrieveContextsRequest_VertexRagStore_{
			VertexRagStore: store,
		},
	}
}

func contextsFromProto(pb *aiplatformpb.RagContexts) []*RetrievedContext {
	if pb == nil {
		return nil
	}

	contexts := make([]*RetrievedContext, 0, len(pb.GetContexts()))
	for _, c := range pb.GetContexts() {
		contexts = append(contexts, &RetrievedContext{
			Text:              c.GetText(),
			Distance:          c.GetDistance(),
			SourceURI:         c.GetSourceUri(),
			SourceDisplayName: c.GetSourceDisplayName(),
		})
	}
	return contexts
}
